package integrators

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/bounce/internal/dynamo"
	"github.com/san-kum/bounce/internal/vec"
)

func TestSemiImplicitOrder(t *testing.T) {
	integ := NewSemiImplicitEuler()
	pos, vel := integ.Step(vec.Vector{}, vec.Vector{X: 1}, vec.Vector{Y: 10}, 0.5)

	if vel.X != 1 || vel.Y != 5 {
		t.Errorf("velocity: got %v, want {1 5}", vel)
	}
	// position uses the updated velocity
	if pos.X != 0.5 || pos.Y != 2.5 {
		t.Errorf("position: got %v, want {0.5 2.5}", pos)
	}
}

func TestEulerUsesOldVelocity(t *testing.T) {
	pos, vel := NewEuler().Step(vec.Vector{}, vec.Vector{X: 1}, vec.Vector{Y: 10}, 0.5)
	if pos.X != 0.5 || pos.Y != 0 {
		t.Errorf("position: got %v, want {0.5 0}", pos)
	}
	if vel.Y != 5 {
		t.Errorf("velocity: got %v, want {1 5}", vel)
	}
}

func TestVerletExactForUniformField(t *testing.T) {
	integ := NewVerlet()
	g := vec.Vector{Y: 9.81}
	pos, vel := vec.Vector{}, vec.Vector{X: 2}
	dt := 0.1
	steps := 100
	for i := 0; i < steps; i++ {
		pos, vel = integ.Step(pos, vel, g, dt)
	}
	tEnd := float64(steps) * dt
	wantY := 0.5 * 9.81 * tEnd * tEnd
	if math.Abs(pos.Y-wantY) > 1e-9 {
		t.Errorf("y: got %.9f, want %.9f", pos.Y, wantY)
	}
	if math.Abs(pos.X-2*tEnd) > 1e-9 {
		t.Errorf("x: got %.9f, want %.9f", pos.X, 2*tEnd)
	}
}

func TestGet(t *testing.T) {
	for _, name := range Names() {
		integ, err := Get(name)
		if err != nil {
			t.Fatalf("Get(%q): %v", name, err)
		}
		if integ.Name() != name {
			t.Errorf("Get(%q).Name() = %q", name, integ.Name())
		}
	}

	if _, err := Get("rk4"); !errors.Is(err, dynamo.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for unknown integrator, got %v", err)
	}
}
