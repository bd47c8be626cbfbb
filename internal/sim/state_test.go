package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/bounce/internal/dynamo"
	"github.com/san-kum/bounce/internal/integrators"
	"github.com/san-kum/bounce/internal/physics"
	"github.com/san-kum/bounce/internal/vec"
)

func TestNewStateRejectsBadInput(t *testing.T) {
	tests := []struct {
		name   string
		bounds physics.Bounds
		dt     float64
	}{
		{"zero dt", physics.Bounds{Width: 10, Height: 10}, 0},
		{"negative dt", physics.Bounds{Width: 10, Height: 10}, -0.1},
		{"empty bounds", physics.Bounds{}, 0.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewState(nil, vec.Vector{}, tt.bounds, tt.dt)
			if !errors.Is(err, dynamo.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestRotateGravityFourTimes(t *testing.T) {
	st := &State{Gravity: vec.New(0, 400)}
	for i := 0; i < 4; i++ {
		st.RotateGravity()
	}
	if math.Abs(st.Gravity.X) > 1e-12 || math.Abs(st.Gravity.Y-400) > 1e-12 {
		t.Errorf("four rotations should restore gravity, got %v", st.Gravity)
	}
}

func TestAdvanceReportsHits(t *testing.T) {
	st, err := NewState([]physics.Body{
		{Pos: vec.New(500, 500), Vel: vec.New(1, 0), Radius: 15},
		{Pos: vec.New(20, 500), Vel: vec.New(-300, 0), Radius: 15},
	}, vec.Vector{}, physics.Bounds{Width: 1000, Height: 1000}, 0.1)
	if err != nil {
		t.Fatal(err)
	}

	hits := st.Advance(integrators.NewSemiImplicitEuler(), nil)
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits entries, got %d", len(hits))
	}
	if hits[0].Any() {
		t.Errorf("body 0 should not reflect, got %b", hits[0])
	}
	if hits[1] != physics.ReflectLeft {
		t.Errorf("body 1 should reflect left, got %b", hits[1])
	}

	again := st.Advance(integrators.NewSemiImplicitEuler(), hits)
	if &again[0] != &hits[0] {
		t.Error("Advance should reuse the hits buffer")
	}
}

func TestStateKineticEnergy(t *testing.T) {
	st := &State{Bodies: []physics.Body{
		{Vel: vec.New(3, 4), Mass: 1},
		{Vel: vec.New(0, 2), Mass: 1},
	}}
	if got := st.KineticEnergy(); got != 14.5 {
		t.Errorf("KineticEnergy() = %g, want 14.5", got)
	}
}

func TestStateValidate(t *testing.T) {
	st := &State{Bodies: []physics.Body{
		{Pos: vec.New(1, 1)},
		{Pos: vec.New(math.Inf(1), 1)},
	}}
	err := st.Validate(7, 0.25)
	var simErr dynamo.SimError
	if !errors.As(err, &simErr) {
		t.Fatalf("expected SimError, got %v", err)
	}
	if simErr.Body != 1 || simErr.Frame != 7 {
		t.Errorf("unexpected location: %+v", simErr)
	}

	st.Bodies = st.Bodies[:1]
	if err := st.Validate(0, 0); err != nil {
		t.Errorf("finite state should validate, got %v", err)
	}
}
