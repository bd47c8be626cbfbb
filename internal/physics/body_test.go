package physics

import (
	"math"
	"math/rand"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/bounce/internal/integrators"
	"github.com/san-kum/bounce/internal/vec"
)

var screen = Bounds{Width: 3000, Height: 2000}

func TestTickIntegratesVelocityFirst(t *testing.T) {
	g := NewWithT(t)
	b := Body{Pos: vec.New(500, 500), Vel: vec.New(10, 0), Radius: 15, Mass: 1}

	hit := b.Tick(0.5, vec.New(0, 400), screen)

	g.Expect(hit.Any()).To(BeFalse())
	g.Expect(b.Vel).To(Equal(vec.New(10, 200)))
	g.Expect(b.Pos).To(Equal(vec.New(505, 600)))
}

func TestTickReflectsLowEdge(t *testing.T) {
	g := NewWithT(t)
	const (
		r   = 15.0
		eps = 0.25
		v   = 120.0
	)
	b := Body{Pos: vec.New(r-eps, 1000), Vel: vec.New(-v, 0), Radius: r}

	hit := b.Tick(1.0/30, vec.Vector{}, screen)

	g.Expect(hit).To(Equal(ReflectLeft))
	g.Expect(b.Pos.X).To(Equal(r))
	g.Expect(b.Vel.X).To(Equal(v))
}

func TestTickClampsFarEdge(t *testing.T) {
	g := NewWithT(t)
	bounds := Bounds{Width: 50, Height: 50}
	b := Body{Pos: vec.New(25, 25), Vel: vec.New(100, 0), Radius: 2}

	hit := b.Tick(1, vec.Vector{}, bounds)

	g.Expect(hit).To(Equal(ReflectRight))
	g.Expect(b.Pos.X).To(Equal(bounds.Width - 1 - 2))
	g.Expect(b.Vel.X).To(Equal(-100.0))
	g.Expect(b.Pos.Y).To(Equal(25.0))
}

func TestTickVerticalEdges(t *testing.T) {
	tests := []struct {
		name   string
		pos    vec.Vector
		vel    vec.Vector
		wantY  float64
		wantVY float64
		hit    Reflection
	}{
		{"top", vec.New(100, 10), vec.New(0, -300), 15, 300, ReflectTop},
		{"bottom", vec.New(100, 1980), vec.New(0, 300), 1984, -300, ReflectBottom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Body{Pos: tt.pos, Vel: tt.vel, Radius: 15}
			hit := b.Tick(0.1, vec.Vector{}, screen)
			if hit != tt.hit {
				t.Errorf("hit = %b, want %b", hit, tt.hit)
			}
			if b.Pos.Y != tt.wantY || b.Vel.Y != tt.wantVY {
				t.Errorf("got y=%g vy=%g, want y=%g vy=%g", b.Pos.Y, b.Vel.Y, tt.wantY, tt.wantVY)
			}
		})
	}
}

func TestTickCornerHitsBothAxes(t *testing.T) {
	b := Body{Pos: vec.New(16, 16), Vel: vec.New(-300, -300), Radius: 15}
	hit := b.Tick(0.1, vec.Vector{}, screen)
	if hit != ReflectLeft|ReflectTop || hit.Count() != 2 {
		t.Errorf("expected left and top reflections, got %b", hit)
	}
}

func TestTickOversizedBodyClampsOneSide(t *testing.T) {
	g := NewWithT(t)
	bounds := Bounds{Width: 50, Height: 500}
	b := Body{Pos: vec.New(10, 250), Radius: 30}

	hit := b.Tick(0.01, vec.Vector{}, bounds)

	// low edge wins; the high edge is not revisited in the same tick
	g.Expect(hit).To(Equal(ReflectLeft))
	g.Expect(b.Pos.X).To(Equal(30.0))
	g.Expect(b.Inside(bounds)).To(BeFalse())
}

func TestTickKeepsBodiesInside(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	gravity := vec.New(0, screen.Height/5)
	dt := 1.0 / 30

	for i := 0; i < 200; i++ {
		speed := math.Pow(10, rng.Float64()*6)
		vel, _ := vec.FromPolar(speed, rng.Float64()*360, vec.Degrees)
		b := Body{
			Pos:    vec.New(rng.Float64()*screen.Width, rng.Float64()*screen.Height),
			Vel:    vel,
			Radius: 15,
		}
		for step := 0; step < 50; step++ {
			b.Tick(dt, gravity, screen)
			if !b.Inside(screen) {
				t.Fatalf("body %d escaped at step %d: pos=%v", i, step, b.Pos)
			}
		}
		gravity = gravity.Rotate90()
	}
}

func TestAdvanceWithIntegrator(t *testing.T) {
	integ, err := integrators.Get("euler")
	if err != nil {
		t.Fatal(err)
	}
	b := Body{Pos: vec.New(100, 100), Vel: vec.New(10, 0), Radius: 1}
	b.Advance(integ, 1, vec.New(0, 5), screen)
	if b.Pos != vec.New(110, 100) || b.Vel != vec.New(10, 5) {
		t.Errorf("explicit euler step: pos=%v vel=%v", b.Pos, b.Vel)
	}
}

func TestKineticEnergy(t *testing.T) {
	b := Body{Vel: vec.New(3, 4), Mass: 2}
	if got := b.KineticEnergy(); got != 25 {
		t.Errorf("KineticEnergy() = %g, want 25", got)
	}
	if got := b.Speed(); got != 5 {
		t.Errorf("Speed() = %g, want 5", got)
	}
}

func TestReflectionCount(t *testing.T) {
	tests := []struct {
		r    Reflection
		want int
	}{
		{0, 0},
		{ReflectLeft, 1},
		{ReflectRight | ReflectBottom, 2},
		{ReflectLeft | ReflectRight | ReflectTop | ReflectBottom, 4},
	}
	for _, tt := range tests {
		if got := tt.r.Count(); got != tt.want {
			t.Errorf("Count(%b) = %d, want %d", tt.r, got, tt.want)
		}
	}
}
