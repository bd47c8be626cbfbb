package physics

import (
	"image/color"

	"github.com/san-kum/bounce/internal/integrators"
	"github.com/san-kum/bounce/internal/vec"
)

// DefaultMass is the mass every body carries; only kinetic energy uses it.
const DefaultMass = 1.0

// Bounds is the playfield in pixels. Valid coordinates run 0..Width-1.
type Bounds struct {
	Width, Height float64
}

// Reflection records which walls a body bounced off during one tick.
type Reflection uint8

const (
	ReflectLeft Reflection = 1 << iota
	ReflectRight
	ReflectTop
	ReflectBottom
)

func (r Reflection) Any() bool { return r != 0 }

func (r Reflection) Count() int {
	n := 0
	for m := r; m != 0; m &= m - 1 {
		n++
	}
	return n
}

type Body struct {
	Pos    vec.Vector
	Vel    vec.Vector
	Radius float64
	Mass   float64
	Color  color.RGBA
}

var semiImplicit = integrators.NewSemiImplicitEuler()

// Tick advances the body by dt under gravity and reflects it off the bounds.
func (b *Body) Tick(dt float64, gravity vec.Vector, bounds Bounds) Reflection {
	return b.Advance(semiImplicit, dt, gravity, bounds)
}

// Advance is Tick with a caller-chosen integrator.
func (b *Body) Advance(integ integrators.Integrator, dt float64, gravity vec.Vector, bounds Bounds) Reflection {
	b.Pos, b.Vel = integ.Step(b.Pos, b.Vel, gravity, dt)
	return b.reflect(bounds)
}

func (b *Body) reflect(bounds Bounds) Reflection {
	var hit Reflection
	r := b.Radius

	if b.Pos.X-r < 0 {
		b.Pos.X = r
		b.Vel.X = -b.Vel.X
		hit |= ReflectLeft
	} else if b.Pos.X+r > bounds.Width-1 {
		b.Pos.X = bounds.Width - 1 - r
		b.Vel.X = -b.Vel.X
		hit |= ReflectRight
	}

	if b.Pos.Y-r < 0 {
		b.Pos.Y = r
		b.Vel.Y = -b.Vel.Y
		hit |= ReflectTop
	} else if b.Pos.Y+r > bounds.Height-1 {
		b.Pos.Y = bounds.Height - 1 - r
		b.Vel.Y = -b.Vel.Y
		hit |= ReflectBottom
	}

	return hit
}

func (b Body) Speed() float64 {
	return b.Vel.Magnitude()
}

func (b Body) KineticEnergy() float64 {
	v := b.Vel.Magnitude()
	return 0.5 * b.Mass * v * v
}

// Inside reports whether the body satisfies the clamping invariant.
func (b Body) Inside(bounds Bounds) bool {
	r := b.Radius
	return b.Pos.X >= r && b.Pos.X <= bounds.Width-1-r &&
		b.Pos.Y >= r && b.Pos.Y <= bounds.Height-1-r
}
