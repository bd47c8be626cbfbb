package integrators

import "github.com/san-kum/bounce/internal/vec"

// SemiImplicitEuler updates velocity first and moves with the new velocity.
type SemiImplicitEuler struct{}

func NewSemiImplicitEuler() *SemiImplicitEuler {
	return &SemiImplicitEuler{}
}

func (SemiImplicitEuler) Name() string { return "semi-implicit" }

func (SemiImplicitEuler) Step(pos, vel, acc vec.Vector, dt float64) (vec.Vector, vec.Vector) {
	vel = vel.Add(acc.Scale(dt))
	pos = pos.Add(vel.Scale(dt))
	return pos, vel
}

// Euler moves with the old velocity, then updates it.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (Euler) Name() string { return "euler" }

func (Euler) Step(pos, vel, acc vec.Vector, dt float64) (vec.Vector, vec.Vector) {
	return pos.Add(vel.Scale(dt)), vel.Add(acc.Scale(dt))
}
