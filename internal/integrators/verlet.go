package integrators

import "github.com/san-kum/bounce/internal/vec"

// Verlet is velocity Verlet for a field that is constant over the step, which
// makes the position update exact for uniform gravity.
type Verlet struct{}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (Verlet) Name() string { return "verlet" }

func (Verlet) Step(pos, vel, acc vec.Vector, dt float64) (vec.Vector, vec.Vector) {
	pos = pos.Add(vel.Scale(dt)).Add(acc.Scale(0.5 * dt * dt))
	vel = vel.Add(acc.Scale(dt))
	return pos, vel
}
