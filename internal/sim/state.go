package sim

import (
	"github.com/san-kum/bounce/internal/dynamo"
	"github.com/san-kum/bounce/internal/integrators"
	"github.com/san-kum/bounce/internal/physics"
	"github.com/san-kum/bounce/internal/vec"
)

// State is everything the loop mutates. It is owned by one goroutine.
type State struct {
	Bodies  []physics.Body
	Gravity vec.Vector
	Bounds  physics.Bounds
	Dt      float64
}

func NewState(bodies []physics.Body, gravity vec.Vector, bounds physics.Bounds, dt float64) (*State, error) {
	if dt <= 0 {
		return nil, dynamo.Invalid("dt must be positive, got %g", dt)
	}
	if bounds.Width <= 0 || bounds.Height <= 0 {
		return nil, dynamo.Invalid("bounds must be positive, got %gx%g", bounds.Width, bounds.Height)
	}
	return &State{Bodies: bodies, Gravity: gravity, Bounds: bounds, Dt: dt}, nil
}

// RotateGravity turns gravity a quarter turn: (x, y) -> (y, -x).
func (s *State) RotateGravity() {
	s.Gravity = s.Gravity.Rotate90()
}

// Advance ticks every body once. hits is reused when it has room.
func (s *State) Advance(integ integrators.Integrator, hits []physics.Reflection) []physics.Reflection {
	if cap(hits) < len(s.Bodies) {
		hits = make([]physics.Reflection, len(s.Bodies))
	}
	hits = hits[:len(s.Bodies)]
	for i := range s.Bodies {
		hits[i] = s.Bodies[i].Advance(integ, s.Dt, s.Gravity, s.Bounds)
	}
	return hits
}

func (s *State) KineticEnergy() float64 {
	total := 0.0
	for _, b := range s.Bodies {
		total += b.KineticEnergy()
	}
	return total
}

// Validate returns a SimError for the first body holding NaN or Inf.
func (s *State) Validate(frame int, t float64) error {
	for i, b := range s.Bodies {
		if !b.Pos.IsFinite() || !b.Vel.IsFinite() {
			return dynamo.SimError{Frame: frame, Time: t, Body: i, Message: "non-finite position or velocity"}
		}
	}
	return nil
}
