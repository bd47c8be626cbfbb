package physics

import (
	"math"
	"math/rand"

	"github.com/san-kum/bounce/internal/dynamo"
	"github.com/san-kum/bounce/internal/vec"
)

// Spawn describes how the initial bodies are sampled.
type Spawn struct {
	Count    int
	Radius   float64
	SpeedMin float64
	SpeedMax float64
	Bounds   Bounds
}

func (s Spawn) Validate() error {
	switch {
	case s.Count < 0:
		return dynamo.Invalid("body count must be non-negative, got %d", s.Count)
	case s.Bounds.Width <= 0 || s.Bounds.Height <= 0:
		return dynamo.Invalid("bounds must be positive, got %gx%g", s.Bounds.Width, s.Bounds.Height)
	case s.Radius < 0:
		return dynamo.Invalid("radius must be non-negative, got %g", s.Radius)
	case 2*s.Radius > s.Bounds.Width:
		return dynamo.Invalid("radius %g does not fit in width %g", s.Radius, s.Bounds.Width)
	case s.SpeedMin < 0 || s.SpeedMax < s.SpeedMin:
		return dynamo.Invalid("speed range [%g, %g] is invalid", s.SpeedMin, s.SpeedMax)
	}
	return nil
}

// NewBody places a body in the upper half of the playfield with a random
// speed in [SpeedMin, SpeedMax) and a random heading.
func NewBody(rng *rand.Rand, s Spawn) Body {
	r := s.Radius
	pos := vec.New(
		rng.Float64()*(s.Bounds.Width-2*r)+r,
		rng.Float64()*s.Bounds.Height/2+r,
	)

	speed := s.SpeedMin + rng.Float64()*(s.SpeedMax-s.SpeedMin)
	angle := rng.Float64() * 2 * math.Pi
	// radians is always a known unit
	vel, _ := vec.FromPolar(speed, angle, vec.Radians)

	return Body{
		Pos:    pos,
		Vel:    vel,
		Radius: r,
		Mass:   DefaultMass,
		Color:  BrightColor(rng),
	}
}

func SpawnBodies(rng *rand.Rand, s Spawn) ([]Body, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	bodies := make([]Body, s.Count)
	for i := range bodies {
		bodies[i] = NewBody(rng, s)
	}
	return bodies, nil
}
