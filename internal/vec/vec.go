// Package vec implements the 2-D vector value type used by the physics.
package vec

import (
	"math"

	"github.com/san-kum/bounce/internal/dynamo"
)

// AngleUnit selects how angles are read and reported.
type AngleUnit string

const (
	Degrees AngleUnit = "deg"
	Radians AngleUnit = "rad"
)

// ParseAngleUnit accepts "deg" or "rad". Anything else is an error; there is
// no default unit.
func ParseAngleUnit(s string) (AngleUnit, error) {
	switch AngleUnit(s) {
	case Degrees, Radians:
		return AngleUnit(s), nil
	}
	return "", dynamo.Invalid("angle unit must be 'deg' or 'rad', got %q", s)
}

func (u AngleUnit) toRadians(angle float64) (float64, error) {
	switch u {
	case Radians:
		return angle, nil
	case Degrees:
		return angle * math.Pi / 180, nil
	}
	return 0, dynamo.Invalid("angle unit must be 'deg' or 'rad', got %q", string(u))
}

func (u AngleUnit) fromRadians(angle float64) (float64, error) {
	switch u {
	case Radians:
		return angle, nil
	case Degrees:
		return angle / math.Pi * 180, nil
	}
	return 0, dynamo.Invalid("angle unit must be 'deg' or 'rad', got %q", string(u))
}

// Vector is an immutable 2-D pair. Every operation returns a new value.
type Vector struct {
	X, Y float64
}

func New(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

// FromPolar builds (m·cos θ, m·sin θ).
func FromPolar(magnitude, angle float64, unit AngleUnit) (Vector, error) {
	theta, err := unit.toRadians(angle)
	if err != nil {
		return Vector{}, err
	}
	return Vector{magnitude * math.Cos(theta), magnitude * math.Sin(theta)}, nil
}

func Add(a, b Vector) Vector {
	return Vector{a.X + b.X, a.Y + b.Y}
}

func Scale(v Vector, k float64) Vector {
	return Vector{v.X * k, v.Y * k}
}

func (v Vector) Add(o Vector) Vector {
	return Add(v, o)
}

func (v Vector) Scale(k float64) Vector {
	return Scale(v, k)
}

func (v Vector) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Direction is atan2(y, x) in the requested unit, in (-180, 180] for degrees.
func (v Vector) Direction(unit AngleUnit) (float64, error) {
	return unit.fromRadians(math.Atan2(v.Y, v.X))
}

// Rotate90 turns the vector a quarter turn: (x, y) -> (y, -x).
func (v Vector) Rotate90() Vector {
	return Vector{v.Y, -v.X}
}

func (v Vector) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}
