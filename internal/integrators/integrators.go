// Package integrators advances a point mass under a given acceleration.
package integrators

import (
	"sort"

	"github.com/san-kum/bounce/internal/dynamo"
	"github.com/san-kum/bounce/internal/vec"
)

// Default matches the stepping of the original simulation.
const Default = "semi-implicit"

type Integrator interface {
	Name() string
	Step(pos, vel, acc vec.Vector, dt float64) (vec.Vector, vec.Vector)
}

var registry = map[string]func() Integrator{
	"semi-implicit": func() Integrator { return NewSemiImplicitEuler() },
	"euler":         func() Integrator { return NewEuler() },
	"verlet":        func() Integrator { return NewVerlet() },
}

func Get(name string) (Integrator, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, dynamo.Invalid("unknown integrator: %s (available: %v)", name, Names())
	}
	return fn(), nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
