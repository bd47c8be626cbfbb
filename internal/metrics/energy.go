package metrics

import (
	"math"

	"github.com/san-kum/bounce/internal/sim"
)

// KineticEnergy averages the total kinetic energy of all bodies over the run.
type KineticEnergy struct {
	name    string
	samples int
	total   float64
	last    float64
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(f sim.Frame) {
	e.last = f.State.KineticEnergy()
	e.total += e.last
	e.samples++
}

func (e *KineticEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

// Last is the energy of the most recent frame.
func (e *KineticEnergy) Last() float64 { return e.last }

func (e *KineticEnergy) Reset() {
	e.samples = 0
	e.total = 0
	e.last = 0
}

// PeakSpeed is the largest body speed seen.
type PeakSpeed struct {
	name string
	max  float64
}

func NewPeakSpeed() *PeakSpeed {
	return &PeakSpeed{name: "peak_speed"}
}

func (p *PeakSpeed) Name() string { return p.name }

func (p *PeakSpeed) Observe(f sim.Frame) {
	for _, b := range f.State.Bodies {
		p.max = math.Max(p.max, b.Speed())
	}
}

func (p *PeakSpeed) Value() float64 { return p.max }

func (p *PeakSpeed) Reset() { p.max = 0 }
