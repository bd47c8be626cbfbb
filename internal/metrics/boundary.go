package metrics

import "github.com/san-kum/bounce/internal/sim"

// Reflections counts wall bounces. A corner hit counts twice.
type Reflections struct {
	name  string
	count int
}

func NewReflections() *Reflections {
	return &Reflections{name: "reflections"}
}

func (r *Reflections) Name() string { return r.name }

func (r *Reflections) Observe(f sim.Frame) {
	for _, h := range f.Hits {
		r.count += h.Count()
	}
}

func (r *Reflections) Value() float64 { return float64(r.count) }

func (r *Reflections) Reset() { r.count = 0 }

// Containment is the fraction of frames in which every body sat inside the
// playfield after clamping. Anything below 1 means a body was too large for
// the field.
type Containment struct {
	name       string
	violations int
	samples    int
}

func NewContainment() *Containment {
	return &Containment{name: "containment"}
}

func (c *Containment) Name() string { return c.name }

func (c *Containment) Observe(f sim.Frame) {
	c.samples++
	for _, b := range f.State.Bodies {
		if !b.Inside(f.State.Bounds) {
			c.violations++
			break
		}
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}

// Defaults is the metric set attached to every run.
func Defaults() []sim.Metric {
	return []sim.Metric{
		NewKineticEnergy(),
		NewPeakSpeed(),
		NewReflections(),
		NewContainment(),
	}
}
