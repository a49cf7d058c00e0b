package metrics

import "github.com/san-kum/partsim/internal/dynamo"

// Containment is the fraction of frames in which every body lies inside
// the arena, give or take tolerance units of overshoot. Reflection does
// not clamp positions, so a fast body may poke out for a tick.
type Containment struct {
	name       string
	tolerance  float64
	violations int
	samples    int
}

func NewContainment(tolerance float64) *Containment {
	return &Containment{
		name:      "containment",
		tolerance: tolerance,
	}
}

func (c *Containment) Name() string {
	return c.name
}

func (c *Containment) Observe(f dynamo.Frame) {
	c.samples++
	for _, b := range f.Bodies {
		if b.X-b.Radius < -c.tolerance || b.X+b.Radius > f.Width+c.tolerance ||
			b.Y-b.Radius < -c.tolerance || b.Y+b.Radius > f.Height+c.tolerance {
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
