package metrics

import "github.com/san-kum/nbodysim/internal/dynamo"

// Containment is the fraction of observed steps in which every body stayed
// inside the simulation bounds widened by margin on each side.
type Containment struct {
	name          string
	width, height float64
	margin        float64
	violations    int
	samples       int
}

func NewContainment(width, height, margin float64) *Containment {
	return &Containment{
		name:   "containment",
		width:  width,
		height: height,
		margin: margin,
	}
}

func (c *Containment) Name() string { return c.name }

func (c *Containment) Observe(bodies []dynamo.Body, d dynamo.Diagnostics, t float64) {
	c.samples++
	for _, b := range bodies {
		p := b.Position
		if p.X < -c.margin || p.Y < -c.margin || p.X > c.width+c.margin || p.Y > c.height+c.margin {
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
