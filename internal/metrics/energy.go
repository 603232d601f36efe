package metrics

import (
	"math"

	"github.com/san-kum/nbodysim/internal/dynamo"
)

// KineticEnergy averages the per-step kinetic energy reported by the engine.
type KineticEnergy struct {
	name    string
	total   float64
	samples int
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(bodies []dynamo.Body, d dynamo.Diagnostics, t float64) {
	e.total += d.KineticEnergy
	e.samples++
}

func (e *KineticEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *KineticEnergy) Reset() {
	e.total = 0
	e.samples = 0
}

// PeakKineticEnergy tracks the largest kinetic energy seen in a run.
type PeakKineticEnergy struct {
	name string
	peak float64
}

func NewPeakKineticEnergy() *PeakKineticEnergy {
	return &PeakKineticEnergy{name: "kinetic_peak"}
}

func (p *PeakKineticEnergy) Name() string { return p.name }

func (p *PeakKineticEnergy) Observe(bodies []dynamo.Body, d dynamo.Diagnostics, t float64) {
	p.peak = math.Max(p.peak, d.KineticEnergy)
}

func (p *PeakKineticEnergy) Value() float64 { return p.peak }
func (p *PeakKineticEnergy) Reset()         { p.peak = 0 }
