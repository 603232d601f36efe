package metrics

import (
	"math"

	"github.com/san-kum/nbodysim/internal/dynamo"
)

// MomentumDrift reports the largest deviation of total momentum from its
// first observed value. Gravity pairs and collision impulses are both
// symmetric, so this should stay at rounding level.
type MomentumDrift struct {
	name     string
	mass     float64
	initial  dynamo.Vec2
	maxDrift float64
	samples  int
}

func NewMomentumDrift(mass float64) *MomentumDrift {
	return &MomentumDrift{name: "momentum_drift", mass: mass}
}

func (m *MomentumDrift) Name() string { return m.name }

func (m *MomentumDrift) Observe(bodies []dynamo.Body, d dynamo.Diagnostics, t float64) {
	var p dynamo.Vec2
	for _, b := range bodies {
		p = p.Add(b.Velocity)
	}
	p = p.Scale(m.mass)

	if m.samples == 0 {
		m.initial = p
	}
	m.samples++
	m.maxDrift = math.Max(m.maxDrift, p.DistanceTo(m.initial))
}

func (m *MomentumDrift) Value() float64 { return m.maxDrift }

func (m *MomentumDrift) Reset() {
	m.initial = dynamo.Vec2{}
	m.maxDrift = 0
	m.samples = 0
}
