package physics

import (
	"math"

	"github.com/san-kum/nbodysim/internal/dynamo"
)

// KineticEnergy returns Σ m|v|²/2 over the current state.
func (e *Engine) KineticEnergy() float64 {
	ke := 0.0
	for _, b := range e.bodies {
		ke += 0.5 * e.cfg.Mass * b.Velocity.LenSq()
	}
	return ke
}

// PotentialEnergy sums -G·m²/r over pairs inside the gravity window, matching
// the pairs Accumulate would act on.
func (e *Engine) PotentialEnergy() float64 {
	n := len(e.bodies)
	gmm := e.cfg.G * e.cfg.Mass * e.cfg.Mass
	pe := 0.0

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dist, _, _ := separation(e.bodies[i].Position, e.bodies[j].Position)
			if dist <= e.minDist || dist > e.maxDist {
				continue
			}
			pe -= gmm / math.Sqrt(dist*dist+e.soft2)
		}
	}
	return pe
}

// Momentum returns the total linear momentum.
func (e *Engine) Momentum() dynamo.Vec2 {
	var p dynamo.Vec2
	for _, b := range e.bodies {
		p = p.Add(b.Velocity)
	}
	return p.Scale(e.cfg.Mass)
}

// AngularMomentum returns the z component of Σ m (r × v) about the origin.
func (e *Engine) AngularMomentum() float64 {
	l := 0.0
	for _, b := range e.bodies {
		l += e.cfg.Mass * (b.Position.X*b.Velocity.Y - b.Position.Y*b.Velocity.X)
	}
	return l
}

// CenterOfMass returns the mean body position.
func (e *Engine) CenterOfMass() dynamo.Vec2 {
	var c dynamo.Vec2
	for _, b := range e.bodies {
		c = c.Add(b.Position)
	}
	return c.Div(float64(len(e.bodies)))
}
