package physics

// Integrate applies symplectic Euler to every body, clears the acceleration
// accumulators and returns the total kinetic energy after the velocity
// update.
func (e *Engine) Integrate(dt float64) float64 {
	ke := 0.0
	m := e.cfg.Mass

	for i := range e.bodies {
		b := &e.bodies[i]
		b.Velocity = b.Velocity.Add(b.Acceleration.Scale(dt))
		b.Position = b.Position.Add(b.Velocity.Scale(dt))
		b.Acceleration.X, b.Acceleration.Y = 0, 0
		ke += m * b.Velocity.LenSq() / 2
	}
	return ke
}
