package physics

// Accumulate adds the gravitational acceleration of every unique pair inside
// the gravity window to both bodies and returns the number of such pairs.
// Each pair contributes A to body i and exactly -A to body j.
func (e *Engine) Accumulate() int {
	n := len(e.bodies)
	g := e.cfg.G
	m := e.cfg.Mass
	gmm := g * m * m
	pairs := 0

	for i := 0; i < n; i++ {
		bi := &e.bodies[i]
		for j := i + 1; j < n; j++ {
			bj := &e.bodies[j]

			dist, normal, _ := separation(bi.Position, bj.Position)
			if dist <= e.minDist || dist > e.maxDist {
				continue
			}

			a := gmm / (dist*dist + e.soft2)
			acc := normal.Scale(a / m)

			bi.Acceleration = bi.Acceleration.Add(acc)
			bj.Acceleration = bj.Acceleration.Sub(acc)
			pairs++
		}
	}
	return pairs
}
