package physics

// ResolveCollisions runs the configured number of scan/resolve cycles.
// contacts is the number of overlapping pairs found by the first scan,
// resolved counts pair resolutions over all cycles and degenerate counts
// resolutions that used the fallback normal.
func (e *Engine) ResolveCollisions() (contacts, resolved, degenerate int) {
	threshold := 2 * e.cfg.Radius

	for k := 0; k < e.cfg.CollisionIterations; k++ {
		e.contacts = e.collectContacts(threshold, e.contacts[:0])
		if k == 0 {
			contacts = len(e.contacts)
		}
		if len(e.contacts) == 0 {
			break
		}

		for _, p := range e.contacts {
			ok, degen := e.resolve(p, threshold)
			if ok {
				resolved++
			}
			if degen {
				degenerate++
			}
		}
	}
	return contacts, resolved, degenerate
}

// collectContacts appends every pair closer than threshold, in ascending
// index order.
func (e *Engine) collectContacts(threshold float64, dst []pair) []pair {
	n := len(e.bodies)
	t2 := threshold * threshold

	for i := 0; i < n; i++ {
		pi := e.bodies[i].Position
		for j := i + 1; j < n; j++ {
			if pi.DistanceSqTo(e.bodies[j].Position) < t2 {
				dst = append(dst, pair{i, j})
			}
		}
	}
	return dst
}

// resolve pushes one pair apart along the line of centres and, when the
// bodies approach each other, exchanges an impulse. Earlier resolutions in the
// same cycle may already have separated the pair, in which case it is skipped.
func (e *Engine) resolve(p pair, threshold float64) (ok, degenerate bool) {
	bi, bj := &e.bodies[p.i], &e.bodies[p.j]

	dist, n, degenerate := separation(bi.Position, bj.Position)
	overlap := threshold - dist
	if overlap <= 0 {
		return false, degenerate
	}

	shift := n.Scale(overlap / 2 * e.cfg.OverlapCorrection)
	bi.Position = bi.Position.Sub(shift)
	bj.Position = bj.Position.Add(shift)

	dvn := bj.Velocity.Sub(bi.Velocity).Dot(n)
	if dvn > 0 {
		return true, degenerate
	}

	// mass cancels: every body carries the same mass
	impulse := n.Scale((1 + e.cfg.Elasticity) * dvn / 2)
	bi.Velocity = bi.Velocity.Add(impulse)
	bj.Velocity = bj.Velocity.Sub(impulse)
	return true, degenerate
}
