// Package physics implements the n-body step engine.
//
// An [Engine] owns one contiguous slice of equal-mass bodies and advances it
// one tick at a time:
//
//   - [Engine.Accumulate]: pairwise gravity over unique pairs, O(n²)
//   - [Engine.Integrate]: symplectic Euler, velocity then position
//   - [Engine.ResolveCollisions]: iterated overlap correction and impulses
//
// [Engine.Step] runs all three in that order and reports [dynamo.Diagnostics].
//
// # Distance Conventions
//
// Gravity applies to a pair when minDist < d <= maxDist. Pairs at or inside
// minDist (2×radius by default) are handled only by collision resolution.
// Both paths derive the pair direction from the same separation helper, which
// substitutes a fixed +X normal for coincident bodies so no NaN or Inf can
// enter the state.
//
// # Example
//
//	eng, err := physics.Initialize(cfg)
//	if err != nil {
//	    return err
//	}
//	for !done {
//	    if !eng.IsPaused() {
//	        diag := eng.Step(cfg.Dt)
//	        _ = diag.KineticEnergy
//	    }
//	}
package physics
