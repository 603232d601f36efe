// Package dynamo provides the core primitives shared by the n-body engine.
//
// The package defines the value types every other package builds on:
//
//   - [Vec2]: two-dimensional vector with zero-safe normalization
//   - [Body]: per-body kinematic state plus an opaque display tag
//   - [Config]: run-wide simulation knobs (mass, radius, thresholds, layout)
//   - [Diagnostics]: per-step numbers reported by the engine
//
// # Example
//
//	cfg := dynamo.DefaultConfig()
//	cfg.N = 200
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//
// # Thread Safety
//
// All types here are plain values. A []Body owned by an engine must only be
// read between steps.
package dynamo
