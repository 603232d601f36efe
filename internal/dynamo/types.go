package dynamo

import (
	"fmt"
	"image/color"
	"math"
)

// Body is the kinematic state of one simulated point mass. Mass and radius
// are run-wide and live in Config.
type Body struct {
	Position     Vec2
	Velocity     Vec2
	Acceleration Vec2
	// Tag is owned by the renderer; the engine never reads it.
	Tag color.RGBA
}

// IsValid reports whether position and velocity are finite.
func (b Body) IsValid() bool {
	return b.Position.IsFinite() && b.Velocity.IsFinite()
}

type Layout string

const (
	LayoutUniform   Layout = "uniform"
	LayoutCollision Layout = "collision"
)

func ParseLayout(s string) (Layout, error) {
	switch Layout(s) {
	case LayoutUniform, "random":
		return LayoutUniform, nil
	case LayoutCollision:
		return LayoutCollision, nil
	}
	return "", fmt.Errorf("%w: unknown layout %q", ErrInvalidConfig, s)
}

// Config holds every knob of a simulation run. The engine treats it as
// read-only after initialization.
type Config struct {
	G          float64
	Mass       float64
	Radius     float64
	N          int
	Dt         float64
	Elasticity float64
	Softening  float64

	// MinDistance of zero resolves to 2*Radius.
	MinDistance         float64
	MaxDistance         float64
	CollisionIterations int
	OverlapCorrection   float64

	Width, Height float64
	Layout        Layout
	Seed          int64

	ClusterMajority int
	ClusterPadding  float64
	ClusterSpeed    float64
}

// DefaultConfig mirrors the constants of the original SDL program.
func DefaultConfig() Config {
	return Config{
		G:                   6.67e-6,
		Mass:                10,
		Radius:              3,
		N:                   1000,
		Dt:                  10,
		Elasticity:          0.5,
		MaxDistance:         2000,
		CollisionIterations: 5,
		OverlapCorrection:   1,
		Width:               2000,
		Height:              2000,
		Layout:              LayoutUniform,
		ClusterMajority:     500,
		ClusterPadding:      2,
		ClusterSpeed:        0.05,
	}
}

// MinDist returns the gravity lower cut-off.
func (c Config) MinDist() float64 {
	if c.MinDistance > 0 {
		return c.MinDistance
	}
	return 2 * c.Radius
}

// Diagonal returns the length of the simulation bounds diagonal.
func (c Config) Diagonal() float64 {
	return math.Hypot(c.Width, c.Height)
}

func (c Config) Validate() error {
	switch {
	case c.N <= 0:
		return fmt.Errorf("%w: body count must be positive, got %d", ErrInvalidConfig, c.N)
	case !(c.Mass > 0):
		return fmt.Errorf("%w: mass must be positive, got %g", ErrInvalidConfig, c.Mass)
	case !(c.Radius > 0):
		return fmt.Errorf("%w: radius must be positive, got %g", ErrInvalidConfig, c.Radius)
	case !(c.Dt > 0):
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidConfig, c.Dt)
	case c.Elasticity < 0 || c.Elasticity > 1:
		return fmt.Errorf("%w: elasticity must be in [0,1], got %g", ErrInvalidConfig, c.Elasticity)
	case !(c.OverlapCorrection > 0) || c.OverlapCorrection > 1:
		return fmt.Errorf("%w: overlap correction must be in (0,1], got %g", ErrInvalidConfig, c.OverlapCorrection)
	case c.CollisionIterations < 0:
		return fmt.Errorf("%w: collision iterations must not be negative, got %d", ErrInvalidConfig, c.CollisionIterations)
	case c.Softening < 0:
		return fmt.Errorf("%w: softening must not be negative, got %g", ErrInvalidConfig, c.Softening)
	case c.MinDistance < 0:
		return fmt.Errorf("%w: min distance must not be negative, got %g", ErrInvalidConfig, c.MinDistance)
	case !(c.MaxDistance > c.MinDist()):
		return fmt.Errorf("%w: max distance %g must exceed min distance %g", ErrInvalidConfig, c.MaxDistance, c.MinDist())
	case !(c.Width > 0) || !(c.Height > 0):
		return fmt.Errorf("%w: bounds must be positive, got %gx%g", ErrInvalidConfig, c.Width, c.Height)
	}
	if _, err := ParseLayout(string(c.Layout)); err != nil {
		return err
	}
	if c.Layout == LayoutCollision && !(c.ClusterSpeed > 0) {
		return fmt.Errorf("%w: cluster speed must be positive, got %g", ErrInvalidConfig, c.ClusterSpeed)
	}
	if c.ClusterPadding < 0 {
		return fmt.Errorf("%w: cluster padding must not be negative, got %g", ErrInvalidConfig, c.ClusterPadding)
	}
	return nil
}

// Diagnostics is reported by every engine step. None of it feeds back into
// the simulation.
type Diagnostics struct {
	KineticEnergy float64
	GravityPairs  int
	Contacts      int
	Resolved      int
	Degenerate    int
}

// Metric accumulates a scalar over the steps of a run.
type Metric interface {
	Name() string
	Observe(bodies []Body, d Diagnostics, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every step.
type Observer interface {
	OnStep(bodies []Body, d Diagnostics, t float64)
}
