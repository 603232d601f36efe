package physics

import (
	"fmt"

	"github.com/san-kum/nbodysim/internal/dynamo"
	"github.com/san-kum/nbodysim/internal/scenario"
)

// Engine advances a fixed population of bodies. It is not safe for
// concurrent use; read bodies only between calls to Step.
type Engine struct {
	cfg     dynamo.Config
	bodies  []dynamo.Body
	minDist float64
	maxDist float64
	soft2   float64
	paused  bool
	steps   int
	elapsed float64

	contacts []pair
}

type pair struct{ i, j int }

// Initialize validates cfg and builds an engine over a freshly generated
// population seeded with cfg.Seed.
func Initialize(cfg dynamo.Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = scenario.Prepare(cfg)

	bodies, err := scenario.New(cfg.Seed).Generate(cfg)
	if err != nil {
		return nil, err
	}
	return newEngine(cfg, bodies), nil
}

// NewEngine builds an engine over a copy of bodies. cfg.N is taken from
// len(bodies).
func NewEngine(cfg dynamo.Config, bodies []dynamo.Body) (*Engine, error) {
	cfg.N = len(bodies)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	for i, b := range bodies {
		if !b.IsValid() {
			return nil, fmt.Errorf("%w: body %d", dynamo.ErrInvalidState, i)
		}
	}
	own := make([]dynamo.Body, len(bodies))
	copy(own, bodies)
	return newEngine(cfg, own), nil
}

func newEngine(cfg dynamo.Config, bodies []dynamo.Body) *Engine {
	return &Engine{
		cfg:     cfg,
		bodies:  bodies,
		minDist: cfg.MinDist(),
		maxDist: cfg.MaxDistance,
		soft2:   cfg.Softening * cfg.Softening,
	}
}

// Step advances every body by dt: gravity, integration, then collision
// resolution.
func (e *Engine) Step(dt float64) dynamo.Diagnostics {
	var d dynamo.Diagnostics
	d.GravityPairs = e.Accumulate()
	d.KineticEnergy = e.Integrate(dt)
	d.Contacts, d.Resolved, d.Degenerate = e.ResolveCollisions()
	e.steps++
	e.elapsed += dt
	return d
}

func (e *Engine) SetPaused(p bool) { e.paused = p }
func (e *Engine) IsPaused() bool   { return e.paused }

// Bodies returns a copy of the current population.
func (e *Engine) Bodies() []dynamo.Body {
	out := make([]dynamo.Body, len(e.bodies))
	copy(out, e.bodies)
	return out
}

// CopyBodies copies the population into dst, growing it when needed, and
// returns the filled slice.
func (e *Engine) CopyBodies(dst []dynamo.Body) []dynamo.Body {
	if cap(dst) < len(e.bodies) {
		dst = make([]dynamo.Body, len(e.bodies))
	}
	dst = dst[:len(e.bodies)]
	copy(dst, e.bodies)
	return dst
}

func (e *Engine) Body(i int) dynamo.Body { return e.bodies[i] }
func (e *Engine) Len() int               { return len(e.bodies) }
func (e *Engine) Radius() float64        { return e.cfg.Radius }
func (e *Engine) Mass() float64          { return e.cfg.Mass }
func (e *Engine) Config() dynamo.Config  { return e.cfg }

// Steps returns how many times Step has run.
func (e *Engine) Steps() int { return e.steps }

// Elapsed returns the sum of every dt passed to Step.
func (e *Engine) Elapsed() float64 { return e.elapsed }

// Validate returns a SimulationError for the first body holding NaN or Inf.
func (e *Engine) Validate() error {
	for i, b := range e.bodies {
		if !b.IsValid() {
			return &dynamo.SimulationError{
				Step:    e.steps,
				Time:    e.elapsed,
				Body:    i,
				Wrapped: dynamo.ErrInvalidState,
			}
		}
	}
	return nil
}
