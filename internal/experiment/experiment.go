package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/nbodysim/internal/config"
	"github.com/san-kum/nbodysim/internal/dynamo"
	"github.com/san-kum/nbodysim/internal/physics"
	"github.com/san-kum/nbodysim/internal/sim"
)

type Experiment struct {
	cfg       *config.Config
	simulator *sim.Simulator
	validate  bool
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{cfg: cfg.Clone(), validate: true}
}

// Setup builds the engine and attaches metrics. A nil metric list attaches
// the default set.
func (e *Experiment) Setup(metrics []dynamo.Metric) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	engine, err := physics.Initialize(e.cfg.Simulation())
	if err != nil {
		return err
	}

	if metrics == nil {
		metrics = NewRegistry().DefaultMetrics(engine.Config())
	}
	e.simulator = sim.New(engine)
	for _, m := range metrics {
		e.simulator.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	return e.simulator.Run(ctx, sim.Config{
		Steps:         e.cfg.Steps,
		Dt:            e.cfg.Physics.Dt,
		ValidateState: e.validate,
	})
}

// SetValidateState toggles the per-step NaN/Inf check.
func (e *Experiment) SetValidateState(v bool) { e.validate = v }

func (e *Experiment) Config() *config.Config { return e.cfg }

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}
