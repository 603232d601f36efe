package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/nbodysim/internal/dynamo"
	"github.com/san-kum/nbodysim/internal/physics"
)

type Simulator struct {
	engine    *physics.Engine
	metrics   []dynamo.Metric
	observers []dynamo.Observer
	view      []dynamo.Body
}

func New(engine *physics.Engine) *Simulator {
	return &Simulator{
		engine:    engine,
		metrics:   make([]dynamo.Metric, 0),
		observers: make([]dynamo.Observer, 0),
	}
}

func (s *Simulator) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }
func (s *Simulator) Engine() *physics.Engine       { return s.engine }

// Run steps the engine cfg.Steps times. Cancellation is checked between
// steps; on cancellation the partial result is returned with ctx.Err().
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result{
		Times:       make([]float64, 0, cfg.Steps),
		Diagnostics: make([]dynamo.Diagnostics, 0, cfg.Steps),
		Metrics:     make(map[string]float64),
		Seed:        s.engine.Config().Seed,
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	t := 0.0
	var runErr error
	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
		default:
		}
		if runErr != nil {
			break
		}

		d := s.engine.Step(cfg.Dt)
		t += cfg.Dt

		if cfg.ValidateState {
			if err := s.engine.Validate(); err != nil {
				runErr = err
				break
			}
		}

		result.StepsTaken++
		result.Times = append(result.Times, t)
		result.Diagnostics = append(result.Diagnostics, d)
		s.notify(d, t)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	result.Final = s.engine.Bodies()

	return result, runErr
}

// RunWithCallback steps until cfg.Steps is reached, ctx is done, or the
// callback returns false.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg Config, callback func(bodies []dynamo.Body, d dynamo.Diagnostics, t float64) bool) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}

	t := 0.0
	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		d := s.engine.Step(cfg.Dt)
		t += cfg.Dt

		if cfg.ValidateState {
			if err := s.engine.Validate(); err != nil {
				return err
			}
		}

		s.view = s.engine.CopyBodies(s.view)
		if !callback(s.view, d, t) {
			return nil
		}
	}
	return nil
}

func (s *Simulator) notify(d dynamo.Diagnostics, t float64) {
	if len(s.metrics) == 0 && len(s.observers) == 0 {
		return
	}
	s.view = s.engine.CopyBodies(s.view)
	for _, m := range s.metrics {
		m.Observe(s.view, d, t)
	}
	for _, obs := range s.observers {
		obs.OnStep(s.view, d, t)
	}
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", dynamo.ErrInvalidConfig, cfg.Dt)
	}
	if cfg.Steps <= 0 {
		return fmt.Errorf("%w: steps must be positive, got %d", dynamo.ErrInvalidConfig, cfg.Steps)
	}
	return nil
}
