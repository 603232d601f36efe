package sim

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/nbodysim/internal/dynamo"
	"github.com/san-kum/nbodysim/internal/physics"
)

// Ensemble runs one independent engine per seed. Engines share nothing, so
// each runs on its own goroutine.
type Ensemble struct {
	cfg     dynamo.Config
	seeds   []int64
	metrics func(dynamo.Config) []dynamo.Metric
	limit   int
}

func NewEnsemble(cfg dynamo.Config, seeds []int64, metrics func(dynamo.Config) []dynamo.Metric) *Ensemble {
	return &Ensemble{
		cfg:     cfg,
		seeds:   seeds,
		metrics: metrics,
		limit:   runtime.NumCPU(),
	}
}

// SetLimit caps the number of engines running at once.
func (e *Ensemble) SetLimit(n int) { e.limit = n }

// Run returns results in seed order. The first failing run cancels the rest.
func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(e.seeds))

	g, ctx := errgroup.WithContext(ctx)
	if e.limit > 0 {
		g.SetLimit(e.limit)
	}

	for i, seed := range e.seeds {
		i, seed := i, seed
		g.Go(func() error {
			simCfg := e.cfg
			simCfg.Seed = seed

			engine, err := physics.Initialize(simCfg)
			if err != nil {
				return err
			}
			s := New(engine)
			if e.metrics != nil {
				for _, m := range e.metrics(engine.Config()) {
					s.AddMetric(m)
				}
			}

			res, err := s.Run(ctx, cfg)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
