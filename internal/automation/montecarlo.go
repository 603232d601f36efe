package automation

import (
	"context"
	"fmt"

	"github.com/san-kum/nbodysim/internal/metrics"
	"github.com/san-kum/nbodysim/internal/sim"
)

// MonteCarloSpec runs the same configuration over consecutive seeds.
type MonteCarloSpec struct {
	Base      `yaml:",inline"`
	NumTrials int   `yaml:"num_trials"`
	SeedStart int64 `yaml:"seed_start"`
	Workers   int   `yaml:"workers"`
}

type MonteCarloResult struct {
	Seed      int64
	Contained bool
	Metrics   map[string]float64
}

// RunMonteCarlo runs every trial concurrently, one engine per seed. A trial
// counts as contained when no body left the widened bounds at any step.
func RunMonteCarlo(ctx context.Context, spec MonteCarloSpec, dir string) ([]MonteCarloResult, error) {
	if spec.NumTrials < 1 {
		return nil, fmt.Errorf("monte carlo: num_trials must be at least 1")
	}
	cfg, err := spec.Resolve(dir)
	if err != nil {
		return nil, err
	}

	seeds := make([]int64, spec.NumTrials)
	for i := range seeds {
		seeds[i] = spec.SeedStart + int64(i)
	}

	ens := sim.NewEnsemble(cfg.Simulation(), seeds, metrics.Defaults)
	if spec.Workers > 0 {
		ens.SetLimit(spec.Workers)
	}

	runs, err := ens.Run(ctx, sim.Config{Steps: cfg.Steps, Dt: cfg.Physics.Dt, ValidateState: true})
	if err != nil {
		return nil, err
	}

	results := make([]MonteCarloResult, len(runs))
	for i, r := range runs {
		results[i] = MonteCarloResult{
			Seed:      r.Seed,
			Contained: r.Metrics["containment"] == 1,
			Metrics:   r.Metrics,
		}
	}
	return results, nil
}

// MonteCarloStats counts contained and escaped trials.
func MonteCarloStats(results []MonteCarloResult) (contained int, escaped int) {
	for _, r := range results {
		if r.Contained {
			contained++
		} else {
			escaped++
		}
	}
	return
}
