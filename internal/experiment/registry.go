package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/nbodysim/internal/dynamo"
	"github.com/san-kum/nbodysim/internal/metrics"
)

// Registry maps metric names to constructors so batch files and flags can
// select metrics by name.
type Registry struct {
	metrics map[string]func(dynamo.Config) dynamo.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		metrics: make(map[string]func(dynamo.Config) dynamo.Metric),
	}

	r.metrics["kinetic_energy"] = func(dynamo.Config) dynamo.Metric { return metrics.NewKineticEnergy() }
	r.metrics["kinetic_peak"] = func(dynamo.Config) dynamo.Metric { return metrics.NewPeakKineticEnergy() }
	r.metrics["contacts"] = func(dynamo.Config) dynamo.Metric { return metrics.NewContacts() }
	r.metrics["degenerate"] = func(dynamo.Config) dynamo.Metric { return metrics.NewDegenerate() }
	r.metrics["momentum_drift"] = func(cfg dynamo.Config) dynamo.Metric { return metrics.NewMomentumDrift(cfg.Mass) }
	r.metrics["containment"] = func(cfg dynamo.Config) dynamo.Metric {
		return metrics.NewContainment(cfg.Width, cfg.Height, cfg.Width/2)
	}

	return r
}

func (r *Registry) GetMetric(name string, cfg dynamo.Config) (dynamo.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(cfg), nil
}

// Metrics resolves names in order.
func (r *Registry) Metrics(names []string, cfg dynamo.Config) ([]dynamo.Metric, error) {
	out := make([]dynamo.Metric, 0, len(names))
	for _, name := range names {
		m, err := r.GetMetric(name, cfg)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *Registry) ListMetrics() []string {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) DefaultMetrics(cfg dynamo.Config) []dynamo.Metric {
	return metrics.Defaults(cfg)
}
