package automation

import (
	"context"
	"fmt"

	"github.com/san-kum/nbodysim/internal/dynamo"
	"github.com/san-kum/nbodysim/internal/experiment"
	"github.com/san-kum/nbodysim/internal/optim"
)

// GridAxis is one searched parameter and its candidate values.
type GridAxis struct {
	Param  string    `yaml:"param"`
	Values []float64 `yaml:"values"`
}

// GridSpec searches every combination of its axes for the best metric value.
type GridSpec struct {
	Name     string `yaml:"name"`
	Base     `yaml:",inline"`
	Axes     []GridAxis `yaml:"axes"`
	Metric   string     `yaml:"metric"`
	Maximize bool       `yaml:"maximize"`
}

type GridResult struct {
	Best      map[string]float64
	Value     float64
	Evaluated int
}

func RunGrid(ctx context.Context, spec GridSpec, dir string) (*GridResult, error) {
	base, err := spec.Resolve(dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(spec.Axes))
	ranges := make([][]float64, len(spec.Axes))
	for i, axis := range spec.Axes {
		if _, ok := SweepParams[axis.Param]; !ok {
			return nil, fmt.Errorf("unknown grid parameter: %s", axis.Param)
		}
		names[i] = axis.Param
		ranges[i] = axis.Values
	}

	registry := experiment.NewRegistry()
	if _, err := registry.GetMetric(spec.Metric, base.Simulation()); err != nil {
		return nil, err
	}

	build := func(params map[string]float64) (*experiment.Experiment, error) {
		cfg := base.Clone()
		for name, v := range params {
			SweepParams[name](cfg, v)
		}
		m, err := registry.GetMetric(spec.Metric, cfg.Simulation())
		if err != nil {
			return nil, err
		}
		exp := experiment.New(cfg)
		if err := exp.Setup([]dynamo.Metric{m}); err != nil {
			return nil, err
		}
		return exp, nil
	}

	g := optim.NewGridSearch(names, ranges)
	best, val, err := g.Search(ctx, build, spec.Metric, spec.Maximize)
	if err != nil {
		return nil, err
	}
	return &GridResult{Best: best, Value: val, Evaluated: g.Evaluated()}, nil
}
