package automation

import (
	"context"
	"fmt"
	"io"

	"github.com/san-kum/nbodysim/internal/config"
	"github.com/san-kum/nbodysim/internal/experiment"
)

// SweepSpec varies one physics knob over an inclusive range.
type SweepSpec struct {
	Name     string `yaml:"name"`
	Base     `yaml:",inline"`
	Param    string  `yaml:"param"`
	Min      float64 `yaml:"min"`
	Max      float64 `yaml:"max"`
	NumSteps int     `yaml:"num_steps"`
}

type SweepResult struct {
	ParamValue float64
	Metrics    map[string]float64
}

// SweepParams lists the knobs a sweep can vary.
var SweepParams = map[string]func(*config.Config, float64){
	"elasticity":         func(c *config.Config, v float64) { c.Physics.Elasticity = v },
	"g":                  func(c *config.Config, v float64) { c.Physics.G = v },
	"dt":                 func(c *config.Config, v float64) { c.Physics.Dt = v },
	"softening":          func(c *config.Config, v float64) { c.Physics.Softening = v },
	"overlap_correction": func(c *config.Config, v float64) { c.Physics.OverlapCorrection = v },
	"cluster_speed":      func(c *config.Config, v float64) { c.Cluster.Speed = v },
}

// RunSweep executes one run per parameter value with the default metrics.
func RunSweep(ctx context.Context, sweep SweepSpec, dir string, out io.Writer) ([]SweepResult, error) {
	set, ok := SweepParams[sweep.Param]
	if !ok {
		return nil, fmt.Errorf("unknown sweep parameter: %s", sweep.Param)
	}
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep %s: num_steps must be at least 1", sweep.Name)
	}

	base, err := sweep.Resolve(dir)
	if err != nil {
		return nil, err
	}

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.Max - sweep.Min) / float64(sweep.NumSteps-1)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.Min + float64(i)*paramStep

		cfg := base.Clone()
		set(cfg, paramVal)

		exp := experiment.New(cfg)
		if err := exp.Setup(nil); err != nil {
			return nil, fmt.Errorf("sweep %s=%g: %w", sweep.Param, paramVal, err)
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return nil, err
		}

		results = append(results, SweepResult{ParamValue: paramVal, Metrics: result.Metrics})
		fmt.Fprintf(out, "Sweep %d/%d: %s=%.4g\n", i+1, sweep.NumSteps, sweep.Param, paramVal)
	}

	return results, nil
}
