package automation

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/nbodysim/internal/config"
	"github.com/san-kum/nbodysim/internal/experiment"
	"github.com/san-kum/nbodysim/internal/sim"
	"github.com/san-kum/nbodysim/internal/storage"
)

// Batch is a YAML file describing runs, parameter sweeps and seed ensembles
// executed in order.
type Batch struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Runs        []RunSpec       `yaml:"runs"`
	Sweeps      []SweepSpec     `yaml:"sweeps"`
	Grids       []GridSpec      `yaml:"grids"`
	MonteCarlo  *MonteCarloSpec `yaml:"monte_carlo"`

	dir string
}

// Base selects the starting configuration of a run: a preset, a config file,
// or the defaults, with a few common overrides on top.
type Base struct {
	Preset     string   `yaml:"preset"`
	Config     string   `yaml:"config"`
	Seed       *int64   `yaml:"seed"`
	Steps      int      `yaml:"steps"`
	Bodies     int      `yaml:"bodies"`
	Layout     string   `yaml:"layout"`
	Elasticity *float64 `yaml:"elasticity"`
}

type RunSpec struct {
	Name    string `yaml:"name"`
	Base    `yaml:",inline"`
	Metrics []string `yaml:"metrics"`
	Save    bool     `yaml:"save"`
}

type RunOutcome struct {
	Name   string
	RunID  string
	Result *sim.Result
}

func LoadBatch(path string) (*Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var batch Batch
	if err := yaml.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("parse batch %s: %w", path, err)
	}
	batch.dir = filepath.Dir(path)

	return &batch, nil
}

// Dir is the directory relative config paths resolve against.
func (b *Batch) Dir() string { return b.dir }

// Resolve builds the configuration for b. Config paths are relative to dir.
func (b Base) Resolve(dir string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if b.Preset != "" {
		cfg = config.GetPreset(b.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", b.Preset)
		}
	}
	if b.Config != "" {
		path := b.Config
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		loaded, err := config.LoadInto(cfg, path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if b.Seed != nil {
		cfg.Seed = *b.Seed
	}
	if b.Steps > 0 {
		cfg.Steps = b.Steps
	}
	if b.Bodies > 0 {
		cfg.Bodies.Count = b.Bodies
	}
	if b.Layout != "" {
		cfg.Layout = b.Layout
	}
	if b.Elasticity != nil {
		cfg.Physics.Elasticity = *b.Elasticity
	}
	return cfg, cfg.Validate()
}

// RunBatch executes every run in order. Results are saved to store when the
// run asks for it and store is not nil. Progress goes to out.
func RunBatch(ctx context.Context, batch *Batch, store *storage.Store, out io.Writer) ([]RunOutcome, error) {
	registry := experiment.NewRegistry()
	outcomes := make([]RunOutcome, 0, len(batch.Runs))

	for i, run := range batch.Runs {
		name := run.Name
		if name == "" {
			name = fmt.Sprintf("run-%d", i+1)
		}
		fmt.Fprintf(out, "Running %d/%d: %s\n", i+1, len(batch.Runs), name)

		cfg, err := run.Resolve(batch.dir)
		if err != nil {
			return outcomes, fmt.Errorf("run %s: %w", name, err)
		}

		metrics := registry.DefaultMetrics(cfg.Simulation())
		if len(run.Metrics) > 0 {
			metrics, err = registry.Metrics(run.Metrics, cfg.Simulation())
			if err != nil {
				return outcomes, fmt.Errorf("run %s: %w", name, err)
			}
		}

		exp := experiment.New(cfg)
		if err := exp.Setup(metrics); err != nil {
			return outcomes, fmt.Errorf("run %s setup: %w", name, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return outcomes, fmt.Errorf("run %s: %w", name, err)
		}

		outcome := RunOutcome{Name: name, Result: result}
		if run.Save && store != nil {
			id, err := store.Save(cfg, result)
			if err != nil {
				return outcomes, fmt.Errorf("run %s save: %w", name, err)
			}
			outcome.RunID = id
		}
		outcomes = append(outcomes, outcome)
	}

	return outcomes, nil
}
