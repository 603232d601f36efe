package experiment

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/nbodysim/internal/config"
	"github.com/san-kum/nbodysim/internal/dynamo"
)

func smallConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Bodies.Count = 40
	cfg.World = config.WorldConfig{Width: 150, Height: 150}
	cfg.Physics.MaxDistance = 200
	cfg.Steps = 12
	return cfg
}

func TestExperimentRun(t *testing.T) {
	exp := New(smallConfig())
	if err := exp.Setup(nil); err != nil {
		t.Fatalf("setup: %v", err)
	}

	result, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.StepsTaken != 12 {
		t.Errorf("expected 12 steps, got %d", result.StepsTaken)
	}
	for _, name := range NewRegistry().ListMetrics() {
		if _, ok := result.Metrics[name]; !ok {
			t.Errorf("default metric %s missing", name)
		}
	}
}

func TestExperimentNotSetup(t *testing.T) {
	if _, err := New(smallConfig()).Run(context.Background()); err == nil {
		t.Error("expected error when running before setup")
	}
}

func TestExperimentInvalidConfig(t *testing.T) {
	cfg := smallConfig()
	cfg.Bodies.Radius = 0
	if err := New(cfg).Setup(nil); !errors.Is(err, dynamo.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestExperimentCopiesConfig(t *testing.T) {
	cfg := smallConfig()
	exp := New(cfg)
	cfg.Steps = 1
	if exp.Config().Steps != 12 {
		t.Error("experiment should not see later config edits")
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	cfg := dynamo.DefaultConfig()

	ms, err := r.Metrics([]string{"contacts", "momentum_drift"}, cfg)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(ms) != 2 || ms[0].Name() != "contacts" || ms[1].Name() != "momentum_drift" {
		t.Errorf("unexpected metrics %v", ms)
	}

	if _, err := r.GetMetric("nonexistent", cfg); err == nil {
		t.Error("expected error for unknown metric")
	}
	if len(r.DefaultMetrics(cfg)) != len(r.ListMetrics()) {
		t.Error("default set should cover every registered metric")
	}
}
