package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/nbodysim/internal/dynamo"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Layout != "uniform" {
		t.Errorf("expected layout uniform, got %s", cfg.Layout)
	}
	if cfg.Bodies.Count != 1000 {
		t.Errorf("expected 1000 bodies, got %d", cfg.Bodies.Count)
	}
	if cfg.Physics.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestSimulationMatchesEngineDefaults(t *testing.T) {
	got := DefaultConfig().Simulation()
	want := dynamo.DefaultConfig()
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := DefaultConfig()
	cfg.Layout = "collision"
	cfg.Seed = 7
	cfg.Physics.Elasticity = 0.9
	cfg.Cluster.Majority = 12

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch: %+v vs %+v", loaded, cfg)
	}
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := "layout: collision\nphysics:\n  elasticity: 0.25\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Layout != "collision" || cfg.Physics.Elasticity != 0.25 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Physics.Dt != 10 || cfg.Bodies.Radius != 3 {
		t.Errorf("defaults lost: dt=%f radius=%f", cfg.Physics.Dt, cfg.Bodies.Radius)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("bodies: [1, 2"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero steps", func(c *Config) { c.Steps = 0 }},
		{"zero bodies", func(c *Config) { c.Bodies.Count = 0 }},
		{"negative mass", func(c *Config) { c.Bodies.Mass = -1 }},
		{"zero radius", func(c *Config) { c.Bodies.Radius = 0 }},
		{"unknown layout", func(c *Config) { c.Layout = "spiral" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, dynamo.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvSeed, "99")
	t.Setenv(EnvBodies, "64")
	t.Setenv(EnvSteps, "10")
	t.Setenv(EnvLayout, "collision")

	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("apply env: %v", err)
	}
	if cfg.Seed != 99 || cfg.Bodies.Count != 64 || cfg.Steps != 10 || cfg.Layout != "collision" {
		t.Errorf("env not applied: %+v", cfg)
	}
}

func TestApplyEnvInvalid(t *testing.T) {
	t.Setenv(EnvBodies, "many")
	if err := DefaultConfig().ApplyEnv(); err == nil {
		t.Error("expected error for non-numeric body count")
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := LoadDotEnv(filepath.Join(dir, "absent.env")); err != nil {
		t.Errorf("missing .env should be ignored, got %v", err)
	}

	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte(EnvSteps+"=33\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvSteps, "")
	os.Unsetenv(EnvSteps)

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatal(err)
	}
	if cfg.Steps != 33 {
		t.Errorf("expected steps 33 from .env, got %d", cfg.Steps)
	}
}

func TestDataDir(t *testing.T) {
	t.Setenv(EnvData, "")
	if DataDir() != DefaultDataDir {
		t.Errorf("expected default data dir, got %s", DataDir())
	}
	t.Setenv(EnvData, "/tmp/runs")
	if DataDir() != "/tmp/runs" {
		t.Errorf("expected env data dir, got %s", DataDir())
	}
}

func TestPresets(t *testing.T) {
	for _, name := range ListPresets() {
		t.Run(name, func(t *testing.T) {
			cfg := GetPreset(name)
			if cfg == nil {
				t.Fatal("expected preset, got nil")
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset invalid: %v", err)
			}
		})
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if GetPreset("collision").Layout != "collision" {
		t.Error("collision preset should use the collision layout")
	}
}

func TestPresetsAreIndependent(t *testing.T) {
	a := GetPreset("small")
	a.Bodies.Count = 1
	if GetPreset("small").Bodies.Count == 1 {
		t.Error("presets must return fresh copies")
	}
}
