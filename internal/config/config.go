package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/nbodysim/internal/dynamo"
)

const (
	DefaultSteps   = 2000
	DefaultDataDir = ".nbodysim"
)

type Config struct {
	Layout  string        `yaml:"layout"`
	Seed    int64         `yaml:"seed"`
	Steps   int           `yaml:"steps"`
	Bodies  BodiesConfig  `yaml:"bodies"`
	World   WorldConfig   `yaml:"world"`
	Physics PhysicsConfig `yaml:"physics"`
	Cluster ClusterConfig `yaml:"cluster"`
}

type BodiesConfig struct {
	Count  int     `yaml:"count"`
	Mass   float64 `yaml:"mass"`
	Radius float64 `yaml:"radius"`
}

type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type PhysicsConfig struct {
	G                   float64 `yaml:"g"`
	Dt                  float64 `yaml:"dt"`
	Elasticity          float64 `yaml:"elasticity"`
	Softening           float64 `yaml:"softening"`
	MinDistance         float64 `yaml:"min_distance"`
	MaxDistance         float64 `yaml:"max_distance"`
	CollisionIterations int     `yaml:"collision_iterations"`
	OverlapCorrection   float64 `yaml:"overlap_correction"`
}

type ClusterConfig struct {
	Majority int     `yaml:"majority"`
	Padding  float64 `yaml:"padding"`
	Speed    float64 `yaml:"speed"`
}

func DefaultConfig() *Config {
	sim := dynamo.DefaultConfig()
	return &Config{
		Layout: string(sim.Layout),
		Seed:   sim.Seed,
		Steps:  DefaultSteps,
		Bodies: BodiesConfig{Count: sim.N, Mass: sim.Mass, Radius: sim.Radius},
		World:  WorldConfig{Width: sim.Width, Height: sim.Height},
		Physics: PhysicsConfig{
			G:                   sim.G,
			Dt:                  sim.Dt,
			Elasticity:          sim.Elasticity,
			Softening:           sim.Softening,
			MinDistance:         sim.MinDistance,
			MaxDistance:         sim.MaxDistance,
			CollisionIterations: sim.CollisionIterations,
			OverlapCorrection:   sim.OverlapCorrection,
		},
		Cluster: ClusterConfig{
			Majority: sim.ClusterMajority,
			Padding:  sim.ClusterPadding,
			Speed:    sim.ClusterSpeed,
		},
	}
}

// Load reads a YAML file on top of the defaults, so omitted keys keep their
// default values.
func Load(path string) (*Config, error) {
	return LoadInto(DefaultConfig(), path)
}

// LoadInto overlays the YAML file at path onto base.
func LoadInto(base *Config, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Simulation converts the file layout into the engine configuration. Layout
// aliases are resolved; an unknown layout is passed through for Validate to
// reject.
func (c *Config) Simulation() dynamo.Config {
	layout, err := dynamo.ParseLayout(c.Layout)
	if err != nil {
		layout = dynamo.Layout(c.Layout)
	}
	return dynamo.Config{
		G:                   c.Physics.G,
		Mass:                c.Bodies.Mass,
		Radius:              c.Bodies.Radius,
		N:                   c.Bodies.Count,
		Dt:                  c.Physics.Dt,
		Elasticity:          c.Physics.Elasticity,
		Softening:           c.Physics.Softening,
		MinDistance:         c.Physics.MinDistance,
		MaxDistance:         c.Physics.MaxDistance,
		CollisionIterations: c.Physics.CollisionIterations,
		OverlapCorrection:   c.Physics.OverlapCorrection,
		Width:               c.World.Width,
		Height:              c.World.Height,
		Layout:              layout,
		Seed:                c.Seed,
		ClusterMajority:     c.Cluster.Majority,
		ClusterPadding:      c.Cluster.Padding,
		ClusterSpeed:        c.Cluster.Speed,
	}
}

func (c *Config) Validate() error {
	if c.Steps <= 0 {
		return fmt.Errorf("%w: steps must be positive, got %d", dynamo.ErrInvalidConfig, c.Steps)
	}
	return c.Simulation().Validate()
}
