package config

import "sort"

// Presets are named starting points. Each is built on DefaultConfig.
var Presets = map[string]func() *Config{
	"random": DefaultConfig,
	"collision": func() *Config {
		c := DefaultConfig()
		c.Layout = "collision"
		c.Seed = 42
		return c
	},
	"small": func() *Config {
		c := DefaultConfig()
		c.Bodies.Count = 200
		c.World = WorldConfig{Width: 600, Height: 600}
		c.Physics.G = 6.67e-4
		c.Physics.MaxDistance = 600
		c.Steps = 500
		return c
	},
	"smash": func() *Config {
		c := DefaultConfig()
		c.Layout = "collision"
		c.Bodies.Count = 400
		c.World = WorldConfig{Width: 800, Height: 800}
		c.Cluster = ClusterConfig{Majority: 300, Padding: 1, Speed: 0.5}
		c.Physics.Elasticity = 0.2
		c.Steps = 600
		return c
	},
	"bouncy": func() *Config {
		c := DefaultConfig()
		c.Bodies.Count = 300
		c.World = WorldConfig{Width: 400, Height: 400}
		c.Physics.Elasticity = 1
		c.Physics.G = 6.67e-3
		c.Physics.MaxDistance = 400
		return c
	},
}

func GetPreset(name string) *Config {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	return fn()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
