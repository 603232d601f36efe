package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	EnvSeed   = "NBODYSIM_SEED"
	EnvBodies = "NBODYSIM_BODIES"
	EnvSteps  = "NBODYSIM_STEPS"
	EnvLayout = "NBODYSIM_LAYOUT"
	EnvData   = "NBODYSIM_DATA"
)

// LoadDotEnv loads variables from the given files (".env" when none are
// named) without overriding variables already set in the environment. A
// missing file is not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides run settings from NBODYSIM_* variables.
func (c *Config) ApplyEnv() error {
	if v, ok := os.LookupEnv(EnvSeed); ok {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		c.Seed = seed
	}
	if v, ok := os.LookupEnv(EnvBodies); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvBodies, err)
		}
		c.Bodies.Count = n
	}
	if v, ok := os.LookupEnv(EnvSteps); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSteps, err)
		}
		c.Steps = n
	}
	if v, ok := os.LookupEnv(EnvLayout); ok {
		c.Layout = v
	}
	return nil
}

// DataDir returns the run store directory, NBODYSIM_DATA when set.
func DataDir() string {
	if v := os.Getenv(EnvData); v != "" {
		return v
	}
	return DefaultDataDir
}
