// Package config loads the planner's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	yaml "github.com/goccy/go-yaml"

	"kitchenplan/internal/kitchen"
	"kitchenplan/internal/sched"
)

// Config mirrors config.yml.
type Config struct {
	Scheduler sched.Config `yaml:"scheduler"`
	Conflicts Conflicts    `yaml:"conflicts"`
	Log       Log          `yaml:"log"`
	Kitchen   Kitchen      `yaml:"kitchen"`
}

type Conflicts struct {
	BottleneckThreshold float64 `yaml:"bottleneck_threshold"` // 0.8 by default
}

type Log struct {
	Level  string `yaml:"level"`  // debug|info|warn|error
	Format string `yaml:"format"` // text|json
}

type Kitchen struct {
	Preset string `yaml:"preset"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Scheduler: sched.DefaultConfig(),
		Conflicts: Conflicts{BottleneckThreshold: 0.8},
		Log:       Log{Level: "info", Format: "text"},
		Kitchen:   Kitchen{Preset: kitchen.DefaultPreset()},
	}
}

// Load reads YAML over the defaults. An empty path or a missing file yields
// the defaults; a file that exists but does not parse is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes data over the defaults and applies the sanity clamps.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.UnmarshalWithOptions(data, &cfg, yaml.DisallowUnknownField()); err != nil {
		return Default(), fmt.Errorf("parse config: %w", err)
	}

	// sanity clamps
	if cfg.Scheduler.ChefLookahead < 0 {
		cfg.Scheduler.ChefLookahead = 0
	}
	if t := cfg.Conflicts.BottleneckThreshold; t <= 0 || t > 1 {
		cfg.Conflicts.BottleneckThreshold = 0.8
	}
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format != "json" {
		cfg.Log.Format = "text"
	}
	if cfg.Kitchen.Preset == "" {
		cfg.Kitchen.Preset = kitchen.DefaultPreset()
	}
	if _, err := kitchen.Preset(cfg.Kitchen.Preset); err != nil {
		return Default(), fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
