package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Simulation SimulationConfig `toml:"simulation"`
	Scene      SceneConfig      `toml:"scene"`
	Scripts    ScriptsConfig    `toml:"scripts"`
	Logging    LoggingConfig    `toml:"logging"`
	Profile    ProfileConfig    `toml:"profile"`
}

type SimulationConfig struct {
	Name     string        `toml:"name"`
	Ticks    int           `toml:"ticks"` // 0 = run until signalled
	TickRate time.Duration `toml:"tick_rate"`
	Seed     int64         `toml:"seed"`
}

type SceneConfig struct {
	Path string `toml:"path"`
}

type ScriptsConfig struct {
	Dir string `toml:"dir"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type ProfileConfig struct {
	Mode string `toml:"mode"` // "", "cpu" or "mem"
	Path string `toml:"path"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes TOML over the defaults. name is only used in error messages.
func Parse(data []byte, name string) (*Config, error) {
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", name, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", name, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Simulation.TickRate <= 0 {
		return fmt.Errorf("simulation.tick_rate must be positive, got %s", c.Simulation.TickRate)
	}
	if c.Simulation.Ticks < 0 {
		return fmt.Errorf("simulation.ticks must not be negative, got %d", c.Simulation.Ticks)
	}
	switch c.Profile.Mode {
	case "", "cpu", "mem":
	default:
		return fmt.Errorf("profile.mode %q is not one of cpu, mem", c.Profile.Mode)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Simulation: SimulationConfig{
			Name:     "secsim",
			Ticks:    0,
			TickRate: 16 * time.Millisecond,
			Seed:     1,
		},
		Scene: SceneConfig{
			Path: "data/scene.yaml",
		},
		Scripts: ScriptsConfig{
			Dir: "scripts",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Profile: ProfileConfig{
			Path: ".",
		},
	}
}
