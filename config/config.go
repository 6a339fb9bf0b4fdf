package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds runtime settings. Gameplay tuning lives in prefab YAML.
type Config struct {
	Level     string `env:"TOPDOWN_LEVEL"      envDefault:"arena"`
	Debug     bool   `env:"TOPDOWN_DEBUG"      envDefault:"false"`
	HotReload bool   `env:"TOPDOWN_HOT_RELOAD" envDefault:"false"`
	TPS       int    `env:"TOPDOWN_TPS"        envDefault:"60"`
	FixedHz   int    `env:"TOPDOWN_FIXED_HZ"   envDefault:"50"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads Config from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.TPS <= 0 {
		return fmt.Errorf("config: tps must be positive, got %d", c.TPS)
	}
	if c.FixedHz <= 0 {
		return fmt.Errorf("config: fixed hz must be positive, got %d", c.FixedHz)
	}
	return nil
}

// WatchPrefabs reports whether prefab files should be hot reloaded.
func (c Config) WatchPrefabs() bool {
	return c.Debug || c.HotReload
}
