package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the process configuration shared by the window and headless
// drivers. Environment variables provide defaults; flags override them.
type Config struct {
	Debug  bool    `env:"REMY_DEBUG" envDefault:"false"`
	Props  bool    `env:"REMY_PROPS" envDefault:"false"`
	Watch  bool    `env:"REMY_WATCH" envDefault:"false"`
	Script string  `env:"REMY_SCRIPT" envDefault:"demo"`
	Seed   uint64  `env:"REMY_SEED" envDefault:"1"`
	Frames int     `env:"REMY_FRAMES" envDefault:"600"`
	DT     float64 `env:"REMY_DT" envDefault:"0.016666666666666666"`

	LogEvery time.Duration `env:"REMY_LOG_EVERY" envDefault:"1s"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads Config from the environment.
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

// BindFlags registers flags on fs that override the loaded values.
func (c *Config) BindFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.Debug, "debug", c.Debug, "log state transitions and prop spawns")
	fs.BoolVar(&c.Props, "props", c.Props, "spawn physics props")
	fs.BoolVar(&c.Watch, "watch", c.Watch, "reload prefabs/ when files change")
	fs.StringVar(&c.Script, "script", c.Script, "tengo input script (name under prefabs/scripts or a path)")
	fs.Uint64Var(&c.Seed, "seed", c.Seed, "prop spawner seed")
	fs.IntVar(&c.Frames, "frames", c.Frames, "frames to simulate (headless)")
	fs.Float64Var(&c.DT, "dt", c.DT, "fixed timestep in seconds (headless)")
	fs.DurationVar(&c.LogEvery, "log-every", c.LogEvery, "simulated time between pose summaries (headless)")
}

// Validate checks values that flags or the environment may have broken.
func (c Config) Validate() error {
	if c.DT <= 0 {
		return fmt.Errorf("config: dt must be positive, got %v", c.DT)
	}
	if c.Frames < 0 {
		return fmt.Errorf("config: frames must not be negative, got %d", c.Frames)
	}
	return nil
}
