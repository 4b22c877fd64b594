package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// SimEnv is the simsvc configuration read from the environment. Command
// line flags override these values.
type SimEnv struct {
	ConfigDir       string `env:"SIMSVC_CONFIG" envDefault:"assets"`
	Out             string `env:"SIMSVC_OUT" envDefault:"out.json"`
	Seed            int64  `env:"SIMSVC_SEED" envDefault:"12345"`
	Runs            int    `env:"SIMSVC_RUNS" envDefault:"1"`
	Workers         int    `env:"SIMSVC_WORKERS" envDefault:"8"`
	Home            string `env:"SIMSVC_HOME" envDefault:"harbor"`
	Away            string `env:"SIMSVC_AWAY" envDefault:"ridge"`
	MercyRule       bool   `env:"SIMSVC_MERCY" envDefault:"false"`
	MaxExtraInnings int    `env:"SIMSVC_MAX_EXTRA" envDefault:"6"`
	SaveLog         bool   `env:"SIMSVC_LOG" envDefault:"true"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
