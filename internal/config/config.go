// Package config loads server configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Port        int      `env:"PORT" envDefault:"8080"`
	DBPath      string   `env:"DB_PATH" envDefault:"./data/settleup.db"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
	LogLevel    string   `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads configuration from environment variables.
// A .env file in the working directory is loaded first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT: %d", c.Port)
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH is required")
	}
	return nil
}
