package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds every runtime parameter of the API. The JWT secret has no
// fallback: startup fails when it is unset.
type Config struct {
	Port        string `env:"PORT" envDefault:"3000"`
	DatabaseDSN string `env:"DATABASE_DSN" envDefault:"foodexpress.db"`
	JWTSecret   string `env:"JWT_SECRET,required"`
	GinMode     string `env:"GIN_MODE" envDefault:"debug"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load reads configuration from the environment, loading a .env file first
// when one exists in the working directory.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("loading .env file: %w", err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}

// IsPostgres reports whether the configured DSN targets postgres rather than
// the embedded sqlite driver.
func (c *Config) IsPostgres() bool {
	lower := strings.ToLower(c.DatabaseDSN)
	return strings.HasPrefix(lower, "postgres://") ||
		strings.HasPrefix(lower, "postgresql://") ||
		strings.Contains(lower, "host=")
}
