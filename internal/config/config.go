package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

type Config struct {
	Env          string `env:"FIT_ENV"           envDefault:"development"`
	DBDriver     string `env:"FIT_DB_DRIVER"     envDefault:"sqlite"`
	DBPath       string `env:"FIT_DB_PATH"       envDefault:"fitassistant.db"`
	DBHost       string `env:"FIT_DB_HOST"       envDefault:"localhost"`
	DBPort       string `env:"FIT_DB_PORT"       envDefault:"3306"`
	DBUser       string `env:"FIT_DB_USER"       envDefault:"fitassistant"`
	DBPassword   string `env:"FIT_DB_PASSWORD"`
	DBName       string `env:"FIT_DB_NAME"       envDefault:"fitassistant"`
	MediaDir     string `env:"FIT_MEDIA_DIR"     envDefault:"media"`
	ProfileName  string `env:"FIT_PROFILE_NAME"`
	ProfileEmail string `env:"FIT_PROFILE_EMAIL"`
}

// Load reads an optional .env file and then the process environment.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse env: %w", err)
	}

	switch cfg.DBDriver {
	case DriverSQLite, DriverMySQL:
	default:
		return nil, fmt.Errorf("unsupported FIT_DB_DRIVER %q", cfg.DBDriver)
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// DSN returns the data source name for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == DriverMySQL {
		return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true&charset=utf8mb4"
	}
	return c.DBPath
}
