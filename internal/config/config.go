package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	APIURL         string        `yaml:"api_url"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	LogLevel       string        `yaml:"log_level"`
	LogFile        string        `yaml:"log_file"`
	MetricsPort    int           `yaml:"metrics_port"`
	Server         ServerConfig  `yaml:"server"`
}

// ServerConfig configures the fixture /foods API
type ServerConfig struct {
	Port        int    `yaml:"port"`
	MetricsPort int    `yaml:"metrics_port"`
	Dialect     string `yaml:"dialect"`
	DSN         string `yaml:"dsn"`
	SeedFile    string `yaml:"seed_file"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		APIURL:         "http://localhost:3333",
		RequestTimeout: 10 * time.Second,
		LogLevel:       "info",
		LogFile:        "dashboard.log",
		Server: ServerConfig{
			Port:        3333,
			MetricsPort: 9090,
			Dialect:     "sqlite3",
			DSN:         "gorestaurant.db",
		},
	}
}

// Load reads .env, then the YAML file at path (if any), then applies
// GORESTAURANT_* environment overrides.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("GORESTAURANT_API_URL"); v != "" {
		c.APIURL = v
	}
	if v := os.Getenv("GORESTAURANT_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("GORESTAURANT_DB_DIALECT"); v != "" {
		c.Server.Dialect = v
	}
	if v := os.Getenv("GORESTAURANT_DB_DSN"); v != "" {
		c.Server.DSN = v
	}
	if v := os.Getenv("GORESTAURANT_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("GORESTAURANT_PORT: %w", err)
		}
		c.Server.Port = port
	}
	return nil
}

// Validate checks the values that would otherwise fail later and less clearly
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return errors.New("api_url is required")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %s", c.RequestTimeout)
	}
	switch c.Server.Dialect {
	case "sqlite3", "postgres":
	default:
		return fmt.Errorf("unsupported database dialect %q", c.Server.Dialect)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	return nil
}
