// Package config loads engine configuration from a YAML file with
// environment overrides for deployment-sensitive values.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/playproof/levelengine/internal/domain"
)

// Config is the full engine configuration.
type Config struct {
	ListenAddr          string `yaml:"listen_addr"`
	DBPath              string `yaml:"db_path"`
	GeneratorURL        string `yaml:"generator_url"`
	GeneratorTimeoutSec int    `yaml:"generator_timeout_sec"`
	MaxAttempts         int    `yaml:"max_attempts"`
	LogLevel            string `yaml:"log_level"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	cfg := Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the YAML file at path, fills defaults, applies environment
// overrides, and validates the result.
func Load(path string) (Config, error) {
	var cfg Config
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, domain.WrapEngineError(domain.ErrConfigInvalid.Code, "read config file", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, domain.WrapEngineError(domain.ErrConfigInvalid.Code, "parse config file", err)
		}
	}
	cfg.applyDefaults()
	cfg.applyEnv()
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = ":8080"
	}
	if c.DBPath == "" {
		c.DBPath = "levelengine.db"
	}
	if c.GeneratorTimeoutSec == 0 {
		c.GeneratorTimeoutSec = 30
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = 5
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// applyEnv lets deployment environments override file values without
// editing the file.
func (c *Config) applyEnv() {
	if v := os.Getenv("LEVELENGINE_LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("LEVELENGINE_DB_PATH"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("LEVELENGINE_GENERATOR_URL"); v != "" {
		c.GeneratorURL = v
	}
	if v := os.Getenv("LEVELENGINE_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("LEVELENGINE_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.MaxAttempts = n
		}
	}
}

func (c *Config) validate() error {
	if c.MaxAttempts < 1 || c.MaxAttempts > 20 {
		return domain.NewEngineError(domain.ErrConfigInvalid.Code,
			fmt.Sprintf("max_attempts must be between 1 and 20, got %d", c.MaxAttempts))
	}
	if c.GeneratorTimeoutSec < 1 {
		return domain.NewEngineError(domain.ErrConfigInvalid.Code,
			fmt.Sprintf("generator_timeout_sec must be positive, got %d", c.GeneratorTimeoutSec))
	}
	switch c.LogLevel {
	case "trace", "debug", "info", "warn", "error":
	default:
		return domain.NewEngineError(domain.ErrConfigInvalid.Code,
			fmt.Sprintf("unknown log_level %q", c.LogLevel))
	}
	return nil
}

// GeneratorTimeout returns the generator call timeout as a duration.
func (c Config) GeneratorTimeout() time.Duration {
	return time.Duration(c.GeneratorTimeoutSec) * time.Second
}
