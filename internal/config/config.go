// Package config loads catalog settings from a TOML or YAML file and the
// environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"magazine/catalog/internal/attr"
)

const (
	EnvDB       = "MAGAZINE_DB"
	EnvLogLevel = "MAGAZINE_LOG_LEVEL"
	EnvConfig   = "MAGAZINE_CONFIG"

	DefaultDBPath = "./magazine.db"
)

// Config holds all catalog configuration.
type Config struct {
	DBPath       string      `toml:"db_path" yaml:"db_path"`
	LogLevel     string      `toml:"log_level" yaml:"log_level"`
	LogFormat    string      `toml:"log_format" yaml:"log_format"`
	CommentRetry int         `toml:"comment_retry" yaml:"comment_retry"`
	Units        []attr.Unit `toml:"units" yaml:"units"`
	Categories   []string    `toml:"categories" yaml:"categories"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	applyEnvironmentOverrides(cfg)
	return cfg
}

// Load reads path, decoding it as TOML or YAML by extension, then applies
// defaults and environment overrides and validates the result. An empty
// path yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		cfg := Default()
		return cfg, validate(cfg)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config toml: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("config file %s: unsupported extension %q", path, ext)
	}

	applyDefaults(cfg)
	applyEnvironmentOverrides(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// GetConfigPath returns the config file named by the environment, else the
// first magazine.{toml,yaml,yml} in the working directory, else "".
func GetConfigPath() string {
	if path := os.Getenv(EnvConfig); path != "" {
		return path
	}
	for _, name := range []string{"magazine.toml", "magazine.yaml", "magazine.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

func applyDefaults(cfg *Config) {
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBPath
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.CommentRetry == 0 {
		cfg.CommentRetry = 3
	}
}

func applyEnvironmentOverrides(cfg *Config) {
	if dbPath := os.Getenv(EnvDB); dbPath != "" {
		cfg.DBPath = dbPath
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		cfg.LogLevel = level
	}
}

func validate(cfg *Config) error {
	switch strings.ToLower(cfg.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error, got %q", cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json, got %q", cfg.LogFormat)
	}
	if cfg.CommentRetry < 1 {
		return fmt.Errorf("comment_retry must be at least 1, got %d", cfg.CommentRetry)
	}
	return validateUnits(cfg.Units)
}

func validateUnits(units []attr.Unit) error {
	seen := make(map[string]int)
	for i, u := range units {
		if err := attr.ValidateUnit(u); err != nil {
			return fmt.Errorf("units[%d]: %w", i, err)
		}
		fields := []struct{ name, value string }{
			{"name", u.Name},
			{"name_plural", u.Plural},
			{"symbol", u.Symbol},
		}
		for _, f := range fields {
			key := f.name + "\x00" + strings.ToLower(f.value)
			if prev, ok := seen[key]; ok {
				return fmt.Errorf("units[%d]: %s %q duplicates units[%d]", i, f.name, f.value, prev)
			}
			seen[key] = i
		}
	}
	return nil
}
