// Package config loads auteur's settings.
//
// Settings come from three layers, later layers winning:
//
//  1. Built-in defaults declared with `default:"..."` struct tags
//  2. A TOML file, by default $XDG_CONFIG_HOME/auteur/config.toml
//  3. AUTEUR_* environment variables
//
// The result is validated before it is returned. A missing file at the
// default location is not an error; a missing file named explicitly is.
//
// # Example file
//
//	[log]
//	level = "debug"
//
//	[grid]
//	columns = 4
//
//	[store]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
//	autosave = "@every 1m"
//
//	[cache]
//	disabled = false
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/creasty/defaults"

	"github.com/matzehuels/auteur/pkg/errors"
	"github.com/matzehuels/auteur/pkg/layout"
	"github.com/matzehuels/auteur/pkg/store"
)

// Config is the complete configuration.
type Config struct {
	// Path is the file the configuration was read from, or "" when only
	// defaults and the environment were used.
	Path string `toml:"-"`

	Log    LogConfig    `toml:"log"`
	Grid   layout.Grid  `toml:"grid"`
	Store  store.Config `toml:"store"`
	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
}

// LogConfig controls console logging.
type LogConfig struct {
	Level string `toml:"level" default:"info" validate:"oneof=debug info warn error"`
}

// ServerConfig controls the HTTP server started by "auteur serve".
type ServerConfig struct {
	Addr         string        `toml:"addr" default:"localhost:8080" validate:"required"`
	ReadTimeout  time.Duration `toml:"read_timeout" default:"30s"`
	WriteTimeout time.Duration `toml:"write_timeout" default:"60s"`

	// Autosave is a cron spec for persisting the open project. Empty
	// disables autosave.
	Autosave string `toml:"autosave" default:"@every 30s"`

	// Metrics exposes Prometheus metrics at /metrics.
	Metrics bool `toml:"metrics" default:"true"`
}

// CacheConfig controls the render artifact cache.
type CacheConfig struct {
	Disabled bool   `toml:"disabled"`
	Backend  string `toml:"backend" default:"file" validate:"oneof=file redis"`
	Dir      string `toml:"dir"`

	// RedisAddr is used when Backend is "redis".
	RedisAddr string `toml:"redis_addr" default:"localhost:6379"`

	// Namespace prefixes every cache key, so several teams can share one
	// Redis without seeing each other's artifacts.
	Namespace string `toml:"namespace"`
}

// Default returns the built-in configuration.
func Default() *Config {
	c := &Config{Grid: layout.DefaultGrid()}
	if err := defaults.Set(c); err != nil {
		// Defaults are compile-time constants; a failure is a programming error.
		panic(err)
	}
	return c
}

// DefaultPath returns $XDG_CONFIG_HOME/auteur/config.toml, falling back to
// the platform's user configuration directory.
func DefaultPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "auteur", "config.toml"), nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "auteur", "config.toml"), nil
}

// Load reads the configuration. An empty path selects [DefaultPath].
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "resolve config path")
		}
		path = p
	}

	c := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := Decode(data, c); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
		c.Path = path
	case os.IsNotExist(err) && !explicit:
	default:
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}

	if err := applyEnv(c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Decode parses TOML into c. Keys absent from data keep their current
// values; unknown keys are rejected.
func Decode(data []byte, c *Config) error {
	md, err := toml.Decode(string(data), c)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown key %s", undecoded[0])
	}
	return nil
}

// Encode writes c as TOML.
func (c *Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write saves c to path, creating parent directories.
func (c *Config) Write(path string) error {
	data, err := c.Encode()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "create config directory")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write %s", path)
	}
	return nil
}
