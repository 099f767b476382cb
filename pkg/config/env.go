package config

import (
	"os"
	"strconv"

	"github.com/matzehuels/auteur/pkg/errors"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "AUTEUR_"

type envVar struct {
	name string
	set  func(c *Config, v string) error
}

func str(fn func(c *Config) *string) func(*Config, string) error {
	return func(c *Config, v string) error {
		*fn(c) = v
		return nil
	}
}

func boolean(fn func(c *Config) *bool) func(*Config, string) error {
	return func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		*fn(c) = b
		return nil
	}
}

func integer(fn func(c *Config) *int) func(*Config, string) error {
	return func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*fn(c) = n
		return nil
	}
}

// envVars lists the supported overrides without the prefix.
var envVars = []envVar{
	{"LOG_LEVEL", str(func(c *Config) *string { return &c.Log.Level })},
	{"GRID_COLUMNS", integer(func(c *Config) *int { return &c.Grid.Columns })},
	{"STORE_BACKEND", str(func(c *Config) *string { return &c.Store.Backend })},
	{"STORE_DIR", str(func(c *Config) *string { return &c.Store.Dir })},
	{"STORE_FORMAT", str(func(c *Config) *string { return &c.Store.Format })},
	{"REDIS_ADDR", str(func(c *Config) *string { return &c.Store.RedisAddr })},
	{"REDIS_PASSWORD", str(func(c *Config) *string { return &c.Store.RedisPassword })},
	{"MONGO_URI", str(func(c *Config) *string { return &c.Store.MongoURI })},
	{"MONGO_DATABASE", str(func(c *Config) *string { return &c.Store.MongoDatabase })},
	{"SERVER_ADDR", str(func(c *Config) *string { return &c.Server.Addr })},
	{"SERVER_AUTOSAVE", str(func(c *Config) *string { return &c.Server.Autosave })},
	{"CACHE_DIR", str(func(c *Config) *string { return &c.Cache.Dir })},
	{"CACHE_NAMESPACE", str(func(c *Config) *string { return &c.Cache.Namespace })},
	{"CACHE_DISABLED", boolean(func(c *Config) *bool { return &c.Cache.Disabled })},
}

// EnvNames returns the full names of all supported environment variables.
func EnvNames() []string {
	names := make([]string, len(envVars))
	for i, e := range envVars {
		names[i] = EnvPrefix + e.name
	}
	return names
}

// applyEnv overrides c from the environment. Empty variables count as unset.
func applyEnv(c *Config) error {
	for _, e := range envVars {
		v := os.Getenv(EnvPrefix + e.name)
		if v == "" {
			continue
		}
		if err := e.set(c, v); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s%s", EnvPrefix, e.name)
		}
	}
	return nil
}
