package store

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/auteur/pkg/errors"
)

// Backend names accepted by [Open].
const (
	BackendFile  = backendFile
	BackendRedis = backendRedis
	BackendMongo = backendMongo
)

// Config selects and configures a backend.
type Config struct {
	Backend string `toml:"backend" default:"file" validate:"oneof=file redis mongo"`

	Dir    string `toml:"dir"`
	Format string `toml:"format" default:"json" validate:"oneof=json yaml yml"`

	RedisAddr     string `toml:"redis_addr" default:"localhost:6379"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db" validate:"gte=0"`

	MongoURI      string `toml:"mongo_uri" default:"mongodb://localhost:27017"`
	MongoDatabase string `toml:"mongo_database" default:"auteur"`
}

// Open creates the backend named by cfg.Backend.
func Open(ctx context.Context, cfg Config, opts ...Option) (Store, error) {
	switch cfg.Backend {
	case "", BackendFile:
		format, err := ParseFormat(cfg.Format)
		if err != nil {
			return nil, err
		}
		return NewFileStore(cfg.Dir, format, opts...)
	case BackendRedis:
		return DialRedis(ctx, &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, opts...)
	case BackendMongo:
		return DialMongo(ctx, cfg.MongoURI, cfg.MongoDatabase, opts...)
	}
	return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown store backend %q", cfg.Backend)
}
