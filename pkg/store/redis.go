package store

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/auteur/pkg/board"
	"github.com/matzehuels/auteur/pkg/errors"
)

const backendRedis = "redis"

// RedisKeyPrefix prefixes every project key.
const RedisKeyPrefix = "auteur:project:"

// RedisStore keeps projects as JSON strings in Redis.
type RedisStore struct {
	rdb  *redis.Client
	opts options
}

// NewRedisStore wraps an existing client. Close closes the client.
func NewRedisStore(rdb *redis.Client, opts ...Option) *RedisStore {
	return &RedisStore{rdb: rdb, opts: newOptions(opts)}
}

// DialRedis connects to Redis and verifies the connection.
func DialRedis(ctx context.Context, ro *redis.Options, opts ...Option) (*RedisStore, error) {
	rdb := redis.NewClient(ro)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "connect to redis at %s", ro.Addr)
	}
	return NewRedisStore(rdb, opts...), nil
}

func redisKey(id string) string { return RedisKeyPrefix + id }

// Load reads a project.
func (s *RedisStore) Load(ctx context.Context, id string) (p *board.Project, err error) {
	start := time.Now()
	defer func() { observeLoad(ctx, backendRedis, id, start, err) }()

	if err := errors.ValidateID(id); err != nil {
		return nil, err
	}
	data, err := s.rdb.Get(ctx, redisKey(id)).Bytes()
	if err == redis.Nil {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "load project %s", id)
	}
	p, err = Unmarshal(data, FormatJSON)
	if err != nil {
		return nil, err
	}
	return normalize(p, s.opts.grid), nil
}

// Save writes a project without expiry.
func (s *RedisStore) Save(ctx context.Context, p *board.Project) (err error) {
	if err := checkSave(p); err != nil {
		return err
	}
	start := time.Now()
	defer func() { observeSave(ctx, backendRedis, p.ID, start, err) }()

	data, err := Marshal(p, FormatJSON)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "encode project %s", p.ID)
	}
	if err := s.rdb.Set(ctx, redisKey(p.ID), data, 0).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "save project %s", p.ID)
	}
	return nil
}

// Delete removes a project.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := errors.ValidateID(id); err != nil {
		return err
	}
	if err := s.rdb.Del(ctx, redisKey(id)).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "delete project %s", id)
	}
	return nil
}

// List scans for project keys.
func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	var ids []string
	iter := s.rdb.Scan(ctx, 0, RedisKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		ids = append(ids, strings.TrimPrefix(iter.Val(), RedisKeyPrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list projects")
	}
	slices.Sort(ids)
	return slices.Compact(ids), nil
}

// Close closes the client.
func (s *RedisStore) Close() error { return s.rdb.Close() }
