package kv

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/folio-backend/internal/platform/logger"
)

// Store is the key-value surface the rest of the backend depends on: caches,
// rate-limit counters, and custom-tag records. Values are opaque JSON bytes.
// A ttl of 0 means no expiry. Get returns (nil, nil) on a miss.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// SetNX writes only if the key does not exist and reports whether it wrote.
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
	Del(ctx context.Context, key string) error
	Incr(ctx context.Context, key string) (int64, error)
	Close() error
}

type redisStore struct {
	log *logger.Logger
	rdb *goredis.Client
}

// NewRedisStore connects to REDIS_ADDR and verifies the connection with a
// ping. Callers are expected to treat a nil Store or a Store error as
// "infrastructure unavailable" and fail open.
func NewRedisStore(log *logger.Logger) (Store, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    strings.TrimSpace(os.Getenv("REDIS_PASSWORD")),
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &redisStore{
		log: log.With("service", "RedisStore"),
		rdb: rdb,
	}, nil
}

func (s *redisStore) Get(ctx context.Context, key string) ([]byte, error) {
	if s == nil || s.rdb == nil {
		return nil, fmt.Errorf("redis store not initialized")
	}
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func (s *redisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if s == nil || s.rdb == nil {
		return fmt.Errorf("redis store not initialized")
	}
	return s.rdb.Set(ctx, key, value, ttl).Err()
}

func (s *redisStore) SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	if s == nil || s.rdb == nil {
		return false, fmt.Errorf("redis store not initialized")
	}
	return s.rdb.SetNX(ctx, key, value, ttl).Result()
}

func (s *redisStore) Del(ctx context.Context, key string) error {
	if s == nil || s.rdb == nil {
		return fmt.Errorf("redis store not initialized")
	}
	return s.rdb.Del(ctx, key).Err()
}

func (s *redisStore) Incr(ctx context.Context, key string) (int64, error) {
	if s == nil || s.rdb == nil {
		return 0, fmt.Errorf("redis store not initialized")
	}
	return s.rdb.Incr(ctx, key).Result()
}

func (s *redisStore) Close() error {
	if s == nil || s.rdb == nil {
		return nil
	}
	return s.rdb.Close()
}
