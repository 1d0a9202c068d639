package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/formiguinhas/ledger/internal/config"
)

// RedisStore keeps snapshots in redis, for deployments where the ledger runs
// as a shared service instead of against a local file.
type RedisStore struct {
	client *redis.Client
}

// OpenRedis connects a redis-backed store.
func OpenRedis(cfg config.RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	// Snapshots never expire; the latest write is the ledger of record.
	return s.client.Set(ctx, key, value, 0).Err()
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
