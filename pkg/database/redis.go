package database

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"lms-backend/pkg/config"
)

// NewRedisConnection opens the key-value store backing sessions and the
// course response cache.
func NewRedisConnection(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}
