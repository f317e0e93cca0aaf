// internal/common/database/redis.go
package database

import (
	"context"
	"fmt"
	"time"

	"rfp-dashboard/internal/common/config"

	"github.com/redis/go-redis/v9"
)

// Redis holds the client backing the CRM sync ledger.
type Redis struct {
	Client *redis.Client
}

// OpenRedis dials Redis and fails unless PING succeeds.
func OpenRedis(ctx context.Context, cfg config.RedisConfig) (*Redis, error) {
	if cfg.Address == "" {
		return nil, fmt.Errorf("redis address is empty")
	}

	r := &Redis{Client: redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})}

	if err := r.Ping(ctx); err != nil {
		r.Client.Close()
		return nil, err
	}
	return r, nil
}

func (r *Redis) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := r.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping %s: %w", r.Client.Options().Addr, err)
	}
	return nil
}

func (r *Redis) Close() error {
	if r == nil || r.Client == nil {
		return nil
	}
	return r.Client.Close()
}
