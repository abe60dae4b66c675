// Package redis provides connection helpers for the Redis event streams.
package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Connect dials Redis and verifies connectivity with a ping.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
