// Package db defines the key-value store abstraction the run repository is
// built on. Implemented by the rueidis-backed store in db/redis, which
// serves both Redis and Valkey deployments.
package db

import (
	"context"
	"time"
)

// Store is the storage contract for clustering runs.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)

	Ping(ctx context.Context) error
	WaitForReady(ctx context.Context, timeout time.Duration) error
	Close()
}
