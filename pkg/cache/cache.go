// Package cache is the read-through cache in front of Postgres. It is a
// latency optimization, never a source of truth: every entry carries a short
// TTL and mutations delete affected keys explicitly.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
