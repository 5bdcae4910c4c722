// Package cache provides the read-through cache used by the HTTP services.
//
// Backends:
//   - memory (in-process, default, dev/testing)
//   - redis (shared, production)
//   - none (disabled)
package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotFound is returned by Get on a miss.
var ErrNotFound = errors.New("cache: key not found")

// Client defines the cache operations. Values are opaque byte blobs
// (the services store JSON-encoded entities).
type Client interface {
	// Get fetches a value. Returns ErrNotFound on a miss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with a TTL. A zero TTL uses the backend default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}

// Config selects and configures a backend.
type Config struct {
	Kind       string // "memory" | "redis" | "none"
	DefaultTTL time.Duration
	Redis      struct {
		Addr     string
		Password string
		DB       int
		Prefix   string
	}
}

// New builds a client for the configured backend.
func New(cfg Config) (Client, error) {
	switch strings.ToLower(cfg.Kind) {
	case "memory", "":
		return NewMemory(cfg.DefaultTTL), nil
	case "redis":
		return NewRedis(cfg)
	case "none", "off":
		return noopClient{}, nil
	default:
		return nil, fmt.Errorf("cache: unsupported kind: %s", cfg.Kind)
	}
}

// noopClient misses on every read; used when caching is disabled.
type noopClient struct{}

func (noopClient) Get(ctx context.Context, key string) ([]byte, error) { return nil, ErrNotFound }
func (noopClient) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return nil
}
func (noopClient) Delete(ctx context.Context, key string) error { return nil }
func (noopClient) Ping(ctx context.Context) error               { return nil }
func (noopClient) Close() error                                 { return nil }
