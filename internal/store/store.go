// Package store provides the storage factory and the driver-independent
// connection contract.
package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/dropDatabas3/hellopost/internal/domain/repository"
	"github.com/dropDatabas3/hellopost/internal/store/memory"
	"github.com/dropDatabas3/hellopost/internal/store/mongo"
)

// Store is an active connection to a backing store. It owns the underlying
// handle: the caller (main) acquires it once at startup and must Close it
// at shutdown.
type Store interface {
	// Name returns the driver name ("mongo", "memory").
	Name() string

	// Ping verifies the connection.
	Ping(ctx context.Context) error

	// Close releases the underlying handle.
	Close(ctx context.Context) error

	Accounts() repository.AccountRepository
	Posts() repository.PostRepository
}

// Config selects and configures a driver.
type Config struct {
	Driver string
	Mongo  struct {
		URI      string
		Database string
	}
}

// Open connects to the configured driver and ensures the indexes the
// repositories rely on (unique account email, post owner reference).
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch strings.ToLower(cfg.Driver) {
	case "mongo", "mongodb", "":
		return mongo.New(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	case "memory":
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("store: unsupported driver: %s", cfg.Driver)
	}
}
