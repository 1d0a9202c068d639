package store

import (
	"context"
	"fmt"

	"github.com/formiguinhas/ledger/internal/config"
)

// Fixed snapshot keys, one per ledger.
const (
	KeySupporters = "supporters"
	KeyEvents     = "events"
)

// Store is the durable key-value contract the ledgers persist through.
// A value is always the full serialized snapshot of one collection.
type Store interface {
	// Get returns the snapshot stored under key. ok is false when the key
	// has never been written.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set durably replaces the snapshot stored under key.
	Set(ctx context.Context, key, value string) error

	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error

	// Close releases the underlying resources.
	Close() error
}

// Open builds the Store selected by configuration.
func Open(cfg *config.Config) (Store, error) {
	switch cfg.Store.Backend {
	case config.StoreBackendBolt:
		return OpenBolt(cfg.Store.Path, cfg.Store.Bucket)
	case config.StoreBackendRedis:
		return OpenRedis(cfg.Redis)
	case config.StoreBackendPostgres:
		return OpenPostgres(cfg.Database.URL)
	case config.StoreBackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
