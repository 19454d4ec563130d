// Package provider defines the storage abstraction used by rescache.
//
// Implementations MUST be byte-for-byte transparent: Get must return exactly
// the same []byte that was previously passed to Set for a key (no
// prepended/appended metadata, no re-encoding, no mutation). If a store
// performs internal transforms (e.g., compression), they MUST be fully
// reversed so that the bytes returned by Get are identical to the bytes
// provided to Set.
//
// The grace duration on Set is the race-condition window: where the store
// supports stale-while-revalidate natively, pass it through; where it only
// has one expiry knob, extend the physical expiry by grace. rescache never
// reimplements the window itself.
package provider

import (
	"context"
	"time"
)

// Provider is a minimal byte store with TTLs and a bulk clear.
// Must be safe for concurrent use.
type Provider interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	// If an IO/remote error happens, return (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value with the given TTL plus grace window.
	// Returns ok=false when the store rejected the write under pressure.
	Set(ctx context.Context, key string, value []byte, ttl, grace time.Duration) (ok bool, err error)

	// Clear removes every entry. Stores without keyspace isolation may
	// clear globally; callers own that blast radius.
	Clear(ctx context.Context) error

	// Close releases resources.
	Close(ctx context.Context) error
}
