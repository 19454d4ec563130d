package rescache

import (
	"context"
	"time"

	c "github.com/unkn0wn-root/rescache/codec"
	"github.com/unkn0wn-root/rescache/payload"
	pr "github.com/unkn0wn-root/rescache/provider"
)

// Cache fronts a Fetcher with transparent caching. Find has the same shape
// as the underlying fetch; a trailing Params{"reload": true} forces a fresh
// fetch, and ClearCache drops everything the backend holds.
type Cache interface {
	Enabled() bool

	// Find returns the cached result for the given arguments, fetching
	// through the Fetcher on miss or reload. Cached and fresh calls yield
	// identically shaped results: both are derived through deserialization.
	Find(ctx context.Context, args ...any) (*Result, error)

	// ClearCache clears the storage backend (global scope if the backend's
	// clear is global).
	ClearCache(ctx context.Context) error

	Close(ctx context.Context) error
}

// Options binds one resource type to its fetcher, storage and tuning.
// Only Name, Fetcher and Provider are required; others have sensible defaults.
type Options struct {
	// Required
	Name     string // resource type name, e.g. "User" or "Admin::Report"
	Fetcher  Fetcher
	Provider pr.Provider

	Codec  c.Codec[payload.Envelope] // nil => codec.JSON
	Logger Logger                    // if nil, NopLogger is used
	Hooks  Hooks                     // if nil, NopHooks is used

	TTL              time.Duration // entry expiry; 0 => 7d
	RaceConditionTTL time.Duration // backend grace window past expiry; 0 => 1d

	// Disabled turns caching off globally for this type: every Find reaches
	// the fetcher. Writes still happen, so re-enabling starts warm.
	Disabled bool

	// CollectionSynchronize propagates every fresh fetch into the
	// per-record entries and the mother collection entry.
	CollectionSynchronize bool

	PrimaryKey          string       // attribute records merge by; "" => "id"
	CollectionArguments []any        // canonical "fetch all" arguments; nil => ["all"]
	Capabilities        Capabilities // optional shapes the type declares
}

func New(opts Options) (Cache, error) {
	return newCache(opts)
}
