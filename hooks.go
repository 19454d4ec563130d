package rescache

// Hooks lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking.
// The cache calls them on hot paths.
type Hooks interface {
	// A cache read produced nothing and the caller falls through to the
	// fetcher. reason ∈ {"miss", "null"}
	Miss(key, reason string)

	// The storage backend returned an error. op ∈ {"read", "write", "clear"}.
	// Read and write errors are absorbed (treated as "not cached").
	StorageError(op, key string, err error)

	// Backend reported ok=false on write (backpressure/eviction).
	WriteRejected(key string)

	// Collection synchronization merged updates into the mother collection.
	SyncMerged(motherKey string, updated, inserted int)

	// Collection synchronization did nothing.
	// reason ∈ {"no_mother", "empty_updates"}
	SyncSkipped(motherKey, reason string)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) Miss(string, string)                {}
func (NopHooks) StorageError(string, string, error) {}
func (NopHooks) WriteRejected(string)               {}
func (NopHooks) SyncMerged(string, int, int)        {}
func (NopHooks) SyncSkipped(string, string)         {}
