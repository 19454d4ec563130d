// Package rescache is a caching layer fronting a remote-resource client.
// Results are cached under a deterministic key derived from the resource
// type name and the call arguments; per-record entries are kept consistent
// with the collection entry representing the full listing.
//
// Components:
//   - Fetcher: the remote client. Returns a tagged Result (single record,
//     collection, or paginated collection with link headers).
//   - Provider: byte store with TTL and a race-condition grace window
//     (e.g. Redis, BigCache, Ristretto).
//   - Codec: (de)serializes the storage envelope (JSON by default).
//
// Keys:
//
//	<type-slug>/<arg1>/<arg2>/...  - lowercased, whitespace stripped
//
// Flow:
//
//	find(args)          -> cache read, or fetch -> synchronize -> write -> read
//	find(args, reload)  -> fetch -> synchronize -> write -> read
//
// When CollectionSynchronize is on, every fresh collection fetch also writes
// each record under its own key, and every fresh fetch merges its records
// into the cached "fetch all" entry by primary key.
package rescache
