package rescache

import "context"

// Record is one remote object as the fetcher materialized it: its raw
// attribute map, the scoping parameters that located it within nested
// resources, and whether the remote considers it persisted.
type Record struct {
	Attributes    map[string]any
	PrefixOptions map[string]any
	Persisted     bool
}

// Kind tags how a fetch result is shaped. It is decided once, when the
// fetcher builds the Result, and carried through serialization so no layer
// has to re-inspect the data structurally.
type Kind uint8

const (
	KindNil Kind = iota
	KindSingle
	KindCollection
	KindPaginated
)

// Result is the tagged fetch outcome.
//   - KindNil:        nothing (remote returned null)
//   - KindSingle:     Record is set
//   - KindCollection: Records is set
//   - KindPaginated:  Records plus pagination Links are set
type Result struct {
	Kind    Kind
	Record  *Record
	Records []*Record
	Links   map[string]string
}

// Single wraps one record as a fetch result.
func Single(r *Record) *Result { return &Result{Kind: KindSingle, Record: r} }

// Collection wraps an ordered record sequence as a fetch result.
func Collection(rs ...*Record) *Result { return &Result{Kind: KindCollection, Records: rs} }

// Paginated wraps a record sequence plus its link headers as a fetch result.
func Paginated(links map[string]string, rs ...*Record) *Result {
	return &Result{Kind: KindPaginated, Records: rs, Links: links}
}

// Fetcher is the remote-resource client. Fetch receives the cleaned call
// arguments (reload flag already stripped) and returns a tagged Result.
// Errors propagate to the Find caller unchanged; this layer adds no retries.
type Fetcher interface {
	Fetch(ctx context.Context, args ...any) (*Result, error)
}

// FetchFunc adapts a plain function to the Fetcher interface.
type FetchFunc func(ctx context.Context, args ...any) (*Result, error)

func (f FetchFunc) Fetch(ctx context.Context, args ...any) (*Result, error) {
	return f(ctx, args...)
}

// Params is an options mapping passed as the trailing Find argument.
// A "reload" key forces a bypass of the cache; it is removed before the
// arguments reach the key builder or the fetcher, and a Params left empty
// after removal is dropped entirely, so find(1, Params{"reload": true})
// shares its cache key with find(1).
type Params map[string]any

// ReloadKey is the Params key that forces a fresh fetch.
const ReloadKey = "reload"

// Capabilities declares optional result shapes the resource type supports.
// A paginated payload read back for a type without Pagination support is
// downgraded to a plain collection; the link headers are discarded.
type Capabilities struct {
	Pagination bool
}
