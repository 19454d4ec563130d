package rescache

import (
	"context"
	"fmt"
	"time"

	c "github.com/unkn0wn-root/rescache/codec"
	"github.com/unkn0wn-root/rescache/internal/keys"
	"github.com/unkn0wn-root/rescache/payload"
	pr "github.com/unkn0wn-root/rescache/provider"
)

const (
	defaultTTL        = 7 * 24 * time.Hour
	defaultGrace      = 24 * time.Hour
	defaultPrimaryKey = "id"
)

type cache struct {
	name     string
	fetcher  Fetcher
	provider pr.Provider
	codec    c.Codec[payload.Envelope]
	log      Logger
	hooks    Hooks

	enabled        bool
	collectionSync bool
	ttl            time.Duration
	grace          time.Duration
	pk             string
	collectionKey  string
	caps           Capabilities
}

func newCache(opts Options) (*cache, error) {
	if opts.Name == "" {
		return nil, fmt.Errorf("rescache: name is required")
	}
	if opts.Fetcher == nil {
		return nil, fmt.Errorf("rescache: fetcher is required")
	}
	if opts.Provider == nil {
		return nil, fmt.Errorf("rescache: provider is required")
	}

	cc := &cache{
		name:           opts.Name,
		fetcher:        opts.Fetcher,
		provider:       opts.Provider,
		enabled:        !opts.Disabled,
		collectionSync: opts.CollectionSynchronize,
		caps:           opts.Capabilities,
	}

	// defaults
	cc.codec = opts.Codec
	if cc.codec == nil {
		cc.codec = c.JSON[payload.Envelope]{}
	}
	cc.log = coalesce[Logger](opts.Logger, NopLogger{})
	cc.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	cc.ttl = coalesce[time.Duration](opts.TTL, defaultTTL)
	cc.grace = coalesce[time.Duration](opts.RaceConditionTTL, defaultGrace)
	cc.pk = coalesce[string](opts.PrimaryKey, defaultPrimaryKey)

	args := opts.CollectionArguments
	if len(args) == 0 {
		args = []any{"all"}
	}
	cc.collectionKey = keys.Build(cc.name, args)

	return cc, nil
}

func (cc *cache) Enabled() bool { return cc.enabled }

func (cc *cache) Close(ctx context.Context) error {
	if cc.provider != nil {
		return cc.provider.Close(ctx)
	}
	return nil
}

// Find decides reload-vs-cache and orchestrates one fetch cycle.
// Order within a cycle is strict: fetch, synchronize, write own key,
// derive the return value back through deserialization.
func (cc *cache) Find(ctx context.Context, args ...any) (*Result, error) {
	args, reload := stripReload(args)
	key := cc.key(args)

	if !reload && cc.enabled {
		res, ok, err := cc.read(ctx, key)
		if err != nil {
			return nil, err
		}
		if ok {
			return res, nil
		}
		// miss falls through to a fresh fetch
	}
	return cc.reload(ctx, key, args)
}

func (cc *cache) ClearCache(ctx context.Context) error {
	if err := cc.provider.Clear(ctx); err != nil {
		cc.hooks.StorageError("clear", "", err)
		return err
	}
	cc.log.Info("CLEAR", Fields{"type": cc.name})
	return nil
}

// reload fetches fresh, synchronizes collections, writes the entry under
// its own key, and re-derives the return value through the deserialization
// path so cached and fresh results are indistinguishable in shape.
func (cc *cache) reload(ctx context.Context, key string, args []any) (*Result, error) {
	fetched, err := cc.fetcher.Fetch(ctx, args...)
	if err != nil {
		return nil, err // upstream errors propagate unchanged
	}
	if cc.collectionSync {
		if err := cc.synchronize(ctx, args, fetched); err != nil {
			return nil, err
		}
	}
	raw, err := cc.encode(key, fetched)
	if err != nil {
		return nil, err
	}
	cc.write(ctx, key, raw)
	return cc.decode(key, raw)
}

// read is the cache path: storage errors count as a miss (fetch proceeds),
// a decoded null counts as a miss, and only corrupt payloads surface.
func (cc *cache) read(ctx context.Context, key string) (*Result, bool, error) {
	raw, ok, err := cc.provider.Get(ctx, key)
	if err != nil {
		cc.log.Warn("storage read failed", Fields{"key": key, "err": err})
		cc.hooks.StorageError("read", key, err)
		return nil, false, nil
	}
	if !ok {
		cc.hooks.Miss(key, "miss")
		return nil, false, nil
	}
	res, err := cc.decode(key, raw)
	if err != nil {
		return nil, false, err
	}
	if res == nil {
		cc.hooks.Miss(key, "null")
		return nil, false, nil
	}
	return res, true, nil
}

// decode deserializes a raw payload into a Result, restoring the persisted
// flag on every record. Logs "READ <key>" iff a non-nil object came out.
func (cc *cache) decode(key string, raw []byte) (*Result, error) {
	env, err := cc.codec.Decode(raw)
	if err != nil {
		return nil, &DecodeError{Key: key, Err: err}
	}
	res, err := cc.fromEnvelope(key, env)
	if err != nil {
		return nil, err
	}
	if res != nil {
		cc.log.Info("READ "+key, nil)
	}
	return res, nil
}

func (cc *cache) fromEnvelope(key string, env payload.Envelope) (*Result, error) {
	switch env.Kind {
	case payload.Nil:
		return nil, nil
	case payload.Single:
		if env.One == nil {
			return nil, &DecodeError{Key: key, Err: fmt.Errorf("single envelope without element")}
		}
		return Single(recordFrom(*env.One)), nil
	case payload.Collection:
		return Collection(recordsFrom(env.Elements)...), nil
	case payload.Paginated:
		recs := recordsFrom(env.Elements)
		if !cc.caps.Pagination {
			// type does not declare pagination support; raw sequence
			return Collection(recs...), nil
		}
		return Paginated(env.Links, recs...), nil
	default:
		return nil, &DecodeError{Key: key, Err: fmt.Errorf("unknown envelope kind %d", env.Kind)}
	}
}

// encode serializes a Result into codec bytes, failing loudly when the
// result violates the record contract.
func (cc *cache) encode(key string, res *Result) ([]byte, error) {
	env, err := toEnvelope(key, res)
	if err != nil {
		return nil, err
	}
	return cc.codec.Encode(env)
}

// write stores raw under key with the configured expiry and grace window.
// Logs "WRITE <key>" iff the backend reported success.
func (cc *cache) write(ctx context.Context, key string, raw []byte) {
	ok, err := cc.provider.Set(ctx, key, raw, cc.ttl, cc.grace)
	if err != nil {
		cc.log.Warn("storage write failed", Fields{"key": key, "err": err})
		cc.hooks.StorageError("write", key, err)
		return
	}
	if !ok {
		cc.log.Debug("write rejected by provider (pressure)", Fields{"key": key})
		cc.hooks.WriteRejected(key)
		return
	}
	cc.log.Info("WRITE "+key, nil)
}

func (cc *cache) key(args []any) string {
	return keys.Build(cc.name, args)
}

func toEnvelope(key string, res *Result) (payload.Envelope, error) {
	if res == nil || res.Kind == KindNil {
		return payload.Null(), nil
	}
	switch res.Kind {
	case KindSingle:
		if res.Record == nil {
			return payload.Envelope{}, &ContractError{Key: key, Reason: "single result without record"}
		}
		el := elementFrom(res.Record)
		return payload.Envelope{Kind: payload.Single, One: &el}, nil
	case KindCollection, KindPaginated:
		els := make([]payload.Element, len(res.Records))
		for i, r := range res.Records {
			if r == nil {
				return payload.Envelope{}, &ContractError{Key: key, Reason: fmt.Sprintf("nil record at index %d", i)}
			}
			els[i] = elementFrom(r)
		}
		if res.Kind == KindPaginated {
			return payload.Envelope{Kind: payload.Paginated, Elements: els, Links: res.Links}, nil
		}
		return payload.Envelope{Kind: payload.Collection, Elements: els}, nil
	default:
		return payload.Envelope{}, &ContractError{Key: key, Reason: fmt.Sprintf("unknown result kind %d", res.Kind)}
	}
}

func elementFrom(r *Record) payload.Element {
	return payload.Element{
		Object:        r.Attributes,
		Persistence:   r.Persisted,
		PrefixOptions: r.PrefixOptions,
	}
}

// recordFrom rebuilds a full copy: the decode already allocated fresh maps,
// and the persisted flag is restored explicitly from the envelope.
func recordFrom(el payload.Element) *Record {
	return &Record{
		Attributes:    el.Object,
		PrefixOptions: el.PrefixOptions,
		Persisted:     el.Persistence,
	}
}

func recordsFrom(els []payload.Element) []*Record {
	out := make([]*Record, len(els))
	for i, el := range els {
		out[i] = recordFrom(el)
	}
	return out
}

// stripReload inspects a trailing Params for the reload flag. The flag is
// removed from a copy (never the caller's map), and a Params left empty is
// dropped, so a bare reload call keys identically to a plain call.
func stripReload(args []any) ([]any, bool) {
	if len(args) == 0 {
		return args, false
	}
	p, ok := args[len(args)-1].(Params)
	if !ok {
		return args, false
	}
	if len(p) == 0 {
		return args[:len(args)-1], false
	}
	v, has := p[ReloadKey]
	if !has {
		return args, false
	}
	reload, _ := v.(bool)
	if len(p) == 1 {
		return args[:len(args)-1], reload
	}
	cp := make(Params, len(p)-1)
	for k, val := range p {
		if k != ReloadKey {
			cp[k] = val
		}
	}
	out := make([]any, len(args))
	copy(out, args)
	out[len(out)-1] = cp
	return out, reload
}
