package rescache

import (
	"context"
	"fmt"

	"github.com/unkn0wn-root/rescache/internal/keys"
)

// synchronize propagates a fresh fetch into the per-record entries and the
// mother collection entry, so an individually updated record shows up in a
// cached full listing without a re-fetch. Runs before the fetch's own write.
func (cc *cache) synchronize(ctx context.Context, args []any, res *Result) error {
	if res == nil {
		return nil
	}
	switch res.Kind {
	case KindCollection, KindPaginated:
		for _, r := range res.Records {
			pk, err := cc.primaryKey(r)
			if err != nil {
				return err
			}
			singleKey := keys.Build(cc.name, []any{pk})
			raw, err := cc.encode(singleKey, Single(r))
			if err != nil {
				return err
			}
			cc.write(ctx, singleKey, raw)
		}
		// A fetch whose arguments are exactly the collection arguments is
		// itself the authoritative full refresh: its own write replaces the
		// mother collection wholesale, no merge needed.
		if cc.key(args) == cc.collectionKey {
			return nil
		}
		return cc.merge(ctx, res.Records)
	case KindSingle:
		if res.Record == nil {
			return &ContractError{Reason: "single result without record"}
		}
		return cc.merge(ctx, []*Record{res.Record})
	}
	return nil
}

// merge overwrites/inserts updates into the cached mother collection by
// primary key. Untouched records keep their original order; new records
// append in update order. An absent mother collection stays absent: a
// partial result never materializes into a full listing.
func (cc *cache) merge(ctx context.Context, updates []*Record) error {
	if len(updates) == 0 {
		cc.hooks.SyncSkipped(cc.collectionKey, "empty_updates")
		return nil
	}
	mother, ok, err := cc.read(ctx, cc.collectionKey)
	if err != nil {
		return err
	}
	if !ok || (mother.Kind != KindCollection && mother.Kind != KindPaginated) {
		cc.hooks.SyncSkipped(cc.collectionKey, "no_mother")
		return nil
	}

	merged := make([]*Record, len(mother.Records), len(mother.Records)+len(updates))
	copy(merged, mother.Records)
	index := make(map[string]int, len(merged))
	for i, r := range merged {
		pk, err := cc.primaryKey(r)
		if err != nil {
			return err
		}
		index[pk] = i
	}

	updated, inserted := 0, 0
	for _, u := range updates {
		pk, err := cc.primaryKey(u)
		if err != nil {
			return err
		}
		if i, hit := index[pk]; hit {
			merged[i] = u
			updated++
		} else {
			index[pk] = len(merged)
			merged = append(merged, u)
			inserted++
		}
	}

	mother.Records = merged // kind and links of the cached entry are kept
	raw, err := cc.encode(cc.collectionKey, mother)
	if err != nil {
		return err
	}
	cc.write(ctx, cc.collectionKey, raw)
	cc.hooks.SyncMerged(cc.collectionKey, updated, inserted)
	return nil
}

// primaryKey extracts and stringifies the record's merge key. A record
// without it cannot participate in synchronization; that is a contract
// violation, not a skippable condition.
func (cc *cache) primaryKey(r *Record) (string, error) {
	if r == nil {
		return "", &ContractError{Reason: "nil record"}
	}
	v, ok := r.Attributes[cc.pk]
	if !ok || v == nil {
		return "", &ContractError{Reason: fmt.Sprintf("record missing primary key %q", cc.pk)}
	}
	return fmt.Sprintf("%v", v), nil
}
