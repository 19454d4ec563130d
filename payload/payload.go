// Package payload defines the storage envelope for cached fetch results.
//
// The envelope is what a Codec sees: an explicit kind tag plus the record
// elements, each carrying the raw attribute map, the persisted flag, and the
// prefix/scoping options. Persistence is stored explicitly because a generic
// copy of the attributes alone cannot distinguish a persisted record from a
// new one. Encode/Decode through any codec must round-trip an Envelope
// exactly.
package payload

// Kind tags the shape of a cached entry.
type Kind uint8

const (
	Nil Kind = iota
	Single
	Collection
	Paginated
)

// Element is one serialized record.
type Element struct {
	Object        map[string]any `json:"object" msgpack:"object" cbor:"object"`
	Persistence   bool           `json:"persistence" msgpack:"persistence" cbor:"persistence"`
	PrefixOptions map[string]any `json:"prefix_options,omitempty" msgpack:"prefix_options,omitempty" cbor:"prefix_options,omitempty"`
}

// Envelope is the stored payload.
//   - Nil:        all other fields empty (a cached literal null)
//   - Single:     One is set
//   - Collection: Elements is set
//   - Paginated:  Elements plus Links are set
type Envelope struct {
	Kind     Kind              `json:"kind" msgpack:"kind" cbor:"kind"`
	Links    map[string]string `json:"links,omitempty" msgpack:"links,omitempty" cbor:"links,omitempty"`
	One      *Element          `json:"single,omitempty" msgpack:"single,omitempty" cbor:"single,omitempty"`
	Elements []Element         `json:"elements,omitempty" msgpack:"elements,omitempty" cbor:"elements,omitempty"`
}

// Null is the envelope for a fetch that produced nothing.
func Null() Envelope { return Envelope{Kind: Nil} }

// IsNull reports whether the envelope decodes to no object at all.
func (e Envelope) IsNull() bool { return e.Kind == Nil }
