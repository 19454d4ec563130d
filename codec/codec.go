// Package codec pluggable (de)serialization for cached payloads.
// The cache stores payload.Envelope values; JSON is the default, with
// msgpack and CBOR available where payload size or decode speed matters.
package codec

// Codec encodes/decodes values V to []byte for storage.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
