package rescache

import (
	"fmt"
)

// ContractError reports a programmer error: an object handed to the writer
// or synchronizer that does not satisfy the Record contract (nil record, a
// Result whose kind and payload disagree, or a record without its primary
// key during collection synchronization). It is never swallowed.
type ContractError struct {
	Key    string // cache key being written, if known
	Reason string
}

func (e *ContractError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("rescache: contract violation: %s", e.Reason)
	}
	return fmt.Sprintf("rescache: contract violation writing %q: %s", e.Key, e.Reason)
}

// DecodeError reports a cached payload that could not be deserialized
// (corrupt bytes or an incompatible envelope). Unlike a plain miss or a
// storage failure it surfaces to the Find caller.
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("rescache: decode %q failed: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
