package store

import (
	"fmt"

	"github.com/codeu/chatstore/internal/model"
)

// Error is the failure every store operation surfaces. It carries the
// operation, the entity kind involved and the originating cause so callers
// can decide whether to retry, abort or degrade. Use errors.Is with
// model.ErrStoreUnavailable or model.ErrDataCorruption to classify it.
type Error struct {
	Op   string
	Kind string
	Err  error
}

func (e *Error) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("persistent data store: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("persistent data store: %s %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// unavailable wraps a backing-store failure so it reports as
// model.ErrStoreUnavailable while keeping the driver's cause in the chain.
func unavailable(op, kind string, cause error) error {
	return &Error{Op: op, Kind: kind, Err: fmt.Errorf("%w: %w", model.ErrStoreUnavailable, cause)}
}
