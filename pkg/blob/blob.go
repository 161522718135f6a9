// Package blob is the persistence boundary of the calendar core: an opaque
// key-value store holding one serialized snapshot per key. The core never
// interprets backend failures as fatal; a missing snapshot means a fresh
// calendar.
package blob

import (
	"context"
	"errors"
)

// ErrNotFound reports that nothing has been saved under the store's key yet.
var ErrNotFound = errors.New("blob: not found")

// Store loads and saves one opaque snapshot.
type Store interface {
	// Load returns the previously saved blob, or ErrNotFound.
	Load(ctx context.Context) ([]byte, error)
	// Save replaces the stored blob. Best-effort from the caller's view:
	// mutation paths log failures instead of propagating them.
	Save(ctx context.Context, data []byte) error
}
