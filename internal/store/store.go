// Package store is the only path to persistent state: a thin adapter
// over the networked key-to-JSON document store. Every client failure is
// converted to a typed error at this boundary; nothing below it leaks to
// callers.
package store

import (
	"context"
	"encoding/json"
	"errors"
)

var (
	// ErrUnavailable reports that the underlying store could not be
	// reached, timed out, or rejected the operation.
	ErrUnavailable = errors.New("store: unavailable")
	// ErrNotFound reports an absent key on read.
	ErrNotFound = errors.New("store: not found")
)

// Store is the document store contract used by the rest of the service.
// A Put on an existing key fully replaces the prior value. ListAll and
// PurgeAll are O(n) over the whole store and are not paginated.
type Store interface {
	Put(ctx context.Context, key string, value any) error
	Get(ctx context.Context, key string) (json.RawMessage, error)
	Delete(ctx context.Context, key string) error
	ListAll(ctx context.Context) (map[string]json.RawMessage, error)
	PurgeAll(ctx context.Context) (map[string]json.RawMessage, error)
}
