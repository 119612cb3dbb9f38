// Package localstore provides the string key/value storage the portal
// persists into. It mirrors a browser profile's local storage: one flat
// namespace of string keys, each holding one serialized value, replaced
// wholesale on every write.
package localstore

import (
	"context"
	"errors"
)

// ErrNoItem is returned when a key has never been written.
var ErrNoItem = errors.New("localstore: no item")

// Store abstracts the underlying key/value storage.
type Store interface {
	// GetItem returns the value stored under key, or ErrNoItem.
	GetItem(ctx context.Context, key string) (string, error)
	// SetItem replaces the value stored under key.
	SetItem(ctx context.Context, key, value string) error
	// RemoveItem deletes the value stored under key. Removing a missing
	// key is not an error.
	RemoveItem(ctx context.Context, key string) error
}
