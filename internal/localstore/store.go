// Package localstore provides the synchronous string-keyed persistence
// substrate the entity stores serialize into.
package localstore

import "context"

// Store is a flat key-value space. Writes are synchronous: when Set returns,
// the value is persisted.
type Store interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes the key; deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
