package driven

import "context"

// KeyValueStore is durable local key-value storage.
// Backed by SQLite or a JSON file on disk.
type KeyValueStore interface {
	// Get returns the value stored under key.
	// Returns domain.ErrNotFound if the slot is empty.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put replaces the value stored under key. A Put either fully replaces
	// the previous value or leaves it untouched.
	Put(ctx context.Context, key string, value []byte) error
}
