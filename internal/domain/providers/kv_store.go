package providers

import "context"

// KVStore is the durable get/set-by-key backing used by the entity store and
// the history log. Implementations persist opaque documents; they never
// interpret the payload.
type KVStore interface {
	// Get retrieves the value stored under key. A missing key returns
	// ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the value stored under key. Deleting a missing key is
	// not an error.
	Delete(ctx context.Context, key string) error

	// Exists checks whether a key holds a value
	Exists(ctx context.Context, key string) (bool, error)
}

// ErrKeyNotFound is returned by KVStore.Get for missing keys
var ErrKeyNotFound = errKeyNotFound{}

type errKeyNotFound struct{}

func (errKeyNotFound) Error() string { return "key not found" }
