package secondary

import "context"

// KeyValueStore defines the secondary port for small keyed values
// (settings, rollback copies, emergency snapshots).
type KeyValueStore interface {
	// Get returns the value under key, or ErrRecordNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set writes value under key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists keys starting with prefix in ascending order.
	Keys(ctx context.Context, prefix string) ([]string, error)
}
