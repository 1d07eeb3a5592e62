package dedupe

import "context"

// KeyPrefix namespaces submission keys in shared stores.
const KeyPrefix = "formrelay:submission:"

// Store records keys for a fixed TTL.
type Store interface {
	// Acquire returns true the first time key is seen within the TTL.
	Acquire(ctx context.Context, key string) (bool, error)
	// Release forgets key so the next Acquire succeeds again.
	Release(ctx context.Context, key string) error
}
