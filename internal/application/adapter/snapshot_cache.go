// Package adapter defines the ports the application layer depends on.
package adapter

import "context"

// SnapshotCache is a read-through cache for loaded snapshot tables. Entries
// expire after a fixed TTL; Invalidate drops them early so the next load
// recomputes from source.
type SnapshotCache interface {
	// Get unmarshals the cached value for key into dest. The boolean reports
	// whether the key was present.
	Get(ctx context.Context, key string, dest any) (bool, error)

	// Set stores value under key with the configured TTL.
	Set(ctx context.Context, key string, value any) error

	// Invalidate removes the given keys. Missing keys are not an error.
	Invalidate(ctx context.Context, keys ...string) error
}
