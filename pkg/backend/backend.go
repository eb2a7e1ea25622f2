package backend

import "context"

// Backend is the narrow cache-store surface the invalidation engine needs:
// deletion primitives only. Value storage, TTLs and eviction policy stay with
// the cache itself.
//
// Deletion is idempotent: removing a missing key is a no-op success, which is
// what makes concurrent invalidation of overlapping key sets safe without a
// global lock.
type Backend interface {
	// Delete removes a single key.
	Delete(ctx context.Context, key string) error

	// DeleteMulti removes many keys in one backend call. Callers chunk key
	// sets before calling; implementations issue exactly one bulk operation.
	DeleteMulti(ctx context.Context, keys []string) error
}
