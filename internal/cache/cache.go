// Package cache provides the key-value layer in front of read-heavy
// endpoints. Entries are serialized response payloads keyed by a
// resource-type namespace plus a lookup token, with a per-resource TTL.
//
// The cache is never authoritative: a miss (or any backend failure,
// which degrades to a miss) simply falls through to the database.
package cache

import (
	"context"
	"time"
)

// Cache is the contract resource handlers consume. Implementations must
// never surface backend errors to callers: Get reports a miss, Set,
// Delete and InvalidatePattern log and return.
type Cache interface {
	// Get returns the stored value for key, or ok=false on a miss or
	// expired entry.
	Get(ctx context.Context, key string) (value []byte, ok bool)

	// Set stores value under key for ttl, overwriting any existing entry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)

	// Delete removes a single entry. Removing an absent key is a no-op.
	Delete(ctx context.Context, key string)

	// InvalidatePattern removes every entry whose key starts with prefix,
	// dropping a whole resource-type namespace in one call.
	InvalidatePattern(ctx context.Context, prefix string)

	Close() error
}
