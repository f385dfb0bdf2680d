package driven

import "context"

// SeenCache is an optional fast membership check consulted before the
// ContentStore during deduplication. Backed by Redis. A cache miss is
// never authoritative: the deduplicator falls through to the store.
type SeenCache interface {
	// Seen reports whether the key was marked before. Errors are
	// treated as a miss by callers.
	Seen(ctx context.Context, key string) (bool, error)

	// Mark records a key. Best-effort: errors are logged, not returned
	// to the ingestion flow.
	Mark(ctx context.Context, key string) error
}
