package driven

import "context"

// BlobCache is an optional read-through cache for downloaded payloads.
// A nil BlobCache disables caching; callers must tolerate both a miss
// and a nil cache the same way.
type BlobCache interface {
	// Get returns the cached payload for key, or ok=false on a miss
	// (including expiry).
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Put stores a payload under key, replacing any previous entry.
	Put(ctx context.Context, key string, data []byte) error

	// Close releases the underlying store.
	Close() error
}
