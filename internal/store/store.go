package store

import "context"

// Store persists whole-cart snapshots as opaque string blobs. Each session
// owns a single well-known key; there are no partial or delta writes.
type Store interface {
	// Read returns the blob stored for key. The boolean reports presence;
	// an absent key is not an error.
	Read(ctx context.Context, key string) (string, bool, error)
	// Write replaces the blob stored for key.
	Write(ctx context.Context, key, value string) error
}
