package repository

import (
	"context"
	"io"
)

// BlobRepository stores raw file bytes under opaque keys. It knows
// nothing about folders or display names; the key is the only handle.
type BlobRepository interface {
	// Store persists the reader's bytes under a freshly generated
	// unique key and returns the key and the byte count.
	Store(ctx context.Context, reader io.Reader) (key string, size int64, err error)

	// Open returns the blob for reading. Returns ErrBlobMissing if no
	// blob exists under the key.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the blob. Deleting a key that does not exist is
	// a no-op, so cleanup after a failed cascade can be retried.
	Delete(ctx context.Context, key string) error

	// Exists reports whether a blob is present under the key.
	Exists(ctx context.Context, key string) bool
}
