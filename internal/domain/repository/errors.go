package repository

import "errors"

// Error taxonomy shared by the stores and the namespace engine. The
// handlers map these onto HTTP status codes; everything else is a 500.
var (
	// ErrInvalidArgument means the caller supplied bad input and no
	// state was changed.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound means a referenced folder or file id does not exist.
	ErrNotFound = errors.New("not found")

	// ErrBlobMissing means a FileRecord exists but its blob does not.
	// This indicates store corruption, not user error, and must never
	// be reported as ErrNotFound.
	ErrBlobMissing = errors.New("blob missing for existing file record")

	// ErrPartialDelete means a cascade delete could not complete
	// cleanly; metadata and blobs remain paired and the operation can
	// be retried.
	ErrPartialDelete = errors.New("partial delete failure")

	// ErrDeleteFailed means a single-file delete could not remove the
	// blob; the metadata row is preserved so the delete can be retried.
	ErrDeleteFailed = errors.New("delete failed")

	// ErrStoreUnavailable means the metadata store cannot be reached.
	ErrStoreUnavailable = errors.New("metadata store unavailable")
)
