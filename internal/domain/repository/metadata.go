package repository

import (
	"context"

	"github.com/avidal/homedrive/internal/domain/entities"
)

// MetadataRepository is the relational store for Folder and FileRecord
// rows. A nil folder/parent id is a first-class value meaning "root",
// never a wildcard: ListFolders(ctx, nil) returns only folders whose
// parent is null.
type MetadataRepository interface {
	// InsertFolder stores a fully populated folder row.
	InsertFolder(ctx context.Context, folder *entities.Folder) error

	// GetFolder retrieves a folder by id. Returns ErrNotFound if the
	// id does not exist.
	GetFolder(ctx context.Context, id string) (*entities.Folder, error)

	// ListFolders returns the folders directly under the given parent
	// (nil = root), ordered by name ascending.
	ListFolders(ctx context.Context, parentID *string) ([]*entities.Folder, error)

	// RenameFolder updates a folder's display name. Returns
	// ErrNotFound if the id does not exist.
	RenameFolder(ctx context.Context, id, name string) error

	// DeleteFolder removes a folder row by id. Returns ErrNotFound if
	// the id does not exist.
	DeleteFolder(ctx context.Context, id string) error

	// InsertFile stores a fully populated file row.
	InsertFile(ctx context.Context, file *entities.FileRecord) error

	// GetFile retrieves a file by id. Returns ErrNotFound if the id
	// does not exist.
	GetFile(ctx context.Context, id string) (*entities.FileRecord, error)

	// ListFilesInFolder returns the files directly inside the given
	// folder (nil = root), ordered by upload date descending.
	ListFilesInFolder(ctx context.Context, folderID *string) ([]*entities.FileRecord, error)

	// ListFiles returns every file in the namespace, ordered by
	// upload date descending.
	ListFiles(ctx context.Context) ([]*entities.FileRecord, error)

	// RenameFile updates a file's user-visible name. Returns
	// ErrNotFound if the id does not exist.
	RenameFile(ctx context.Context, id, originalName string) error

	// DeleteFile removes a file row by id. Returns ErrNotFound if the
	// id does not exist.
	DeleteFile(ctx context.Context, id string) error

	// Stats returns count and total size over all file rows, both
	// zero for an empty namespace.
	Stats(ctx context.Context) (*entities.NamespaceStats, error)

	// Ping reports whether the store is reachable.
	Ping(ctx context.Context) error

	// Close releases the underlying connection.
	Close() error
}
