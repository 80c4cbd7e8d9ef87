package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/avidal/homedrive/internal/domain/entities"
	"github.com/avidal/homedrive/internal/domain/repository"
)

// EntityKind selects the target of a rename.
type EntityKind string

const (
	KindFile   EntityKind = "file"
	KindFolder EntityKind = "folder"
)

// ContentListing is the result of listing one folder: its direct child
// folders (name ascending) and files (upload date descending).
type ContentListing struct {
	Folders []*entities.Folder     `json:"folders"`
	Files   []*entities.FileRecord `json:"files"`
}

// Namespace orchestrates the metadata and blob stores so that every
// FileRecord references a live blob and every blob is referenced by
// exactly one FileRecord. It is the only component that creates or
// destroys the two together.
type Namespace struct {
	metadata repository.MetadataRepository
	blobs    repository.BlobRepository
	logger   *log.Logger
}

// NewNamespace wires the engine to its two stores.
func NewNamespace(metadata repository.MetadataRepository, blobs repository.BlobRepository) *Namespace {
	return &Namespace{
		metadata: metadata,
		blobs:    blobs,
		logger:   log.New(os.Stdout, "[Namespace] ", log.LstdFlags),
	}
}

// ListContents returns the direct children of the given folder
// (nil = root). A non-root folder must exist.
func (n *Namespace) ListContents(ctx context.Context, folderID *string) (*ContentListing, error) {
	if folderID != nil {
		if _, err := n.metadata.GetFolder(ctx, *folderID); err != nil {
			return nil, err
		}
	}

	folders, err := n.metadata.ListFolders(ctx, folderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrStoreUnavailable, err)
	}

	files, err := n.metadata.ListFilesInFolder(ctx, folderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrStoreUnavailable, err)
	}

	return &ContentListing{Folders: folders, Files: files}, nil
}

// CreateFolder inserts a folder under the given parent (nil = root).
// The parent must exist when given.
func (n *Namespace) CreateFolder(ctx context.Context, name string, parentID *string) (*entities.Folder, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: folder name must not be empty", repository.ErrInvalidArgument)
	}

	if parentID != nil {
		if _, err := n.metadata.GetFolder(ctx, *parentID); err != nil {
			return nil, err
		}
	}

	folder := &entities.Folder{
		ID:        uuid.New().String(),
		Name:      name,
		ParentID:  parentID,
		CreatedAt: time.Now().UTC(),
	}

	if err := n.metadata.InsertFolder(ctx, folder); err != nil {
		return nil, err
	}

	return folder, nil
}

// DeleteFolder removes the folder and everything transitively inside
// it: files with their blobs first, then child folders recursively,
// then the folder row itself. A blob that is already gone is fine; any
// other blob failure aborts the cascade with the metadata row intact so
// the pairing invariant holds and the delete can be retried.
func (n *Namespace) DeleteFolder(ctx context.Context, id string) error {
	if _, err := n.metadata.GetFolder(ctx, id); err != nil {
		return err
	}
	return n.deleteSubtree(ctx, id)
}

func (n *Namespace) deleteSubtree(ctx context.Context, id string) error {
	// Snapshot the direct contents; entries added concurrently are
	// not this pass's problem, but the pass must not corrupt them.
	files, err := n.metadata.ListFilesInFolder(ctx, &id)
	if err != nil {
		return fmt.Errorf("%w: %v", repository.ErrStoreUnavailable, err)
	}

	for _, file := range files {
		if err := n.blobs.Delete(ctx, file.Name); err != nil {
			return fmt.Errorf("%w: blob %s: %v", repository.ErrPartialDelete, file.Name, err)
		}
		if err := n.metadata.DeleteFile(ctx, file.ID); err != nil {
			return fmt.Errorf("%w: file %s: %v", repository.ErrPartialDelete, file.ID, err)
		}
	}

	children, err := n.metadata.ListFolders(ctx, &id)
	if err != nil {
		return fmt.Errorf("%w: %v", repository.ErrStoreUnavailable, err)
	}

	for _, child := range children {
		if err := n.deleteSubtree(ctx, child.ID); err != nil {
			return err
		}
	}

	return n.metadata.DeleteFolder(ctx, id)
}

// ListFiles returns every file in the namespace, newest first.
func (n *Namespace) ListFiles(ctx context.Context) ([]*entities.FileRecord, error) {
	files, err := n.metadata.ListFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrStoreUnavailable, err)
	}
	return files, nil
}

// UploadFile writes the blob first and inserts the metadata row only
// after the bytes are safely on disk. A failed insert removes the
// orphaned blob as compensation.
func (n *Namespace) UploadFile(ctx context.Context, content io.Reader, originalName, mimeType string, folderID *string) (*entities.FileRecord, error) {
	if content == nil {
		return nil, fmt.Errorf("%w: no file content supplied", repository.ErrInvalidArgument)
	}

	if folderID != nil {
		if _, err := n.metadata.GetFolder(ctx, *folderID); err != nil {
			return nil, err
		}
	}

	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	key, size, err := n.blobs.Store(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("failed to store blob: %w", err)
	}

	file := &entities.FileRecord{
		ID:           uuid.New().String(),
		Name:         key,
		OriginalName: originalName,
		MimeType:     mimeType,
		Size:         size,
		FolderID:     folderID,
		UploadDate:   time.Now().UTC(),
	}

	if err := n.metadata.InsertFile(ctx, file); err != nil {
		// The blob is unreferenced now; best-effort cleanup so a
		// failed insert does not leak bytes.
		if cleanupErr := n.blobs.Delete(ctx, key); cleanupErr != nil {
			n.logger.Printf("Warning: failed to remove orphaned blob %s: %v", key, cleanupErr)
		}
		return nil, fmt.Errorf("failed to insert file record: %w", err)
	}

	return file, nil
}

// OpenFile looks up the record and opens its blob. Both Download and
// View are this lookup; only the response headers differ. A record
// whose blob is gone reports ErrBlobMissing, never ErrNotFound.
func (n *Namespace) OpenFile(ctx context.Context, id string) (*entities.FileRecord, io.ReadCloser, error) {
	file, err := n.metadata.GetFile(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	blob, err := n.blobs.Open(ctx, file.Name)
	if err != nil {
		return nil, nil, err
	}

	return file, blob, nil
}

// DeleteFile removes the blob first, then the metadata row. Blob
// absence is fine since the goal state is "gone"; a real I/O failure
// keeps the row so the delete can be retried.
func (n *Namespace) DeleteFile(ctx context.Context, id string) error {
	file, err := n.metadata.GetFile(ctx, id)
	if err != nil {
		return err
	}

	if err := n.blobs.Delete(ctx, file.Name); err != nil {
		return fmt.Errorf("%w: blob %s: %v", repository.ErrDeleteFailed, file.Name, err)
	}

	return n.metadata.DeleteFile(ctx, id)
}

// Rename updates the display name of a file or folder in place.
func (n *Namespace) Rename(ctx context.Context, id string, kind EntityKind, newName string) error {
	if strings.TrimSpace(newName) == "" {
		return fmt.Errorf("%w: new name must not be empty", repository.ErrInvalidArgument)
	}

	switch kind {
	case KindFile:
		return n.metadata.RenameFile(ctx, id, newName)
	case KindFolder:
		return n.metadata.RenameFolder(ctx, id, newName)
	default:
		return fmt.Errorf("%w: unknown rename kind %q", repository.ErrInvalidArgument, kind)
	}
}

// ComputeStats aggregates over all files; zero values for an empty
// namespace.
func (n *Namespace) ComputeStats(ctx context.Context) (*entities.NamespaceStats, error) {
	stats, err := n.metadata.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrStoreUnavailable, err)
	}
	return stats, nil
}

// Health probes both stores: a metadata ping and a blob store
// write/delete round-trip.
func (n *Namespace) Health(ctx context.Context) error {
	if err := n.metadata.Ping(ctx); err != nil {
		return fmt.Errorf("metadata store health check failed: %w", err)
	}

	key, _, err := n.blobs.Store(ctx, bytes.NewReader([]byte("health_check")))
	if err != nil {
		return fmt.Errorf("blob store health check failed: %w", err)
	}
	if err := n.blobs.Delete(ctx, key); err != nil {
		n.logger.Printf("Warning: failed to clean up health check blob %s: %v", key, err)
	}

	return nil
}
