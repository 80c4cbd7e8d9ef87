package blob

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/google/uuid"

	domain "github.com/avidal/homedrive/internal/domain/repository"
)

var keyRegex = regexp.MustCompile(`^[0-9]+-[0-9a-f-]{36}$`)

// DiskStore keeps blobs as a flat directory of files named by their
// storage key. The logical folder tree exists only in metadata.
type DiskStore struct {
	basePath string
}

// NewDiskStore creates the base directory if needed and returns a
// store rooted there.
func NewDiskStore(basePath string) (*DiskStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create blob directory: %w", err)
	}
	return &DiskStore{basePath: basePath}, nil
}

// newKey combines a nanosecond timestamp with a random UUID so that
// concurrent uploads cannot collide.
func newKey() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixNano(), uuid.New().String())
}

func (s *DiskStore) Store(ctx context.Context, reader io.Reader) (string, int64, error) {
	tempFile, err := os.CreateTemp(s.basePath, "upload-*")
	if err != nil {
		return "", 0, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tempFile.Name())

	size, err := io.Copy(tempFile, reader)
	if err != nil {
		tempFile.Close()
		return "", 0, fmt.Errorf("failed to write blob: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return "", 0, fmt.Errorf("failed to close temp file: %w", err)
	}

	key := newKey()
	if err := os.Rename(tempFile.Name(), s.blobPath(key)); err != nil {
		return "", 0, fmt.Errorf("failed to place blob: %w", err)
	}

	return key, size, nil
}

func (s *DiskStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if !keyRegex.MatchString(key) {
		return nil, domain.ErrBlobMissing
	}
	file, err := os.Open(s.blobPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrBlobMissing
		}
		return nil, fmt.Errorf("failed to open blob: %w", err)
	}
	return file, nil
}

func (s *DiskStore) Delete(ctx context.Context, key string) error {
	if !keyRegex.MatchString(key) {
		return nil
	}
	if err := os.Remove(s.blobPath(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	return nil
}

func (s *DiskStore) Exists(ctx context.Context, key string) bool {
	if !keyRegex.MatchString(key) {
		return false
	}
	_, err := os.Stat(s.blobPath(key))
	return err == nil
}

func (s *DiskStore) blobPath(key string) string {
	return filepath.Join(s.basePath, key)
}
