package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avidal/homedrive/internal/domain/entities"
	domain "github.com/avidal/homedrive/internal/domain/repository"
)

func newTestRepo(t *testing.T) *SQLiteMetadata {
	t.Helper()
	repo, err := NewSQLiteMetadata(filepath.Join(t.TempDir(), "metadata.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func testFolder(name string, parentID *string) *entities.Folder {
	return &entities.Folder{
		ID:        uuid.New().String(),
		Name:      name,
		ParentID:  parentID,
		CreatedAt: time.Now().UTC(),
	}
}

func testFile(originalName string, size int64, folderID *string, uploadDate time.Time) *entities.FileRecord {
	return &entities.FileRecord{
		ID:           uuid.New().String(),
		Name:         uuid.New().String(),
		OriginalName: originalName,
		MimeType:     "text/plain",
		Size:         size,
		FolderID:     folderID,
		UploadDate:   uploadDate,
	}
}

func TestSQLiteMetadataFolders(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	t.Run("InsertAndGet", func(t *testing.T) {
		folder := testFolder("documents", nil)
		require.NoError(t, repo.InsertFolder(ctx, folder))

		got, err := repo.GetFolder(ctx, folder.ID)
		require.NoError(t, err)
		assert.Equal(t, folder.ID, got.ID)
		assert.Equal(t, "documents", got.Name)
		assert.Nil(t, got.ParentID)
	})

	t.Run("GetMissingReturnsNotFound", func(t *testing.T) {
		_, err := repo.GetFolder(ctx, uuid.New().String())
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("ListOrdersByNameAscending", func(t *testing.T) {
		parent := testFolder("parent", nil)
		require.NoError(t, repo.InsertFolder(ctx, parent))

		for _, name := range []string{"zebra", "apple", "mango"} {
			require.NoError(t, repo.InsertFolder(ctx, testFolder(name, &parent.ID)))
		}

		children, err := repo.ListFolders(ctx, &parent.ID)
		require.NoError(t, err)
		require.Len(t, children, 3)
		assert.Equal(t, "apple", children[0].Name)
		assert.Equal(t, "mango", children[1].Name)
		assert.Equal(t, "zebra", children[2].Name)
	})

	t.Run("NullParentIsNotAWildcard", func(t *testing.T) {
		repo := newTestRepo(t)

		root := testFolder("at-root", nil)
		require.NoError(t, repo.InsertFolder(ctx, root))
		require.NoError(t, repo.InsertFolder(ctx, testFolder("nested", &root.ID)))

		atRoot, err := repo.ListFolders(ctx, nil)
		require.NoError(t, err)
		require.Len(t, atRoot, 1)
		assert.Equal(t, "at-root", atRoot[0].Name)
	})

	t.Run("Rename", func(t *testing.T) {
		folder := testFolder("before", nil)
		require.NoError(t, repo.InsertFolder(ctx, folder))
		require.NoError(t, repo.RenameFolder(ctx, folder.ID, "after"))

		got, err := repo.GetFolder(ctx, folder.ID)
		require.NoError(t, err)
		assert.Equal(t, "after", got.Name)
	})

	t.Run("RenameMissingReturnsNotFound", func(t *testing.T) {
		err := repo.RenameFolder(ctx, uuid.New().String(), "whatever")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("DeleteMissingReturnsNotFound", func(t *testing.T) {
		err := repo.DeleteFolder(ctx, uuid.New().String())
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestSQLiteMetadataFiles(t *testing.T) {
	ctx := context.Background()

	t.Run("InsertAndGet", func(t *testing.T) {
		repo := newTestRepo(t)
		file := testFile("notes.txt", 42, nil, time.Now().UTC())
		require.NoError(t, repo.InsertFile(ctx, file))

		got, err := repo.GetFile(ctx, file.ID)
		require.NoError(t, err)
		assert.Equal(t, file.Name, got.Name)
		assert.Equal(t, "notes.txt", got.OriginalName)
		assert.Equal(t, int64(42), got.Size)
		assert.Nil(t, got.FolderID)
	})

	t.Run("ListInFolderOrdersByUploadDateDescending", func(t *testing.T) {
		repo := newTestRepo(t)
		folder := testFolder("photos", nil)
		require.NoError(t, repo.InsertFolder(ctx, folder))

		base := time.Now().UTC()
		oldest := testFile("oldest.jpg", 1, &folder.ID, base.Add(-2*time.Hour))
		middle := testFile("middle.jpg", 1, &folder.ID, base.Add(-time.Hour))
		newest := testFile("newest.jpg", 1, &folder.ID, base)
		for _, f := range []*entities.FileRecord{oldest, newest, middle} {
			require.NoError(t, repo.InsertFile(ctx, f))
		}

		files, err := repo.ListFilesInFolder(ctx, &folder.ID)
		require.NoError(t, err)
		require.Len(t, files, 3)
		assert.Equal(t, "newest.jpg", files[0].OriginalName)
		assert.Equal(t, "middle.jpg", files[1].OriginalName)
		assert.Equal(t, "oldest.jpg", files[2].OriginalName)
	})

	t.Run("RootListingExcludesFolderedFiles", func(t *testing.T) {
		repo := newTestRepo(t)
		folder := testFolder("music", nil)
		require.NoError(t, repo.InsertFolder(ctx, folder))
		require.NoError(t, repo.InsertFile(ctx, testFile("root.txt", 1, nil, time.Now().UTC())))
		require.NoError(t, repo.InsertFile(ctx, testFile("in-folder.txt", 1, &folder.ID, time.Now().UTC())))

		atRoot, err := repo.ListFilesInFolder(ctx, nil)
		require.NoError(t, err)
		require.Len(t, atRoot, 1)
		assert.Equal(t, "root.txt", atRoot[0].OriginalName)

		all, err := repo.ListFiles(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("RenameUpdatesOnlyOriginalName", func(t *testing.T) {
		repo := newTestRepo(t)
		file := testFile("draft.txt", 1, nil, time.Now().UTC())
		require.NoError(t, repo.InsertFile(ctx, file))
		require.NoError(t, repo.RenameFile(ctx, file.ID, "final.txt"))

		got, err := repo.GetFile(ctx, file.ID)
		require.NoError(t, err)
		assert.Equal(t, "final.txt", got.OriginalName)
		assert.Equal(t, file.Name, got.Name)
	})

	t.Run("DeleteThenGetReturnsNotFound", func(t *testing.T) {
		repo := newTestRepo(t)
		file := testFile("gone.txt", 1, nil, time.Now().UTC())
		require.NoError(t, repo.InsertFile(ctx, file))
		require.NoError(t, repo.DeleteFile(ctx, file.ID))

		_, err := repo.GetFile(ctx, file.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		err = repo.DeleteFile(ctx, file.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestSQLiteMetadataStats(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.Count)
	assert.Equal(t, int64(0), stats.TotalSize)

	sizes := []int64{10, 200, 3000}
	var total int64
	for _, size := range sizes {
		require.NoError(t, repo.InsertFile(ctx, testFile("f", size, nil, time.Now().UTC())))
		total += size
	}

	stats, err = repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len(sizes)), stats.Count)
	assert.Equal(t, total, stats.TotalSize)
}
