package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/avidal/homedrive/internal/domain/entities"
	"github.com/avidal/homedrive/internal/domain/repository"
	"github.com/avidal/homedrive/internal/usecase"
	"github.com/avidal/homedrive/internal/usecase/mocks"
)

func TestUploadFileCompensatesFailedInsert(t *testing.T) {
	ctx := context.Background()
	metadata := new(mocks.MockMetadataRepository)
	blobs := new(mocks.MockBlobRepository)

	blobs.On("Store", ctx, mock.Anything).Return("blob-key", int64(5), nil)
	metadata.On("InsertFile", ctx, mock.Anything).Return(errors.New("disk full"))
	blobs.On("Delete", ctx, "blob-key").Return(nil)

	engine := usecase.NewNamespace(metadata, blobs)
	_, err := engine.UploadFile(ctx, bytes.NewReader([]byte("hello")), "a.txt", "text/plain", nil)

	assert.Error(t, err)
	blobs.AssertCalled(t, "Delete", ctx, "blob-key")
}

func TestUploadFileBlobFailureSkipsInsert(t *testing.T) {
	ctx := context.Background()
	metadata := new(mocks.MockMetadataRepository)
	blobs := new(mocks.MockBlobRepository)

	blobs.On("Store", ctx, mock.Anything).Return("", int64(0), errors.New("write error"))

	engine := usecase.NewNamespace(metadata, blobs)
	_, err := engine.UploadFile(ctx, bytes.NewReader([]byte("hello")), "a.txt", "text/plain", nil)

	assert.Error(t, err)
	metadata.AssertNotCalled(t, "InsertFile", mock.Anything, mock.Anything)
}

func TestUploadFileNilContentIsInvalid(t *testing.T) {
	engine := usecase.NewNamespace(new(mocks.MockMetadataRepository), new(mocks.MockBlobRepository))

	_, err := engine.UploadFile(context.Background(), nil, "a.txt", "text/plain", nil)
	assert.ErrorIs(t, err, repository.ErrInvalidArgument)
}

func TestDeleteFilePreservesRowOnBlobFailure(t *testing.T) {
	ctx := context.Background()
	metadata := new(mocks.MockMetadataRepository)
	blobs := new(mocks.MockBlobRepository)

	record := &entities.FileRecord{
		ID:           "file-1",
		Name:         "blob-key",
		OriginalName: "a.txt",
		UploadDate:   time.Now().UTC(),
	}
	metadata.On("GetFile", ctx, "file-1").Return(record, nil)
	blobs.On("Delete", ctx, "blob-key").Return(errors.New("i/o error"))

	engine := usecase.NewNamespace(metadata, blobs)
	err := engine.DeleteFile(ctx, "file-1")

	assert.ErrorIs(t, err, repository.ErrDeleteFailed)
	metadata.AssertNotCalled(t, "DeleteFile", mock.Anything, mock.Anything)
}

func TestDeleteFolderAbortsOnBlobFailure(t *testing.T) {
	ctx := context.Background()
	metadata := new(mocks.MockMetadataRepository)
	blobs := new(mocks.MockBlobRepository)

	folder := &entities.Folder{ID: "folder-1", Name: "docs"}
	inside := &entities.FileRecord{ID: "file-1", Name: "blob-key"}

	metadata.On("GetFolder", ctx, "folder-1").Return(folder, nil)
	metadata.On("ListFilesInFolder", ctx, mock.Anything).Return([]*entities.FileRecord{inside}, nil)
	blobs.On("Delete", ctx, "blob-key").Return(errors.New("i/o error"))

	engine := usecase.NewNamespace(metadata, blobs)
	err := engine.DeleteFolder(ctx, "folder-1")

	assert.ErrorIs(t, err, repository.ErrPartialDelete)
	metadata.AssertNotCalled(t, "DeleteFile", mock.Anything, mock.Anything)
	metadata.AssertNotCalled(t, "DeleteFolder", mock.Anything, mock.Anything)
}

func TestRenameUnknownKindIsInvalid(t *testing.T) {
	metadata := new(mocks.MockMetadataRepository)
	engine := usecase.NewNamespace(metadata, new(mocks.MockBlobRepository))

	err := engine.Rename(context.Background(), "id", usecase.EntityKind("link"), "name")
	assert.ErrorIs(t, err, repository.ErrInvalidArgument)
	metadata.AssertNotCalled(t, "RenameFile", mock.Anything, mock.Anything, mock.Anything)
	metadata.AssertNotCalled(t, "RenameFolder", mock.Anything, mock.Anything, mock.Anything)
}
