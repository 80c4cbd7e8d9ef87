package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/avidal/homedrive/internal/domain/entities"
)

// MockMetadataRepository is a mock implementation of MetadataRepository
type MockMetadataRepository struct {
	mock.Mock
}

func (m *MockMetadataRepository) InsertFolder(ctx context.Context, folder *entities.Folder) error {
	args := m.Called(ctx, folder)
	return args.Error(0)
}

func (m *MockMetadataRepository) GetFolder(ctx context.Context, id string) (*entities.Folder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Folder), args.Error(1)
}

func (m *MockMetadataRepository) ListFolders(ctx context.Context, parentID *string) ([]*entities.Folder, error) {
	args := m.Called(ctx, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Folder), args.Error(1)
}

func (m *MockMetadataRepository) RenameFolder(ctx context.Context, id, name string) error {
	args := m.Called(ctx, id, name)
	return args.Error(0)
}

func (m *MockMetadataRepository) DeleteFolder(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMetadataRepository) InsertFile(ctx context.Context, file *entities.FileRecord) error {
	args := m.Called(ctx, file)
	return args.Error(0)
}

func (m *MockMetadataRepository) GetFile(ctx context.Context, id string) (*entities.FileRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.FileRecord), args.Error(1)
}

func (m *MockMetadataRepository) ListFilesInFolder(ctx context.Context, folderID *string) ([]*entities.FileRecord, error) {
	args := m.Called(ctx, folderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.FileRecord), args.Error(1)
}

func (m *MockMetadataRepository) ListFiles(ctx context.Context) ([]*entities.FileRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.FileRecord), args.Error(1)
}

func (m *MockMetadataRepository) RenameFile(ctx context.Context, id, originalName string) error {
	args := m.Called(ctx, id, originalName)
	return args.Error(0)
}

func (m *MockMetadataRepository) DeleteFile(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMetadataRepository) Stats(ctx context.Context) (*entities.NamespaceStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.NamespaceStats), args.Error(1)
}

func (m *MockMetadataRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockMetadataRepository) Close() error {
	args := m.Called()
	return args.Error(0)
}
