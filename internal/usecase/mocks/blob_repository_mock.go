package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

// MockBlobRepository is a mock implementation of BlobRepository
type MockBlobRepository struct {
	mock.Mock
}

func (m *MockBlobRepository) Store(ctx context.Context, reader io.Reader) (string, int64, error) {
	args := m.Called(ctx, reader)
	return args.String(0), args.Get(1).(int64), args.Error(2)
}

func (m *MockBlobRepository) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *MockBlobRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockBlobRepository) Exists(ctx context.Context, key string) bool {
	args := m.Called(ctx, key)
	return args.Bool(0)
}
