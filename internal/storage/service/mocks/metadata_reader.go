// Package mocks provides mock implementations of storage service interfaces for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockMetadataReader is a mock implementation of service.MetadataReader.
type MockMetadataReader struct {
	mock.Mock
}

// ObjectMetadata mocks the ObjectMetadata method of MetadataReader.
func (m *MockMetadataReader) ObjectMetadata(ctx context.Context, key string) (map[string]string, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}
