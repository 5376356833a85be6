package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	storageDomain "github.com/Synnly/gestion-projet-m2-sub003/internal/storage/domain"
)

// MockProvider is a mock implementation of service.Provider.
type MockProvider struct {
	mock.Mock
}

// GenerateUploadGrant mocks the GenerateUploadGrant method of Provider.
func (m *MockProvider) GenerateUploadGrant(
	ctx context.Context,
	originalFilename string,
	purpose storageDomain.Purpose,
	requesterID string,
) (*storageDomain.UploadGrant, error) {
	args := m.Called(ctx, originalFilename, purpose, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storageDomain.UploadGrant), args.Error(1)
}

// GenerateDownloadGrant mocks the GenerateDownloadGrant method of Provider.
func (m *MockProvider) GenerateDownloadGrant(
	ctx context.Context,
	key, requesterID string,
) (*storageDomain.DownloadGrant, error) {
	args := m.Called(ctx, key, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storageDomain.DownloadGrant), args.Error(1)
}

// GeneratePublicDownloadGrant mocks the GeneratePublicDownloadGrant method of Provider.
func (m *MockProvider) GeneratePublicDownloadGrant(
	ctx context.Context,
	key string,
) (*storageDomain.DownloadGrant, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storageDomain.DownloadGrant), args.Error(1)
}

// DeleteObject mocks the DeleteObject method of Provider.
func (m *MockProvider) DeleteObject(ctx context.Context, key, requesterID string) error {
	args := m.Called(ctx, key, requesterID)
	return args.Error(0)
}

// ObjectExists mocks the ObjectExists method of Provider.
func (m *MockProvider) ObjectExists(ctx context.Context, key string) bool {
	args := m.Called(ctx, key)
	return args.Bool(0)
}

// ObjectMetadata mocks the ObjectMetadata method of Provider.
func (m *MockProvider) ObjectMetadata(ctx context.Context, key string) (map[string]string, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

// Ping mocks the Ping method of Provider.
func (m *MockProvider) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Close mocks the Close method of Provider.
func (m *MockProvider) Close() error {
	args := m.Called()
	return args.Error(0)
}
