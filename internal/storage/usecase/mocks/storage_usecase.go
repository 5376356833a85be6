// Package mocks provides mock implementations of storage use cases for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	authDomain "github.com/Synnly/gestion-projet-m2-sub003/internal/auth/domain"
	storageDomain "github.com/Synnly/gestion-projet-m2-sub003/internal/storage/domain"
)

// MockStorageUseCase is a mock implementation of usecase.StorageUseCase.
type MockStorageUseCase struct {
	mock.Mock
}

// RequestUpload mocks the RequestUpload method of StorageUseCase.
func (m *MockStorageUseCase) RequestUpload(
	ctx context.Context,
	principal *authDomain.Principal,
	filename string,
	purpose storageDomain.Purpose,
) (*storageDomain.UploadGrant, error) {
	args := m.Called(ctx, principal, filename, purpose)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storageDomain.UploadGrant), args.Error(1)
}

// RequestDownload mocks the RequestDownload method of StorageUseCase.
func (m *MockStorageUseCase) RequestDownload(
	ctx context.Context,
	principal *authDomain.Principal,
	key string,
) (*storageDomain.DownloadGrant, error) {
	args := m.Called(ctx, principal, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storageDomain.DownloadGrant), args.Error(1)
}

// RequestPublicDownload mocks the RequestPublicDownload method of StorageUseCase.
func (m *MockStorageUseCase) RequestPublicDownload(
	ctx context.Context,
	key string,
) (*storageDomain.DownloadGrant, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storageDomain.DownloadGrant), args.Error(1)
}

// RequestModeratedDownload mocks the RequestModeratedDownload method of StorageUseCase.
func (m *MockStorageUseCase) RequestModeratedDownload(
	ctx context.Context,
	principal *authDomain.Principal,
	key string,
) (*storageDomain.DownloadGrant, error) {
	args := m.Called(ctx, principal, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storageDomain.DownloadGrant), args.Error(1)
}

// Delete mocks the Delete method of StorageUseCase.
func (m *MockStorageUseCase) Delete(ctx context.Context, principal *authDomain.Principal, key string) error {
	args := m.Called(ctx, principal, key)
	return args.Error(0)
}

// Exists mocks the Exists method of StorageUseCase.
func (m *MockStorageUseCase) Exists(
	ctx context.Context,
	principal *authDomain.Principal,
	key string,
) (bool, error) {
	args := m.Called(ctx, principal, key)
	return args.Bool(0), args.Error(1)
}

// Ready mocks the Ready method of StorageUseCase.
func (m *MockStorageUseCase) Ready(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
