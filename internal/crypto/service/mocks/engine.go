// Package mocks provides mock implementations of crypto service interfaces for testing.
package mocks

import (
	"github.com/stretchr/testify/mock"

	cryptoDomain "github.com/Synnly/gestion-projet-m2-sub003/internal/crypto/domain"
)

// MockEngine is a mock implementation of service.Engine.
type MockEngine struct {
	mock.Mock
}

// Encrypt mocks the Encrypt method of Engine.
func (m *MockEngine) Encrypt(plaintext []byte) ([]byte, *cryptoDomain.EnvelopeMetadata, error) {
	args := m.Called(plaintext)
	if args.Get(1) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]byte), args.Get(1).(*cryptoDomain.EnvelopeMetadata), args.Error(2)
}

// Decrypt mocks the Decrypt method of Engine.
func (m *MockEngine) Decrypt(ciphertext []byte, metadata *cryptoDomain.EnvelopeMetadata) ([]byte, error) {
	args := m.Called(ciphertext, metadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// RotateMasterKey mocks the RotateMasterKey method of Engine.
func (m *MockEngine) RotateMasterKey(newKey []byte) error {
	args := m.Called(newKey)
	return args.Error(0)
}

// IsEnabled mocks the IsEnabled method of Engine.
func (m *MockEngine) IsEnabled() bool {
	args := m.Called()
	return args.Bool(0)
}
