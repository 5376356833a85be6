// Package mocks provides mock implementations of crypto use cases for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	cryptoDomain "github.com/Synnly/gestion-projet-m2-sub003/internal/crypto/domain"
)

// MockEnvelopeUseCase is a mock implementation of usecase.EnvelopeUseCase.
type MockEnvelopeUseCase struct {
	mock.Mock
}

// Encrypt mocks the Encrypt method of EnvelopeUseCase.
func (m *MockEnvelopeUseCase) Encrypt(
	ctx context.Context,
	plaintext []byte,
) (*cryptoDomain.EncryptedPayload, error) {
	args := m.Called(ctx, plaintext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.EncryptedPayload), args.Error(1)
}

// Decrypt mocks the Decrypt method of EnvelopeUseCase.
func (m *MockEnvelopeUseCase) Decrypt(
	ctx context.Context,
	payload *cryptoDomain.EncryptedPayload,
) ([]byte, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Enabled mocks the Enabled method of EnvelopeUseCase.
func (m *MockEnvelopeUseCase) Enabled(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}
