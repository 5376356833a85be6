package usecase

import (
	"context"
	"time"

	cryptoDomain "github.com/Synnly/gestion-projet-m2-sub003/internal/crypto/domain"
	"github.com/Synnly/gestion-projet-m2-sub003/internal/metrics"
)

// envelopeUseCaseWithMetrics decorates EnvelopeUseCase with metrics instrumentation.
type envelopeUseCaseWithMetrics struct {
	next    EnvelopeUseCase
	metrics metrics.BusinessMetrics
}

// NewEnvelopeUseCaseWithMetrics wraps an EnvelopeUseCase with metrics recording.
func NewEnvelopeUseCaseWithMetrics(useCase EnvelopeUseCase, m metrics.BusinessMetrics) EnvelopeUseCase {
	return &envelopeUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Encrypt records metrics for envelope encryption.
func (e *envelopeUseCaseWithMetrics) Encrypt(
	ctx context.Context,
	plaintext []byte,
) (*cryptoDomain.EncryptedPayload, error) {
	start := time.Now()
	payload, err := e.next.Encrypt(ctx, plaintext)
	e.record(ctx, "envelope_encrypt", start, err)
	return payload, err
}

// Decrypt records metrics for envelope decryption.
func (e *envelopeUseCaseWithMetrics) Decrypt(
	ctx context.Context,
	payload *cryptoDomain.EncryptedPayload,
) ([]byte, error) {
	start := time.Now()
	plaintext, err := e.next.Decrypt(ctx, payload)
	e.record(ctx, "envelope_decrypt", start, err)
	return plaintext, err
}

// Enabled is not instrumented.
func (e *envelopeUseCaseWithMetrics) Enabled(ctx context.Context) bool {
	return e.next.Enabled(ctx)
}

func (e *envelopeUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	e.metrics.RecordOperation(ctx, "crypto", operation, status)
	e.metrics.RecordDuration(ctx, "crypto", operation, time.Since(start), status)
}
