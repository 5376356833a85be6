// Package errors defines the error classes shared by every layer of the
// gateway. Domain errors wrap one of the sentinels below; the HTTP layer maps
// the class, never the concrete error, to a status code.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested object or record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates a request that fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates a missing or rejected bearer token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates an authenticated requester acting on an object it does not own.
	ErrForbidden = errors.New("forbidden")

	// ErrTooManyRequests indicates the requester exceeded its rate limit.
	ErrTooManyRequests = errors.New("too many requests")

	// ErrDecryptionFailed indicates input that did not authenticate. It is an
	// ErrInvalidInput whose wrapped causes never reach the client.
	ErrDecryptionFailed = Wrap(ErrInvalidInput, "decryption failed")
)

// New returns an error outside every class. It surfaces as an internal error.
func New(message string) error {
	return errors.New(message)
}

// Wrap prefixes err with message, keeping it matchable with Is. A nil err stays nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
