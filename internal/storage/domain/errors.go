package domain

import (
	"github.com/Synnly/gestion-projet-m2-sub003/internal/errors"
)

// Storage error definitions.
//
// Validation, authorization and not-found errors wrap the standard errors from
// internal/errors so handlers map them to 422, 403 and 404. Transport failures
// are plain errors and surface as 500 without exposing store-specific text.
var (
	// ErrEmptyKey indicates no storage key was supplied.
	ErrEmptyKey = errors.Wrap(errors.ErrInvalidInput, "storage key is required")

	// ErrUnsafeKey indicates a key containing "..", a leading "/" or a backslash.
	ErrUnsafeKey = errors.Wrap(errors.ErrInvalidInput, "storage key is not allowed")

	// ErrMissingRequester indicates the requester identity is empty.
	ErrMissingRequester = errors.Wrap(errors.ErrInvalidInput, "requester id is required")

	// ErrInvalidPurpose indicates an unknown upload purpose.
	ErrInvalidPurpose = errors.Wrap(errors.ErrInvalidInput, "unknown upload purpose")

	// ErrUnsupportedExtension indicates a filename extension outside the purpose's allow-list.
	ErrUnsupportedExtension = errors.Wrap(errors.ErrInvalidInput, "file extension is not allowed for this purpose")

	// ErrObjectNotFound indicates the object is absent or could not be looked up.
	ErrObjectNotFound = errors.Wrap(errors.ErrNotFound, "object not found")

	// ErrNotOwner indicates the recorded owner differs from the requester.
	ErrNotOwner = errors.Wrap(errors.ErrForbidden, "you do not have permission to access this object")

	// ErrUploadGrantFailed indicates the store could not mint an upload URL.
	ErrUploadGrantFailed = errors.New("failed to generate upload grant")

	// ErrDownloadGrantFailed indicates the store could not mint a download URL.
	ErrDownloadGrantFailed = errors.New("failed to generate download grant")

	// ErrDeleteFailed indicates the store rejected a remove call.
	ErrDeleteFailed = errors.New("failed to delete object")

	// ErrOwnershipCheckFailed indicates owner metadata could not be read by the ownership guard.
	ErrOwnershipCheckFailed = errors.New("failed to verify object ownership")
)
