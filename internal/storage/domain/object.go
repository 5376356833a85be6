package domain

import (
	"net/http"
	"time"
)

// Grant expiry policy. These are not negotiable per call.
const (
	UploadGrantExpiry   = 600 * time.Second
	DownloadGrantExpiry = 3600 * time.Second
)

const (
	// OwnerMetadataKey is the user-metadata key recording the uploader.
	OwnerMetadataKey = "uploaderid"

	// OwnerHeader is the header that stores OwnerMetadataKey on an S3-compatible PUT.
	OwnerHeader = "x-amz-meta-" + OwnerMetadataKey

	// GCSOwnerHeader is the header that stores OwnerMetadataKey on a Cloud Storage PUT.
	GCSOwnerHeader = "x-goog-meta-" + OwnerMetadataKey
)

// UploadGrant is a short-lived capability to PUT one object.
//
// Headers lists the headers the client must send with the PUT. They are part
// of the signature where the backend supports signed headers.
type UploadGrant struct {
	Key       string
	UploadURL string
	Method    string
	Headers   http.Header
	ExpiresAt time.Time
}

// DownloadGrant is a short-lived capability to GET one object.
type DownloadGrant struct {
	Key         string
	DownloadURL string
	ExpiresAt   time.Time
}

// OwnerFromMetadata returns the recorded uploader.
//
// Stores differ in how they case user-metadata keys (minio canonicalizes to
// "Uploaderid", gocloud lower-cases to "uploaderid"); both spellings are
// accepted. An empty value counts as absent.
func OwnerFromMetadata(metadata map[string]string) (string, bool) {
	for _, k := range []string{OwnerMetadataKey, "Uploaderid"} {
		if v, ok := metadata[k]; ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// CheckOwner enforces the ownership policy for requesterID.
//
// Objects without owner metadata predate ownership tracking and stay
// accessible to any authenticated requester. Comparison is case-sensitive.
func CheckOwner(metadata map[string]string, requesterID string) error {
	owner, ok := OwnerFromMetadata(metadata)
	if !ok {
		return nil
	}
	if owner != requesterID {
		return ErrNotOwner
	}
	return nil
}
