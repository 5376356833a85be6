package dto

import (
	"time"

	storageDomain "github.com/Synnly/gestion-projet-m2-sub003/internal/storage/domain"
)

// UploadGrantResponse represents an upload grant in API responses.
// Headers must be sent verbatim with the PUT.
type UploadGrantResponse struct {
	Key       string            `json:"key"`
	UploadURL string            `json:"upload_url"`
	Method    string            `json:"method"`
	Headers   map[string]string `json:"headers,omitempty"`
	ExpiresAt time.Time         `json:"expires_at"`
}

// DownloadGrantResponse represents a download grant in API responses.
type DownloadGrantResponse struct {
	Key         string    `json:"key"`
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// MapUploadGrantToResponse converts a domain upload grant to an API response.
func MapUploadGrantToResponse(grant *storageDomain.UploadGrant) UploadGrantResponse {
	var headers map[string]string
	if len(grant.Headers) > 0 {
		headers = make(map[string]string, len(grant.Headers))
		for name := range grant.Headers {
			headers[name] = grant.Headers.Get(name)
		}
	}

	return UploadGrantResponse{
		Key:       grant.Key,
		UploadURL: grant.UploadURL,
		Method:    grant.Method,
		Headers:   headers,
		ExpiresAt: grant.ExpiresAt,
	}
}

// MapDownloadGrantToResponse converts a domain download grant to an API response.
func MapDownloadGrantToResponse(grant *storageDomain.DownloadGrant) DownloadGrantResponse {
	return DownloadGrantResponse{
		Key:         grant.Key,
		DownloadURL: grant.DownloadURL,
		ExpiresAt:   grant.ExpiresAt,
	}
}
