// Package domain defines the identity and access-audit models shared by the gateway.
package domain

// Role is the authorization role carried in a bearer token.
type Role string

const (
	// RoleUser is an ordinary requester. Ownership checks apply.
	RoleUser Role = "user"

	// RoleAdmin bypasses the ownership guard.
	RoleAdmin Role = "admin"
)

// Action names a storage operation recorded in the access audit log.
type Action string

const (
	ActionUploadGrant            Action = "upload_grant"
	ActionDownloadGrant          Action = "download_grant"
	ActionPublicDownloadGrant    Action = "public_download_grant"
	ActionModeratedDownloadGrant Action = "moderated_download_grant"
	ActionDelete                 Action = "delete"
	ActionExists                 Action = "exists"
)

// Outcome is the decision recorded for an audited action.
type Outcome string

const (
	OutcomeGranted  Outcome = "granted"
	OutcomeDenied   Outcome = "denied"
	OutcomeNotFound Outcome = "not_found"
	OutcomeInvalid  Outcome = "invalid"
	OutcomeFailed   Outcome = "failed"
)
