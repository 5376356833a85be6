package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog records an access decision taken by the storage gateway.
// Captures the requester, the object key, the action and its outcome.
// Used to investigate ownership disputes and access patterns.
type AuditLog struct {
	ID          uuid.UUID
	RequestID   string
	RequesterID string
	Action      Action
	ObjectKey   string
	Outcome     Outcome
	Metadata    map[string]any
	CreatedAt   time.Time
}
