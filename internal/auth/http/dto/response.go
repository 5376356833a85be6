// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	authDomain "github.com/Synnly/gestion-projet-m2-sub003/internal/auth/domain"
)

// AuditLogResponse represents an audit log entry in API responses.
type AuditLogResponse struct {
	ID          string         `json:"id"`
	RequestID   string         `json:"request_id"`
	RequesterID string         `json:"requester_id"`
	Action      string         `json:"action"`
	ObjectKey   string         `json:"object_key"`
	Outcome     string         `json:"outcome"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// MapAuditLogToResponse converts a domain audit log to an API response.
func MapAuditLogToResponse(auditLog *authDomain.AuditLog) AuditLogResponse {
	return AuditLogResponse{
		ID:          auditLog.ID.String(),
		RequestID:   auditLog.RequestID,
		RequesterID: auditLog.RequesterID,
		Action:      string(auditLog.Action),
		ObjectKey:   auditLog.ObjectKey,
		Outcome:     string(auditLog.Outcome),
		Metadata:    auditLog.Metadata,
		CreatedAt:   auditLog.CreatedAt,
	}
}

// ListAuditLogsResponse represents a paginated list of audit logs in API responses.
type ListAuditLogsResponse struct {
	Data []AuditLogResponse `json:"data"`
}

// MapAuditLogsToListResponse converts a slice of domain audit logs to a list API response.
func MapAuditLogsToListResponse(auditLogs []*authDomain.AuditLog) ListAuditLogsResponse {
	auditLogResponses := make([]AuditLogResponse, 0, len(auditLogs))
	for _, auditLog := range auditLogs {
		auditLogResponses = append(auditLogResponses, MapAuditLogToResponse(auditLog))
	}
	return ListAuditLogsResponse{
		Data: auditLogResponses,
	}
}
