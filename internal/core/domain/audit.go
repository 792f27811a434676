package domain

import "time"

// Audit actions recorded for account lifecycle operations.
const (
	AuditSignup = "signup"
	AuditSignin = "signin"
	AuditLogout = "logout"
	AuditUpdate = "update"
	AuditDelete = "delete"
)

// AuditEvent is an append-only record of an account operation, persisted
// asynchronously by the audit dispatcher.
type AuditEvent struct {
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
	Action     string    `json:"action"`
	OccurredAt time.Time `json:"occurred_at"`
}
