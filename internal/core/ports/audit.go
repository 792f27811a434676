package ports

import (
	"context"

	"github.com/minishop/store-api/internal/core/domain"
)

// AuditTrail accepts account events for asynchronous recording. Record must
// not block the request path beyond a bounded enqueue.
type AuditTrail interface {
	Record(event domain.AuditEvent)
}

// AuditRepository persists audit events.
type AuditRepository interface {
	Insert(ctx context.Context, event domain.AuditEvent) error
}
