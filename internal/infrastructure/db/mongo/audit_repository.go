package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/minishop/store-api/internal/core/domain"
)

const auditCollection = "audit_events"

type MongoAuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *MongoAuditRepository {
	return &MongoAuditRepository{coll: db.Collection(auditCollection)}
}

type mongoAuditEvent struct {
	UserID     string `bson:"user_id"`
	Email      string `bson:"email"`
	Action     string `bson:"action"`
	OccurredAt int64  `bson:"occurred_at"`
}

func (r *MongoAuditRepository) Insert(ctx context.Context, event domain.AuditEvent) error {
	_, err := r.coll.InsertOne(ctx, mongoAuditEvent{
		UserID:     event.UserID,
		Email:      event.Email,
		Action:     event.Action,
		OccurredAt: event.OccurredAt.Unix(),
	})
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}
