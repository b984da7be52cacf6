package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/emsapp/employee-records/internal/core/ports"
)

const auditCollection = "audit_log"

// AuditRepository persists audit entries to the audit_log collection.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type mongoAuditEntry struct {
	Action   string `bson:"action"`
	EntityID string `bson:"entity_id,omitempty"`
	Username string `bson:"username"`
	At       int64  `bson:"at"`
	Success  bool   `bson:"success"`
	Error    string `bson:"error,omitempty"`
}

func (r *AuditRepository) Insert(ctx context.Context, entry ports.AuditEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoAuditEntry{
		Action:   entry.Action,
		EntityID: entry.EntityID,
		Username: entry.Username,
		At:       entry.At.Unix(),
		Success:  entry.Success,
		Error:    entry.Error,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}
