package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/forgeline/storefront-api/internal/core/domain"
)

const authEventCollection = "auth_events"

// MongoAuthEventRepository is an insert-only audit trail for auth activity.
type MongoAuthEventRepository struct {
	coll *mongo.Collection
}

func NewAuthEventRepository(db *mongo.Database) *MongoAuthEventRepository {
	return &MongoAuthEventRepository{coll: db.Collection(authEventCollection)}
}

type mongoAuthEvent struct {
	Kind       string `bson:"kind"`
	Subject    string `bson:"subject"`
	Reason     string `bson:"reason,omitempty"`
	RemoteAddr string `bson:"remote_addr,omitempty"`
	OccurredAt int64  `bson:"occurred_at"`
}

func (r *MongoAuthEventRepository) Insert(ctx context.Context, event domain.AuthEvent) error {
	doc := mongoAuthEvent{
		Kind:       string(event.Kind),
		Subject:    event.Subject,
		Reason:     event.Reason,
		RemoteAddr: event.RemoteAddr,
		OccurredAt: event.OccurredAt.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert auth event: %w", err)
	}
	return nil
}
