package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// AuditIndexes returns the index set for the audit collection. A positive
// ttl makes created_at a TTL index.
func AuditIndexes(ttl time.Duration) []mongo.IndexModel {
	createdAt := options.Index().SetName("created_at")
	if ttl > 0 {
		createdAt.SetExpireAfterSeconds(int32(ttl / time.Second))
	}

	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: 1}}, Options: createdAt},
		{Keys: bson.D{{Key: "action", Value: 1}, {Key: "created_at", Value: -1}}, Options: options.Index().SetName("action_created_at")},
		{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetName("user_id").SetSparse(true)},
		{Keys: bson.D{{Key: "request_id", Value: 1}}, Options: options.Index().SetName("request_id").SetSparse(true)},
	}
}

// EnsureAuditIndexes creates AuditIndexes on coll. Existing indexes with the
// same definition are left alone.
func EnsureAuditIndexes(ctx context.Context, coll *mongo.Collection, ttl time.Duration) error {
	if _, err := coll.Indexes().CreateMany(ctx, AuditIndexes(ttl)); err != nil {
		return errors.Join(ErrFailedToCreateIndexes, err)
	}
	return nil
}
