package audit

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoCollection is the subset of *mongo.Collection used by MongoStorage.
type MongoCollection interface {
	InsertMany(ctx context.Context, documents any, opts ...options.Lister[options.InsertManyOptions]) (*mongo.InsertManyResult, error)
}

// MongoStorage inserts events into a collection, one document per event
// keyed by event id.
type MongoStorage struct {
	coll MongoCollection
}

// NewMongoStorage panics on a nil collection.
func NewMongoStorage(coll MongoCollection) *MongoStorage {
	if coll == nil {
		panic(ErrNilStorage)
	}
	return &MongoStorage{coll: coll}
}

// Store writes events unordered so one duplicate id does not drop the rest
// of the batch.
func (s *MongoStorage) Store(ctx context.Context, events ...Event) error {
	if len(events) == 0 {
		return nil
	}

	docs := make([]any, len(events))
	for i := range events {
		docs[i] = events[i]
	}

	if _, err := s.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false)); err != nil {
		return fmt.Errorf("%w: insert %d events: %w", ErrStorageNotAvailable, len(events), err)
	}
	return nil
}
