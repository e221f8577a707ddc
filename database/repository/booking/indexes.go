package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the booking collection's indexes. The unique sparse
// index on idempotencyKey is the durable backstop for client retries; the
// transactional insert handles slot contention.
func (repo *MongoBookingRepo) EnsureIndexes(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "bookingNumber", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "serviceId", Value: 1}, {Key: "date", Value: 1}, {Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "storeId", Value: 1}, {Key: "createdAt", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "customerId", Value: 1}, {Key: "createdAt", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "idempotencyKey", Value: 1}},
			Options: options.Index().SetUnique(true).SetPartialFilterExpression(
				bson.M{"idempotencyKey": bson.M{"$type": "string"}},
			),
		},
	}

	if _, err := repo.coll.Indexes().CreateMany(ctxWithTimeout, indexes); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}

	// One version document per service-day; the unique index keeps racing
	// upserts from seeding two of them.
	calendarIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "serviceId", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := repo.calendar.Indexes().CreateOne(ctxWithTimeout, calendarIndex); err != nil {
		return fmt.Errorf("failed to create calendar index: %w", err)
	}
	return nil
}
