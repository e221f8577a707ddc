package bookingRepo

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mbendary2019/Shoporia-sub001/models"
)

const defaultPageSize = 20

// encodeCursor packs the keyset position (createdAt, id) of the last row.
func encodeCursor(b *models.Booking) string {
	raw := b.CreatedAt.UTC().Format(time.RFC3339Nano) + "|" + b.ID
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

func decodeCursor(cursor string) (time.Time, string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("malformed cursor")
	}
	parts := strings.SplitN(string(raw), "|", 2)
	if len(parts) != 2 {
		return time.Time{}, "", fmt.Errorf("malformed cursor")
	}
	ts, err := time.Parse(time.RFC3339Nano, parts[0])
	if err != nil {
		return time.Time{}, "", fmt.Errorf("malformed cursor")
	}
	return ts, parts[1], nil
}

// pageQuery runs one keyset-paginated page over the given base filter,
// newest bookings first.
func (repo *MongoBookingRepo) pageQuery(ctx context.Context, filter bson.M, cursor string, limit int) (*Page, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultPageSize
	}
	if cursor != "" {
		ts, id, err := decodeCursor(cursor)
		if err != nil {
			return nil, err
		}
		filter["$or"] = bson.A{
			bson.M{"createdAt": bson.M{"$lt": ts}},
			bson.M{"createdAt": ts, "id": bson.M{"$lt": id}},
		}
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "id", Value: -1}}).
		SetLimit(int64(limit) + 1)

	cur, err := repo.coll.Find(ctxWithTimeout, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("booking query failed: %w", err)
	}
	defer cur.Close(ctxWithTimeout)

	var bookings []models.Booking
	if err := cur.All(ctxWithTimeout, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}

	page := &Page{}
	if len(bookings) > limit {
		bookings = bookings[:limit]
		page.NextCursor = encodeCursor(&bookings[limit-1])
	}
	page.Bookings = bookings
	return page, nil
}

// QueryByCustomer pages a customer's bookings, newest first.
func (repo *MongoBookingRepo) QueryByCustomer(ctx context.Context, customerID, cursor string, limit int) (*Page, error) {
	return repo.pageQuery(ctx, bson.M{"customerId": customerID}, cursor, limit)
}

// QueryByStore pages a store's bookings, newest first.
func (repo *MongoBookingRepo) QueryByStore(ctx context.Context, storeID, cursor string, limit int) (*Page, error) {
	return repo.pageQuery(ctx, bson.M{"storeId": storeID}, cursor, limit)
}

// QueryByServiceDate returns every booking for a service on one date,
// regardless of status.
func (repo *MongoBookingRepo) QueryByServiceDate(ctx context.Context, serviceID, date string) ([]models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cur, err := repo.coll.Find(ctxWithTimeout, bson.M{"serviceId": serviceID, "date": date})
	if err != nil {
		return nil, fmt.Errorf("booking query failed: %w", err)
	}
	defer cur.Close(ctxWithTimeout)

	var bookings []models.Booking
	if err := cur.All(ctxWithTimeout, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}

// ActiveByServiceDate returns the bookings still blocking slots for a service
// on one date.
func (repo *MongoBookingRepo) ActiveByServiceDate(ctx context.Context, serviceID, date string) ([]models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"serviceId": serviceID,
		"date":      date,
		"status":    bson.M{"$in": activeStatuses},
	}
	cur, err := repo.coll.Find(ctxWithTimeout, filter)
	if err != nil {
		return nil, fmt.Errorf("active booking query failed: %w", err)
	}
	defer cur.Close(ctxWithTimeout)

	var bookings []models.Booking
	if err := cur.All(ctxWithTimeout, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}

// AllByStore fetches the full booking set of a store for aggregation.
func (repo *MongoBookingRepo) AllByStore(ctx context.Context, storeID string) ([]models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	cur, err := repo.coll.Find(ctxWithTimeout, bson.M{"storeId": storeID})
	if err != nil {
		return nil, fmt.Errorf("store booking scan failed: %w", err)
	}
	defer cur.Close(ctxWithTimeout)

	var bookings []models.Booking
	if err := cur.All(ctxWithTimeout, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}

// CountActiveByService counts active bookings still referencing a service.
func (repo *MongoBookingRepo) CountActiveByService(ctx context.Context, serviceID string) (int64, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"serviceId": serviceID,
		"status":    bson.M{"$in": bson.A{models.StatusPending, models.StatusConfirmed, models.StatusInProgress}},
	}
	count, err := repo.coll.CountDocuments(ctxWithTimeout, filter)
	if err != nil {
		return 0, fmt.Errorf("active booking count failed: %w", err)
	}
	return count, nil
}
