package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mbendary2019/Shoporia-sub001/database"
	"github.com/mbendary2019/Shoporia-sub001/models"
)

// MongoBookingRepo is the MongoDB-backed booking store. The calendar
// collection holds one version document per (serviceId, date); creators bump
// it inside the insert transaction so racing writes conflict instead of
// committing past each other.
type MongoBookingRepo struct {
	coll     *mongo.Collection
	calendar *mongo.Collection
}

// NewMongoBookingRepo returns a repository over the shared Mongo client.
func NewMongoBookingRepo() *MongoBookingRepo {
	return &MongoBookingRepo{
		coll:     database.DB().Collection("bookings"),
		calendar: database.DB().Collection("booking_calendar"),
	}
}

// GetByID retrieves a booking by its ID.
func (repo *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := repo.coll.FindOne(ctxWithTimeout, bson.M{"id": id}).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound{}
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching booking %s: %w", id, err)
	}
	return &booking, nil
}

// GetByNumber retrieves a booking by its human-facing booking number.
func (repo *MongoBookingRepo) GetByNumber(ctx context.Context, number string) (*models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := repo.coll.FindOne(ctxWithTimeout, bson.M{"bookingNumber": number}).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound{}
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching booking number %s: %w", number, err)
	}
	return &booking, nil
}

// GetByIdempotencyKey retrieves the booking created for a previously seen
// idempotency key.
func (repo *MongoBookingRepo) GetByIdempotencyKey(ctx context.Context, key string) (*models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := repo.coll.FindOne(ctxWithTimeout, bson.M{"idempotencyKey": key}).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound{}
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching booking by idempotency key: %w", err)
	}
	return &booking, nil
}

// UpdateStatus flips a booking's status only when the stored status still
// matches expected. A matched-count of zero means either the booking is gone
// or another actor got there first; the caller gets the distinction.
func (repo *MongoBookingRepo) UpdateStatus(ctx context.Context, id string, expected, next models.BookingStatus) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": expected}
	update := bson.M{"$set": bson.M{"status": next, "updatedAt": time.Now()}}

	res, err := repo.coll.UpdateOne(ctxWithTimeout, filter, update)
	if err != nil {
		return fmt.Errorf("error updating booking %s status: %w", id, err)
	}
	if res.MatchedCount == 0 {
		var current models.Booking
		err := repo.coll.FindOne(ctxWithTimeout, bson.M{"id": id}).Decode(&current)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound{}
		}
		if err != nil {
			return fmt.Errorf("error re-reading booking %s: %w", id, err)
		}
		return ErrStatusConflict{Actual: current.Status}
	}
	return nil
}

// UpdatePaymentStatus records what the payment collaborator reported back.
func (repo *MongoBookingRepo) UpdatePaymentStatus(ctx context.Context, id string, status models.PaymentStatus) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	update := bson.M{"$set": bson.M{"paymentStatus": status, "updatedAt": time.Now()}}

	res, err := repo.coll.UpdateOne(ctxWithTimeout, filter, update)
	if err != nil {
		return fmt.Errorf("error updating booking %s payment status: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound{}
	}
	return nil
}
