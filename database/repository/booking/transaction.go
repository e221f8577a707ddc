package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mbendary2019/Shoporia-sub001/models"
)

// activeStatuses are the statuses that still block calendar time.
var activeStatuses = bson.A{
	models.StatusPending,
	models.StatusConfirmed,
	models.StatusInProgress,
	models.StatusCompleted,
}

// overlapFilter matches active bookings for (serviceId, date) whose half-open
// window intersects [start, end). Touching endpoints do not match.
func overlapFilter(serviceID, date string, window models.Interval) bson.M {
	return bson.M{
		"serviceId": serviceID,
		"date":      date,
		"status":    bson.M{"$in": activeStatuses},
		"start":     bson.M{"$lt": window.End},
		"end":       bson.M{"$gt": window.Start},
	}
}

// calendarDayFilter identifies the version document for one service-day.
func calendarDayFilter(serviceID, date string) bson.M {
	return bson.M{"serviceId": serviceID, "date": date}
}

// calendarDayBump is the update every creator applies to the service-day
// version document.
var calendarDayBump = bson.M{"$inc": bson.M{"version": 1}}

// CreateIfSlotFree inserts the booking inside a Mongo session transaction.
// Snapshot isolation alone would let two racing creators insert distinct
// documents without seeing each other, so the transaction first bumps a
// shared version document for (serviceId, date). Both racers write that same
// document, Mongo aborts one with a write conflict, and the retried
// transaction re-runs the overlap count against the winner's committed
// booking and fails with ErrSlotTaken. A duplicate idempotency key surfaces
// as ErrDuplicateKey so the caller can replay the original booking.
func (repo *MongoBookingRepo) CreateIfSlotFree(ctx context.Context, booking *models.Booking, capacity int) error {
	if capacity < 1 {
		capacity = 1
	}

	client := repo.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	txnFn := func(sc mongo.SessionContext) (interface{}, error) {
		// Serialization point: every creator for this service-day writes the
		// same document, so concurrent transactions conflict here instead of
		// committing blind inserts.
		_, err := repo.calendar.UpdateOne(sc,
			calendarDayFilter(booking.ServiceID, booking.Date),
			calendarDayBump,
			options.Update().SetUpsert(true))
		if err != nil {
			return nil, fmt.Errorf("calendar day bump failed: %w", err)
		}

		count, err := repo.coll.CountDocuments(sc, overlapFilter(booking.ServiceID, booking.Date, booking.Window()))
		if err != nil {
			return nil, fmt.Errorf("overlap count failed: %w", err)
		}
		if count >= int64(capacity) {
			return nil, ErrSlotTaken{}
		}
		if _, err := repo.coll.InsertOne(sc, booking); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, ErrDuplicateKey{}
			}
			return nil, fmt.Errorf("insert booking failed: %w", err)
		}
		return nil, nil
	}

	if _, err := sess.WithTransaction(ctxWithTimeout, txnFn); err != nil {
		return err
	}
	return nil
}
