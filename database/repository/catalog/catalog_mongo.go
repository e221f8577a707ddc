package catalogRepo

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

// MongoCatalogRepo is the MongoDB-backed service catalog store.
type MongoCatalogRepo struct {
	coll *mongo.Collection
}

// NewMongoCatalogRepo returns a repository over the shared Mongo client.
func NewMongoCatalogRepo() *MongoCatalogRepo {
	return &MongoCatalogRepo{coll: database.DB().Collection("services")}
}

// Create inserts a new service document.
func (repo *MongoCatalogRepo) Create(ctx context.Context, service *models.Service) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctxWithTimeout, service); err != nil {
		return fmt.Errorf("error creating service: %w", err)
	}
	return nil
}

// GetByID retrieves a service by its ID.
func (repo *MongoCatalogRepo) GetByID(ctx context.Context, id string) (*models.Service, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var service models.Service
	err := repo.coll.FindOne(ctxWithTimeout, bson.M{"id": id}).Decode(&service)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound{}
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching service %s: %w", id, err)
	}
	return &service, nil
}

// ListByStore returns a store's services, archived ones included so the
// dashboard can still show their booking history.
func (repo *MongoCatalogRepo) ListByStore(ctx context.Context, storeID string) ([]models.Service, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cur, err := repo.coll.Find(ctxWithTimeout, bson.M{"storeId": storeID})
	if err != nil {
		return nil, fmt.Errorf("service query failed: %w", err)
	}
	defer cur.Close(ctxWithTimeout)

	var services []models.Service
	if err := cur.All(ctxWithTimeout, &services); err != nil {
		return nil, fmt.Errorf("error decoding services: %w", err)
	}
	return services, nil
}

// UpdateAvailability replaces the weekly availability template.
func (repo *MongoCatalogRepo) UpdateAvailability(ctx context.Context, id string, weekly models.WeeklyAvailability) error {
	return repo.update(ctx, id, bson.M{"availability": weekly})
}

// UpdateSlotParams changes the slot geometry of a service. Existing bookings
// keep the duration they were created with.
func (repo *MongoCatalogRepo) UpdateSlotParams(ctx context.Context, id string, duration, buffer, maxPerSlot int) error {
	return repo.update(ctx, id, bson.M{
		"duration":           duration,
		"bufferTime":         buffer,
		"maxBookingsPerSlot": maxPerSlot,
	})
}

// Archive soft-archives a service so it stops offering slots.
func (repo *MongoCatalogRepo) Archive(ctx context.Context, id string) error {
	return repo.update(ctx, id, bson.M{"archived": true})
}

func (repo *MongoCatalogRepo) update(ctx context.Context, id string, fields bson.M) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	fields["updatedAt"] = time.Now()
	res, err := repo.coll.UpdateOne(ctxWithTimeout, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("error updating service %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound{}
	}
	return nil
}
