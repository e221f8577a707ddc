package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	catalogRepo "github.com/mbendary2019/Shoporia-sub001/database/repository/catalog"
	"github.com/mbendary2019/Shoporia-sub001/models"
	"github.com/mbendary2019/Shoporia-sub001/utils"
)

// ServiceInUseError rejects archiving a service that active bookings still
// reference; the service is soft-archived only once its calendar drains.
type ServiceInUseError struct {
	ServiceID      string
	ActiveBookings int64
}

func (e *ServiceInUseError) Error() string {
	return fmt.Sprintf("service %s still has %d active bookings", e.ServiceID, e.ActiveBookings)
}

// CatalogService manages the bookable services a store publishes.
type CatalogService interface {
	CreateService(ctx context.Context, service *models.Service) (*models.Service, error)
	GetService(ctx context.Context, id string) (*models.Service, error)
	ListStoreServices(ctx context.Context, storeID string) ([]models.Service, error)
	ReplaceAvailability(ctx context.Context, id string, weekly models.WeeklyAvailability) error
	UpdateSlotParams(ctx context.Context, id string, duration, buffer, maxPerSlot int) error
	ArchiveService(ctx context.Context, id string) error
}

// ActiveBookingCounter is the slice of the booking repository the catalog
// needs: how many live bookings still reference a service.
type ActiveBookingCounter interface {
	CountActiveByService(ctx context.Context, serviceID string) (int64, error)
}

// DefaultCatalogService implements CatalogService.
type DefaultCatalogService struct {
	Repo     catalogRepo.Repository
	Bookings ActiveBookingCounter
}

// CreateService validates and persists a new service.
func (svc *DefaultCatalogService) CreateService(ctx context.Context, service *models.Service) (*models.Service, error) {
	if service.StoreID == "" {
		return nil, fmt.Errorf("storeId is required")
	}
	if service.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if service.Duration <= 0 {
		return nil, fmt.Errorf("duration must be positive")
	}
	if service.BufferTime < 0 {
		return nil, fmt.Errorf("bufferTime must not be negative")
	}
	if service.MaxBookingsPerSlot == 0 {
		service.MaxBookingsPerSlot = 1
	}
	if service.MaxBookingsPerSlot < 1 {
		return nil, fmt.Errorf("maxBookingsPerSlot must be at least 1")
	}
	if err := service.Availability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid availability: %w", err)
	}

	now := time.Now()
	service.ID = uuid.New().String()
	service.Archived = false
	service.CreatedAt = now
	service.UpdatedAt = now

	if err := svc.Repo.Create(ctx, service); err != nil {
		return nil, err
	}

	utils.GetLogger().Info("service created",
		zap.String("serviceId", service.ID),
		zap.String("storeId", service.StoreID))
	return service, nil
}

// GetService fetches one service.
func (svc *DefaultCatalogService) GetService(ctx context.Context, id string) (*models.Service, error) {
	return svc.Repo.GetByID(ctx, id)
}

// ListStoreServices lists a store's services.
func (svc *DefaultCatalogService) ListStoreServices(ctx context.Context, storeID string) ([]models.Service, error) {
	return svc.Repo.ListByStore(ctx, storeID)
}

// ReplaceAvailability swaps in a new weekly template after validating it.
// Already-created bookings are untouched; they were checked against the
// template in force when they were placed.
func (svc *DefaultCatalogService) ReplaceAvailability(ctx context.Context, id string, weekly models.WeeklyAvailability) error {
	if err := weekly.Validate(); err != nil {
		return fmt.Errorf("invalid availability: %w", err)
	}
	return svc.Repo.UpdateAvailability(ctx, id, weekly)
}

// UpdateSlotParams changes duration, buffer and per-slot capacity.
func (svc *DefaultCatalogService) UpdateSlotParams(ctx context.Context, id string, duration, buffer, maxPerSlot int) error {
	if duration <= 0 {
		return fmt.Errorf("duration must be positive")
	}
	if buffer < 0 {
		return fmt.Errorf("bufferTime must not be negative")
	}
	if maxPerSlot < 1 {
		return fmt.Errorf("maxBookingsPerSlot must be at least 1")
	}
	return svc.Repo.UpdateSlotParams(ctx, id, duration, buffer, maxPerSlot)
}

// ArchiveService soft-archives a service once no active bookings reference it.
func (svc *DefaultCatalogService) ArchiveService(ctx context.Context, id string) error {
	if _, err := svc.Repo.GetByID(ctx, id); err != nil {
		return err
	}
	active, err := svc.Bookings.CountActiveByService(ctx, id)
	if err != nil {
		return err
	}
	if active > 0 {
		return &ServiceInUseError{ServiceID: id, ActiveBookings: active}
	}
	return svc.Repo.Archive(ctx, id)
}
