package catalogRepo

import (
	"context"

	"github.com/mbendary2019/Shoporia-sub001/models"
)

// ErrNotFound is returned when no service matches the lookup.
type ErrNotFound struct{}

func (ErrNotFound) Error() string { return "service not found" }

// Repository is the service-catalog store the scheduler reads availability
// templates and slot parameters from.
type Repository interface {
	Create(ctx context.Context, service *models.Service) error
	GetByID(ctx context.Context, id string) (*models.Service, error)
	ListByStore(ctx context.Context, storeID string) ([]models.Service, error)
	UpdateAvailability(ctx context.Context, id string, weekly models.WeeklyAvailability) error
	UpdateSlotParams(ctx context.Context, id string, duration, buffer, maxPerSlot int) error
	// Archive soft-archives the service; rows are never deleted while
	// bookings reference them.
	Archive(ctx context.Context, id string) error
}
