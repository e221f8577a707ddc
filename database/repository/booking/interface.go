package bookingRepo

import (
	"context"

	"github.com/mbendary2019/Shoporia-sub001/models"
)

// ErrSlotTaken is returned by CreateIfSlotFree when the transactional
// re-check finds the window already at capacity.
type ErrSlotTaken struct{}

func (ErrSlotTaken) Error() string { return "slot capacity exhausted" }

// ErrStatusConflict is returned by UpdateStatus when the optimistic guard on
// the expected current status does not match the stored document.
type ErrStatusConflict struct {
	Actual models.BookingStatus
}

func (e ErrStatusConflict) Error() string {
	return "booking status changed concurrently, found " + string(e.Actual)
}

// ErrDuplicateKey is returned by CreateIfSlotFree when the insert trips a
// unique index, which in practice means a concurrent request already
// committed a booking for the same idempotency key. Callers should re-read
// by that key and hand back the original booking.
type ErrDuplicateKey struct{}

func (ErrDuplicateKey) Error() string { return "booking already exists" }

// ErrNotFound is returned when no booking matches the lookup.
type ErrNotFound struct{}

func (ErrNotFound) Error() string { return "booking not found" }

// Page is one cursor-paginated result set.
type Page struct {
	Bookings   []models.Booking `json:"bookings"`
	NextCursor string           `json:"nextCursor,omitempty"`
}

// Repository is the durable store for bookings. Creation serializes the
// check-then-act against concurrent writers; everything else is plain reads
// and guarded single-document updates.
type Repository interface {
	// CreateIfSlotFree inserts the booking inside a transaction that first
	// re-counts overlapping active bookings for (serviceId, date). If the
	// count has reached capacity the insert is abandoned and ErrSlotTaken is
	// returned; two racing writers can never both commit.
	CreateIfSlotFree(ctx context.Context, booking *models.Booking, capacity int) error

	GetByID(ctx context.Context, id string) (*models.Booking, error)
	GetByNumber(ctx context.Context, number string) (*models.Booking, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*models.Booking, error)

	// ActiveByServiceDate returns the active bookings blocking slots for a
	// service on one date.
	ActiveByServiceDate(ctx context.Context, serviceID, date string) ([]models.Booking, error)

	QueryByCustomer(ctx context.Context, customerID, cursor string, limit int) (*Page, error)
	QueryByStore(ctx context.Context, storeID, cursor string, limit int) (*Page, error)
	QueryByServiceDate(ctx context.Context, serviceID, date string) ([]models.Booking, error)

	// AllByStore streams the full booking set of a store for aggregation.
	AllByStore(ctx context.Context, storeID string) ([]models.Booking, error)

	// CountActiveByService reports how many active bookings still reference a
	// service; used to refuse archiving a service in use.
	CountActiveByService(ctx context.Context, serviceID string) (int64, error)

	// UpdateStatus flips the status only when the stored document still holds
	// the expected one (update where id=X and status=expected). A mismatch
	// surfaces ErrStatusConflict, never a silent overwrite.
	UpdateStatus(ctx context.Context, id string, expected, next models.BookingStatus) error

	UpdatePaymentStatus(ctx context.Context, id string, status models.PaymentStatus) error
}
