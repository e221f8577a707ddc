package scheduling

import (
	"context"
	"time"

	bookingRepo "github.com/mbendary2019/Shoporia-sub001/database/repository/booking"
	"github.com/mbendary2019/Shoporia-sub001/models"
)

// CreateBookingRequest carries everything needed to place a booking. Times
// arrive already parsed to minutes; the HTTP layer owns "HH:MM" conversion.
type CreateBookingRequest struct {
	ServiceID      string
	CustomerID     string
	Date           string // "2006-01-02"
	Start          models.TimeOfDay
	End            models.TimeOfDay
	PaymentMethod  string
	PaymentToken   string // stored payment method reference, card payments only
	IdempotencyKey string // optional; replaying the same key returns the original booking
}

// PaymentHandler is the payment collaborator boundary.
type PaymentHandler interface {
	// Register records the payment intent for a new booking and reports the
	// initial payment status (card payments capture immediately, cash and
	// wallet stay pending until completion).
	Register(ctx context.Context, req models.PaymentRequest) (models.PaymentStatus, error)
	// Capture settles a still-pending payment when the service is delivered.
	Capture(ctx context.Context, bookingID string) (models.PaymentStatus, error)
	// MarkRefundEligible flags a captured payment after cancellation.
	MarkRefundEligible(ctx context.Context, bookingID string) error
}

// Notifier receives a status event on every transition. Delivery is entirely
// the collaborator's concern; the scheduler fires and forgets.
type Notifier interface {
	NotifyBookingStatus(ctx context.Context, event models.BookingStatusEvent) error
}

// ReminderScheduler queues an upcoming-appointment reminder. The
// implementation decides how far ahead of the appointment start it fires.
type ReminderScheduler interface {
	ScheduleReminder(payload models.ReminderPayload, startAt time.Time) error
}

// Service is the scheduler's public surface: slot discovery, guarded booking
// creation, lifecycle transitions and dashboard reads.
type Service interface {
	AvailableSlots(ctx context.Context, serviceID, date string) ([]models.Interval, error)
	CheckSlotAvailability(ctx context.Context, serviceID, date string, window models.Interval) (bool, error)
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*models.Booking, error)
	TransitionStatus(ctx context.Context, bookingID string, expected, next models.BookingStatus) (*models.Booking, error)
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	GetBookingByNumber(ctx context.Context, number string) (*models.Booking, error)
	CustomerBookings(ctx context.Context, customerID, cursor string, limit int) (*bookingRepo.Page, error)
	StoreBookings(ctx context.Context, storeID, cursor string, limit int) (*bookingRepo.Page, error)
	StoreStats(ctx context.Context, storeID string) (*models.StoreStats, error)
}
