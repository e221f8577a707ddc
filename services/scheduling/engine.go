package scheduling

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	bookingRepo "github.com/mbendary2019/Shoporia-sub001/database/repository/booking"
	catalogRepo "github.com/mbendary2019/Shoporia-sub001/database/repository/catalog"
	"github.com/mbendary2019/Shoporia-sub001/models"
	"github.com/mbendary2019/Shoporia-sub001/utils"
)

const dateLayout = "2006-01-02"

// DefaultSchedulingEngine is the production scheduler.
type DefaultSchedulingEngine struct {
	Repo      bookingRepo.Repository
	Catalog   catalogRepo.Repository
	Payments  PaymentHandler
	Notifier  Notifier
	Reminders ReminderScheduler // optional
	IdemCache *redis.Client     // optional fast path for idempotency lookups
}

// service resolves the catalog entry, mapping a repository miss to the
// scheduler's NotFoundError.
func (se *DefaultSchedulingEngine) service(ctx context.Context, serviceID string) (*models.Service, error) {
	svc, err := se.Catalog.GetByID(ctx, serviceID)
	if err != nil {
		var nf catalogRepo.ErrNotFound
		if errors.As(err, &nf) {
			return nil, &NotFoundError{Kind: "service", ID: serviceID}
		}
		return nil, err
	}
	return svc, nil
}

// AvailableSlots lists the bookable windows of a service on one date: weekly
// template resolved to the day, slots generated, then filtered against the
// active bookings already on the calendar. Read-only; safe to run in parallel
// with any number of other callers.
func (se *DefaultSchedulingEngine) AvailableSlots(ctx context.Context, serviceID, date string) ([]models.Interval, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, NewValidationError("date", "expected YYYY-MM-DD")
	}

	svc, err := se.service(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if svc.Archived {
		return nil, nil
	}

	candidates := GenerateSlots(DayAvailabilityFor(svc.Availability, day), svc.Duration, svc.BufferTime)
	if len(candidates) == 0 {
		return nil, nil
	}

	active, err := se.Repo.ActiveByServiceDate(ctx, serviceID, date)
	if err != nil {
		return nil, err
	}
	return FilterAvailable(candidates, active, svc.Capacity()), nil
}

// CheckSlotAvailability validates one explicit window against the active
// booking set for (serviceId, date).
func (se *DefaultSchedulingEngine) CheckSlotAvailability(ctx context.Context, serviceID, date string, window models.Interval) (bool, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return false, NewValidationError("date", "expected YYYY-MM-DD")
	}
	if !window.Valid() {
		return false, NewValidationError("window", "start must precede end within the day")
	}

	svc, err := se.service(ctx, serviceID)
	if err != nil {
		return false, err
	}

	active, err := se.Repo.ActiveByServiceDate(ctx, serviceID, date)
	if err != nil {
		return false, err
	}
	return WindowFree(window, active, svc.Capacity()), nil
}

// GetBooking fetches one booking by id.
func (se *DefaultSchedulingEngine) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	b, err := se.Repo.GetByID(ctx, id)
	if err != nil {
		var nf bookingRepo.ErrNotFound
		if errors.As(err, &nf) {
			return nil, &NotFoundError{Kind: "booking", ID: id}
		}
		return nil, err
	}
	return b, nil
}

// GetBookingByNumber fetches one booking by its human-facing number.
func (se *DefaultSchedulingEngine) GetBookingByNumber(ctx context.Context, number string) (*models.Booking, error) {
	b, err := se.Repo.GetByNumber(ctx, number)
	if err != nil {
		var nf bookingRepo.ErrNotFound
		if errors.As(err, &nf) {
			return nil, &NotFoundError{Kind: "booking", ID: number}
		}
		return nil, err
	}
	return b, nil
}

// CustomerBookings pages through a customer's booking history.
func (se *DefaultSchedulingEngine) CustomerBookings(ctx context.Context, customerID, cursor string, limit int) (*bookingRepo.Page, error) {
	return se.Repo.QueryByCustomer(ctx, customerID, cursor, limit)
}

// StoreBookings pages through a store's calendar.
func (se *DefaultSchedulingEngine) StoreBookings(ctx context.Context, storeID, cursor string, limit int) (*bookingRepo.Page, error) {
	return se.Repo.QueryByStore(ctx, storeID, cursor, limit)
}

// StoreStats aggregates a store's bookings into dashboard counters. This is a
// deliberate full scan over the store's snapshot; stores with very large
// histories should move to incrementally maintained counters.
func (se *DefaultSchedulingEngine) StoreStats(ctx context.Context, storeID string) (*models.StoreStats, error) {
	bookings, err := se.Repo.AllByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	stats := Aggregate(bookings)
	return &stats, nil
}

// notifyStatus emits the status event without blocking or failing the caller.
func (se *DefaultSchedulingEngine) notifyStatus(booking *models.Booking, serviceName string) {
	if se.Notifier == nil {
		return
	}
	event := models.BookingStatusEvent{
		BookingID:     booking.ID,
		BookingNumber: booking.BookingNumber,
		ServiceName:   serviceName,
		CustomerID:    booking.CustomerID,
		StoreID:       booking.StoreID,
		NewStatus:     booking.Status,
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := se.Notifier.NotifyBookingStatus(ctx, event); err != nil {
			utils.GetLogger().Warn("booking status notification failed",
				zap.String("bookingId", booking.ID),
				zap.String("status", string(booking.Status)),
				zap.Error(err))
		}
	}()
}
