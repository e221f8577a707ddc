package scheduling

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingRepo "github.com/mbendary2019/Shoporia-sub001/database/repository/booking"
	"github.com/mbendary2019/Shoporia-sub001/models"
	"github.com/mbendary2019/Shoporia-sub001/utils"
)

// allowedTransitions is the booking lifecycle. A booking starts pending;
// cancelled, completed and no_show are terminal.
var allowedTransitions = map[models.BookingStatus][]models.BookingStatus{
	models.StatusPending:    {models.StatusConfirmed, models.StatusCancelled, models.StatusNoShow},
	models.StatusConfirmed:  {models.StatusInProgress, models.StatusCompleted, models.StatusCancelled, models.StatusNoShow},
	models.StatusInProgress: {models.StatusCompleted},
}

// CanTransition reports whether the lifecycle permits from -> to.
func CanTransition(from, to models.BookingStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// newBookingNumber builds the short human-facing reference printed on
// confirmations, e.g. "SHP-20260114-3F2A9C".
func newBookingNumber(date string) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:6])
	return fmt.Sprintf("SHP-%s-%s", strings.ReplaceAll(date, "-", ""), suffix)
}

const idempotencyTTL = 24 * time.Hour

// lookupIdempotent returns the previously created booking for a replayed key,
// or nil when the key is new. Redis is only a fast path; the repository's
// unique index on the key is authoritative.
func (se *DefaultSchedulingEngine) lookupIdempotent(ctx context.Context, key string) (*models.Booking, error) {
	if key == "" {
		return nil, nil
	}
	if se.IdemCache != nil {
		if id, err := se.IdemCache.Get(ctx, key).Result(); err == nil && id != "" {
			if b, err := se.Repo.GetByID(ctx, id); err == nil {
				return b, nil
			}
		}
	}
	b, err := se.Repo.GetByIdempotencyKey(ctx, key)
	if err != nil {
		var nf bookingRepo.ErrNotFound
		if errors.As(err, &nf) {
			return nil, nil
		}
		return nil, err
	}
	return b, nil
}

// CreateBooking validates the request, checks the window against active
// bookings and persists a new pending booking. The final availability check
// and the insert run inside one repository transaction, so two racing
// requests for the same window can never both succeed.
func (se *DefaultSchedulingEngine) CreateBooking(ctx context.Context, req CreateBookingRequest) (*models.Booking, error) {
	logger := utils.GetLogger()

	day, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, NewValidationError("date", "expected YYYY-MM-DD")
	}
	today := time.Now()
	todayStart := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	if day.Before(todayStart) {
		return nil, NewValidationError("date", "date is in the past")
	}
	window := models.Interval{Start: req.Start, End: req.End}
	if !window.Valid() {
		return nil, NewValidationError("window", "start must precede end within the day")
	}
	if req.CustomerID == "" {
		return nil, NewValidationError("customerId", "required")
	}

	// Replayed request: hand back the original booking, no duplicate.
	if existing, err := se.lookupIdempotent(ctx, req.IdempotencyKey); err != nil {
		return nil, err
	} else if existing != nil {
		logger.Info("idempotent booking replay",
			zap.String("key", req.IdempotencyKey),
			zap.String("bookingId", existing.ID))
		return existing, nil
	}

	svc, err := se.service(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}
	if svc.Archived {
		return nil, NewValidationError("serviceId", "service is no longer offered")
	}
	if svc.Duration <= 0 {
		return nil, NewValidationError("duration", "service duration must be positive")
	}
	if window.Duration() != svc.Duration {
		return nil, NewValidationError("window",
			fmt.Sprintf("end must equal start plus the service duration of %d minutes", svc.Duration))
	}

	// Pre-flight check. The transactional insert re-checks, but failing here
	// avoids registering a payment for a window that is already gone.
	active, err := se.Repo.ActiveByServiceDate(ctx, req.ServiceID, req.Date)
	if err != nil {
		return nil, err
	}
	if !WindowFree(window, active, svc.Capacity()) {
		return nil, &SlotUnavailableError{ServiceID: req.ServiceID, Date: req.Date, Window: window}
	}

	now := time.Now()
	booking := &models.Booking{
		ID:             uuid.New().String(),
		BookingNumber:  newBookingNumber(req.Date),
		ServiceID:      svc.ID,
		StoreID:        svc.StoreID,
		CustomerID:     req.CustomerID,
		Date:           req.Date,
		Start:          window.Start,
		End:            window.End,
		Duration:       svc.Duration,
		Status:         models.StatusPending,
		PaymentStatus:  models.PaymentPending,
		PaymentMethod:  req.PaymentMethod,
		Total:          svc.Price,
		IdempotencyKey: req.IdempotencyKey,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if se.Payments != nil {
		payReq := models.PaymentRequest{
			BookingID:  booking.ID,
			CustomerID: booking.CustomerID,
			Amount:     booking.Total,
			Currency:   svc.Currency,
			Method:     booking.PaymentMethod,
			Token:      req.PaymentToken,
		}
		status, err := se.Payments.Register(ctx, payReq)
		if err != nil {
			return nil, fmt.Errorf("payment registration failed: %w", err)
		}
		booking.PaymentStatus = status
	}

	if err := se.Repo.CreateIfSlotFree(ctx, booking, svc.Capacity()); err != nil {
		// The booking was never persisted; any money captured for it must
		// flow back before the failure is surfaced.
		se.compensatePayment(ctx, booking)

		var dup bookingRepo.ErrDuplicateKey
		if errors.As(err, &dup) {
			// A concurrent replay of the same idempotency key committed
			// first; hand back its booking, same as a sequential replay.
			if existing, lookupErr := se.lookupIdempotent(ctx, req.IdempotencyKey); lookupErr == nil && existing != nil {
				logger.Info("idempotent booking replay",
					zap.String("key", req.IdempotencyKey),
					zap.String("bookingId", existing.ID))
				return existing, nil
			}
			return nil, &SlotUnavailableError{ServiceID: req.ServiceID, Date: req.Date, Window: window}
		}
		var taken bookingRepo.ErrSlotTaken
		if errors.As(err, &taken) {
			return nil, &SlotUnavailableError{ServiceID: req.ServiceID, Date: req.Date, Window: window}
		}
		return nil, err
	}

	if req.IdempotencyKey != "" && se.IdemCache != nil {
		if err := se.IdemCache.Set(ctx, req.IdempotencyKey, booking.ID, idempotencyTTL).Err(); err != nil {
			logger.Warn("failed to cache idempotency key", zap.Error(err))
		}
	}

	logger.Info("booking created",
		zap.String("bookingId", booking.ID),
		zap.String("bookingNumber", booking.BookingNumber),
		zap.String("serviceId", booking.ServiceID),
		zap.String("date", booking.Date))

	se.notifyStatus(booking, svc.Name)
	return booking, nil
}

// compensatePayment reverses the payment registered for a booking whose
// insert failed. Only captured payments need the refund; deferred cash and
// wallet payments never took money.
func (se *DefaultSchedulingEngine) compensatePayment(ctx context.Context, booking *models.Booking) {
	if se.Payments == nil || booking.PaymentStatus != models.PaymentPaid {
		return
	}
	if err := se.Payments.MarkRefundEligible(ctx, booking.ID); err != nil {
		utils.GetLogger().Error("failed to refund payment for unpersisted booking",
			zap.String("bookingId", booking.ID),
			zap.Error(err))
	}
}

// TransitionStatus moves a booking through the lifecycle with an optimistic
// guard: the update only lands if the stored status still equals expected.
// Collaborator side effects (payment, notification, reminder) run after the
// transition commits and never roll it back.
func (se *DefaultSchedulingEngine) TransitionStatus(ctx context.Context, bookingID string, expected, next models.BookingStatus) (*models.Booking, error) {
	logger := utils.GetLogger()

	if !expected.Valid() || !next.Valid() {
		return nil, NewValidationError("status", "unknown booking status")
	}
	if !CanTransition(expected, next) {
		return nil, &InvalidTransitionError{From: expected, To: next}
	}

	booking, err := se.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != expected {
		if !CanTransition(booking.Status, next) {
			return nil, &InvalidTransitionError{From: booking.Status, To: next}
		}
		return nil, &ConcurrentModificationError{BookingID: bookingID, Expected: expected, Actual: booking.Status}
	}

	if err := se.Repo.UpdateStatus(ctx, bookingID, expected, next); err != nil {
		var conflict bookingRepo.ErrStatusConflict
		if errors.As(err, &conflict) {
			if !CanTransition(conflict.Actual, next) {
				return nil, &InvalidTransitionError{From: conflict.Actual, To: next}
			}
			return nil, &ConcurrentModificationError{BookingID: bookingID, Expected: expected, Actual: conflict.Actual}
		}
		var nf bookingRepo.ErrNotFound
		if errors.As(err, &nf) {
			return nil, &NotFoundError{Kind: "booking", ID: bookingID}
		}
		return nil, err
	}

	booking.Status = next
	booking.UpdatedAt = time.Now()

	logger.Info("booking status changed",
		zap.String("bookingId", booking.ID),
		zap.String("from", string(expected)),
		zap.String("to", string(next)))

	se.runTransitionEffects(booking)
	return booking, nil
}

// runTransitionEffects triggers collaborator side effects for a committed
// transition. Every effect is fire-and-forget: failures are logged and never
// undo the status change.
func (se *DefaultSchedulingEngine) runTransitionEffects(booking *models.Booking) {
	logger := utils.GetLogger()

	serviceName := ""
	if svc, err := se.Catalog.GetByID(context.Background(), booking.ServiceID); err == nil {
		serviceName = svc.Name
	}
	se.notifyStatus(booking, serviceName)

	switch booking.Status {
	case models.StatusCancelled:
		if se.Payments != nil && booking.PaymentStatus == models.PaymentPaid {
			go func(b models.Booking) {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := se.Payments.MarkRefundEligible(ctx, b.ID); err != nil {
					logger.Warn("refund eligibility update failed",
						zap.String("bookingId", b.ID), zap.Error(err))
					return
				}
				if err := se.Repo.UpdatePaymentStatus(ctx, b.ID, models.PaymentRefundEligible); err != nil {
					logger.Warn("payment status update failed",
						zap.String("bookingId", b.ID), zap.Error(err))
				}
			}(*booking)
		}
	case models.StatusCompleted:
		if se.Payments != nil && booking.PaymentStatus == models.PaymentPending {
			go func(b models.Booking) {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				status, err := se.Payments.Capture(ctx, b.ID)
				if err != nil {
					logger.Warn("payment capture failed",
						zap.String("bookingId", b.ID), zap.Error(err))
					return
				}
				if err := se.Repo.UpdatePaymentStatus(ctx, b.ID, status); err != nil {
					logger.Warn("payment status update failed",
						zap.String("bookingId", b.ID), zap.Error(err))
				}
			}(*booking)
		}
	case models.StatusConfirmed:
		se.scheduleReminder(booking, serviceName)
	}
}

// scheduleReminder queues the upcoming-appointment push for a confirmed
// booking. The worker re-checks status at fire time, so cancellations do not
// need to dequeue anything.
func (se *DefaultSchedulingEngine) scheduleReminder(booking *models.Booking, serviceName string) {
	if se.Reminders == nil {
		return
	}
	day, err := time.Parse(dateLayout, booking.Date)
	if err != nil {
		return
	}
	fireAt := day.Add(time.Duration(booking.Start) * time.Minute)
	payload := models.ReminderPayload{
		BookingID:     booking.ID,
		BookingNumber: booking.BookingNumber,
		ServiceName:   serviceName,
		CustomerID:    booking.CustomerID,
		Date:          booking.Date,
		Start:         int(booking.Start),
	}
	if err := se.Reminders.ScheduleReminder(payload, fireAt); err != nil {
		utils.GetLogger().Warn("failed to schedule booking reminder",
			zap.String("bookingId", booking.ID), zap.Error(err))
	}
}
