package scheduling

import (
	"fmt"

	"github.com/mbendary2019/Shoporia-sub001/models"
)

// ValidationError rejects malformed input before any repository call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// SlotUnavailableError is returned when the requested window collides with
// active bookings at creation time. Surfaced verbatim so the storefront can
// show "slot no longer available" and refresh the slot list.
type SlotUnavailableError struct {
	ServiceID string
	Date      string
	Window    models.Interval
}

func (e *SlotUnavailableError) Error() string {
	return fmt.Sprintf("slot %s-%s on %s is no longer available",
		e.Window.Start, e.Window.End, e.Date)
}

// InvalidTransitionError rejects a status change the lifecycle table does not
// permit.
type InvalidTransitionError struct {
	From models.BookingStatus
	To   models.BookingStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid booking transition %s -> %s", e.From, e.To)
}

// NotFoundError reports an unknown booking or service id.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// ConcurrentModificationError reports that the optimistic status guard failed:
// another actor changed the booking between read and write.
type ConcurrentModificationError struct {
	BookingID string
	Expected  models.BookingStatus
	Actual    models.BookingStatus
}

func (e *ConcurrentModificationError) Error() string {
	return fmt.Sprintf("booking %s was modified concurrently: expected status %s, found %s",
		e.BookingID, e.Expected, e.Actual)
}
