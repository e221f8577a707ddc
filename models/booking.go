package models

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
	StatusNoShow     BookingStatus = "no_show"
)

// Valid reports whether s is a known booking status.
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// Terminal reports whether s is a final state. Terminal bookings are retained
// for history and never mutated again.
func (s BookingStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

// Active reports whether a booking in this status still blocks its slot.
// Cancelled and no-show bookings free the time they held.
func (s BookingStatus) Active() bool {
	return s != StatusCancelled && s != StatusNoShow
}

// PaymentStatus mirrors what the payment collaborator reports back.
type PaymentStatus string

const (
	PaymentPending        PaymentStatus = "pending"
	PaymentPaid           PaymentStatus = "paid"
	PaymentRefundEligible PaymentStatus = "refund_eligible"
	PaymentRefunded       PaymentStatus = "refunded"
)

// Booking is one appointment on a store's calendar. Created in status
// "pending" by the scheduler and only ever mutated through guarded status
// transitions; terminal rows are kept forever for audit.
type Booking struct {
	ID             string        `bson:"id" json:"id"`
	BookingNumber  string        `bson:"bookingNumber" json:"bookingNumber"`
	ServiceID      string        `bson:"serviceId" json:"serviceId"`
	StoreID        string        `bson:"storeId" json:"storeId"`
	CustomerID     string        `bson:"customerId" json:"customerId"`
	Date           string        `bson:"date" json:"date"` // "2006-01-02", pins the calendar day
	Start          TimeOfDay     `bson:"start" json:"start"`
	End            TimeOfDay     `bson:"end" json:"end"`
	Duration       int           `bson:"duration" json:"duration"` // minutes; End-Start == Duration
	Status         BookingStatus `bson:"status" json:"status"`
	PaymentStatus  PaymentStatus `bson:"paymentStatus" json:"paymentStatus"`
	PaymentMethod  string        `bson:"paymentMethod" json:"paymentMethod"` // "card", "cash" or "wallet"
	Total          float64       `bson:"total" json:"total"`
	IdempotencyKey string        `bson:"idempotencyKey,omitempty" json:"-"`
	CreatedAt      time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// Window returns the booking's time window as an interval.
func (b *Booking) Window() Interval {
	return Interval{Start: b.Start, End: b.End}
}
