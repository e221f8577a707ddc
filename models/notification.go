package models

// BookingStatusEvent is the payload handed to the notification collaborator
// on every status transition. Rendering and localization happen downstream.
type BookingStatusEvent struct {
	BookingID     string        `json:"bookingId"`
	BookingNumber string        `json:"bookingNumber"`
	ServiceName   string        `json:"serviceName"`
	CustomerID    string        `json:"customerId"`
	StoreID       string        `json:"storeId"`
	NewStatus     BookingStatus `json:"newStatus"`
}

// ReminderPayload is the task body queued for an upcoming-appointment push.
type ReminderPayload struct {
	BookingID     string `json:"bookingId"`
	BookingNumber string `json:"bookingNumber"`
	ServiceName   string `json:"serviceName"`
	CustomerID    string `json:"customerId"`
	Date          string `json:"date"`
	Start         int    `json:"start"`
}
