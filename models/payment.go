package models

// PaymentRequest is what the scheduler hands to the payment collaborator when
// a booking is created. The scheduler never touches provider credentials or
// capture mechanics; it only reads the resulting PaymentStatus back.
type PaymentRequest struct {
	BookingID  string  `json:"bookingId"`
	CustomerID string  `json:"customerId"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
	Method     string  `json:"method"`          // "card", "cash" or "wallet"
	Token      string  `json:"token,omitempty"` // stored payment method reference for card payments
}
