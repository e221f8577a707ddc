package models

// StoreStats summarizes a store's bookings for the dashboard. Revenue counts
// only completed bookings whose payment was captured.
type StoreStats struct {
	Total     int     `json:"total"`
	Pending   int     `json:"pending"`
	Confirmed int     `json:"confirmed"`
	Completed int     `json:"completed"`
	Cancelled int     `json:"cancelled"`
	Revenue   float64 `json:"revenue"`
}
