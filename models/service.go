package models

import "time"

// Service is a bookable offering published by a store: a weekly availability
// template plus the slot parameters the scheduler derives bookable times from.
type Service struct {
	ID                 string             `bson:"id" json:"id"`
	StoreID            string             `bson:"storeId" json:"storeId"`
	Name               string             `bson:"name" json:"name"`
	Description        string             `bson:"description,omitempty" json:"description,omitempty"`
	Availability       WeeklyAvailability `bson:"availability" json:"availability"`
	Duration           int                `bson:"duration" json:"duration"`                     // slot length in minutes, > 0
	BufferTime         int                `bson:"bufferTime" json:"bufferTime"`                 // gap between slots in minutes, >= 0
	MaxBookingsPerSlot int                `bson:"maxBookingsPerSlot" json:"maxBookingsPerSlot"` // capacity per slot, >= 1
	Price              float64            `bson:"price" json:"price"`
	Currency           string             `bson:"currency" json:"currency"`
	Archived           bool               `bson:"archived" json:"archived"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Capacity returns the effective per-slot capacity, defaulting to 1.
func (s *Service) Capacity() int {
	if s.MaxBookingsPerSlot < 1 {
		return 1
	}
	return s.MaxBookingsPerSlot
}
