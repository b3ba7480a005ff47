package model

import "time"

type BookingStatus string

const (
	BookingStatusActive   BookingStatus = "active"
	BookingStatusCanceled BookingStatus = "canceled" // terminal
)

type Booking struct {
	ID        int64         `json:"id"`
	UserID    int64         `json:"user_id"`
	SlotID    int64         `json:"slot_id"`
	Status    BookingStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`

	// Filled for API responses, not stored in the bookings table.
	Slot *Slot `json:"slot,omitempty"`
}
