package entity

import (
	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusBooked    BookingStatus = "booked"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking is created only through the reservation commit and its status
// only ever moves booked -> cancelled. Rows are never deleted.
type Booking struct {
	Base
	UserID uuid.UUID     `db:"user_id"`
	SlotID uuid.UUID     `db:"slot_id"`
	Status BookingStatus `db:"status"`
}
