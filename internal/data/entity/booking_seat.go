package entity

import "github.com/google/uuid"

type BookingSeat struct {
	BaseSimple
	BookingID    uuid.UUID `db:"booking_id"`
	CinemaSeatID uuid.UUID `db:"cinema_seat_id"`
}
