package entity

import (
	"time"

	"github.com/google/uuid"
)

// Slot is a showtime for a movie in a cinema. EndTime is derived from
// the movie duration when the slot is scheduled, never set by callers.
type Slot struct {
	Base
	CinemaID  uuid.UUID `db:"cinema_id"`
	MovieID   uuid.UUID `db:"movie_id"`
	StartTime time.Time `db:"start_time"`
	EndTime   time.Time `db:"end_time"`
	Price     float64   `db:"price"`
}
