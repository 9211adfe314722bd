package entity

import "github.com/google/uuid"

// CinemaSeat is one physical seat of a cinema, identified by its
// (row_number, seat_number) pair. The full grid is created together
// with the cinema and never shrinks.
type CinemaSeat struct {
	BaseSimple
	CinemaID   uuid.UUID `db:"cinema_id"`
	RowNumber  int       `db:"row_number"`
	SeatNumber int       `db:"seat_number"`
}
