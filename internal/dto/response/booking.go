package response

import (
	"time"

	"showtime-booking/internal/data/entity"
)

type SeatRef struct {
	Row  int `json:"row"`
	Seat int `json:"seat"`
}

type SeatAvailability struct {
	ID         string `json:"id"`
	RowNumber  int    `json:"row_number"`
	SeatNumber int    `json:"seat_number"`
	Available  bool   `json:"available"`
}

// SeatAvailabilityResponse is the seat map for a future slot, derived
// fresh on every request.
type SeatAvailabilityResponse struct {
	Cinema        string             `json:"cinema"`
	Location      string             `json:"location"`
	Rows          int                `json:"rows"`
	SeatsPerRow   int                `json:"seats_per_row"`
	Movie         string             `json:"movie"`
	SlotPrice     float64            `json:"slot_price"`
	SlotStartTime time.Time          `json:"slot_start_time"`
	Seats         []SeatAvailability `json:"seats"`
}

// BookingConfirmation is returned from a successful reservation commit.
type BookingConfirmation struct {
	BookingID      string    `json:"booking"`
	CinemaName     string    `json:"cinema_name"`
	CinemaLocation string    `json:"cinema_location"`
	MovieName      string    `json:"movie_name"`
	SlotTime       time.Time `json:"slot_time"`
	SlotPrice      float64   `json:"slot_price"`
	Seats          []SeatRef `json:"seats"`
}

type PurchaseHistoryItem struct {
	ID         string               `json:"id"`
	Status     entity.BookingStatus `json:"status"`
	MovieName  string               `json:"movie_name"`
	CinemaName string               `json:"cinema_name"`
	City       string               `json:"city"`
	StartTime  time.Time            `json:"start_time"`
	Price      float64              `json:"price"`
	Seats      []SeatRef            `json:"seats"`
	CreatedAt  time.Time            `json:"created_at"`
}

func SeatsToRefs(seats []*entity.CinemaSeat) []SeatRef {
	refs := make([]SeatRef, len(seats))
	for i, seat := range seats {
		refs[i] = SeatRef{Row: seat.RowNumber, Seat: seat.SeatNumber}
	}
	return refs
}
