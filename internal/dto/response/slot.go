package response

import (
	"time"

	"showtime-booking/internal/data/entity"
)

type SlotResponse struct {
	ID        string    `json:"id"`
	CinemaID  string    `json:"cinema_id"`
	MovieID   string    `json:"movie_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Price     float64   `json:"price"`
}

// MovieSlotsResponse groups a cinema's slots for one day under the
// movie they show.
type MovieSlotsResponse struct {
	MovieID   string         `json:"movie_id"`
	MovieName string         `json:"movie_name"`
	Slots     []SlotResponse `json:"slots"`
}

type CinemaSlotsResponse struct {
	CinemaID string               `json:"cinema_id"`
	Cinema   string               `json:"cinema"`
	Date     string               `json:"date"`
	Movies   []MovieSlotsResponse `json:"movies"`
}

func SlotToResponse(slot *entity.Slot) SlotResponse {
	return SlotResponse{
		ID:        slot.ID.String(),
		CinemaID:  slot.CinemaID.String(),
		MovieID:   slot.MovieID.String(),
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
		Price:     slot.Price,
	}
}
