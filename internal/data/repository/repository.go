package repository

import (
	"showtime-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Location    LocationRepository
	Cinema      CinemaRepository
	CinemaSeat  CinemaSeatRepository
	Movie       MovieRepository
	Slot        SlotRepository
	Booking     BookingRepository
	BookingSeat BookingSeatRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Location:    NewLocationRepository(db, log),
		Cinema:      NewCinemaRepository(db, log),
		CinemaSeat:  NewCinemaSeatRepository(db, log),
		Movie:       NewMovieRepository(db, log),
		Slot:        NewSlotRepository(db, log),
		Booking:     NewBookingRepository(db, log),
		BookingSeat: NewBookingSeatRepository(db, log),
	}
}
