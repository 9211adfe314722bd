package usecase

import (
	"showtime-booking/internal/data/repository"
	"showtime-booking/internal/events"
	"showtime-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Catalog CatalogService
	Slot    SlotService
	Booking BookingService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger, publisher events.Publisher) *Service {
	return &Service{
		Catalog: NewCatalogService(repo, log),
		Slot:    NewSlotService(repo, log, publisher),
		Booking: NewBookingService(repo, log, publisher),
	}
}
