package adaptor

import (
	"showtime-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Catalog *CatalogHandler
	Slot    *SlotHandler
	Booking *BookingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Catalog: NewCatalogHandler(service.Catalog, log),
		Slot:    NewSlotHandler(service.Slot, log),
		Booking: NewBookingHandler(service.Booking, log),
	}
}
