package wire

import (
	"showtime-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireSlot(r chi.Router, slotHandler *adaptor.SlotHandler, log *zap.Logger) {
	// POST /api/slots - Schedule a showtime
	r.Post("/api/slots", slotHandler.ScheduleSlot)

	// GET /api/slots?cinema_id=&date= - A cinema's showtimes for a day
	r.Get("/api/slots", slotHandler.ListCinemaSlots)
}
