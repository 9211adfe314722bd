package wire

import (
	"showtime-booking/internal/adaptor"
	"showtime-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler, log *zap.Logger) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/slots/{id}/seats - Derived seat map for a slot
	r.Get("/api/slots/{id}/seats", bookingHandler.GetSeatAvailability)

	// ==================== PROTECTED ROUTES (require identity) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Identity(log))

		// POST /api/slots/{id}/bookings - Reserve seats on a slot
		r.Post("/api/slots/{id}/bookings", bookingHandler.CreateBooking)

		// PATCH /api/bookings/{id}/cancel - Cancel own booking
		r.Patch("/api/bookings/{id}/cancel", bookingHandler.CancelBooking)

		// GET /api/user/bookings - Purchase history with filters
		r.Get("/api/user/bookings", bookingHandler.GetPurchaseHistory)
	})
}
