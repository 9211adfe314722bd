package adaptor

import (
	"encoding/json"
	"net/http"

	"showtime-booking/internal/dto/request"
	"showtime-booking/internal/usecase"
	"showtime-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// GetSeatAvailability handles GET /api/slots/{id}/seats
func (h *BookingHandler) GetSeatAvailability(w http.ResponseWriter, r *http.Request) {
	slotID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid slot ID", nil)
		return
	}

	seats, err := h.service.GetSeatAvailability(r.Context(), slotID)
	if err != nil {
		h.log.Warn("Failed to get seat availability", zap.Error(err), zap.String("slot_id", slotID.String()))
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "success", seats)
}

// CreateBooking handles POST /api/slots/{id}/bookings (protected)
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	slotID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid slot ID", nil)
		return
	}

	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), userID, slotID, &req)
	if err != nil {
		h.log.Warn("Failed to create booking",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("slot_id", slotID.String()))
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseCreated(w, "success", booking)
}

// CancelBooking handles PATCH /api/bookings/{id}/cancel (protected)
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookingID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid booking ID", nil)
		return
	}

	if err := h.service.CancelBooking(r.Context(), userID, bookingID); err != nil {
		h.log.Warn("Failed to cancel booking",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("booking_id", bookingID.String()))
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// GetPurchaseHistory handles GET /api/user/bookings?purchase=&page=&per_page= (protected)
func (h *BookingHandler) GetPurchaseHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	query := r.URL.Query()
	req := &request.PurchaseHistoryRequest{
		Purchase: query.Get("purchase"),
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(query.Get("page"), 1),
			PerPage: utils.ParseInt(query.Get("per_page"), 10),
		},
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	history, err := h.service.GetPurchaseHistory(r.Context(), userID, req)
	if err != nil {
		h.log.Error("Failed to get purchase history", zap.Error(err), zap.String("user_id", userID.String()))
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "success", history)
}
