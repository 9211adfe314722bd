package adaptor

import (
	"encoding/json"
	"net/http"
	"time"

	"showtime-booking/internal/dto/request"
	"showtime-booking/internal/usecase"
	"showtime-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SlotHandler struct {
	service usecase.SlotService
	log     *zap.Logger
}

func NewSlotHandler(service usecase.SlotService, log *zap.Logger) *SlotHandler {
	return &SlotHandler{
		service: service,
		log:     log.With(zap.String("handler", "slot")),
	}
}

// ScheduleSlot handles POST /api/slots
func (h *SlotHandler) ScheduleSlot(w http.ResponseWriter, r *http.Request) {
	var req request.ScheduleSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	slot, err := h.service.ScheduleSlot(r.Context(), &req)
	if err != nil {
		h.log.Warn("Failed to schedule slot", zap.Error(err))
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseCreated(w, "success", slot)
}

// ListCinemaSlots handles GET /api/slots?cinema_id=&date=YYYY-MM-DD
func (h *SlotHandler) ListCinemaSlots(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	cinemaID, err := uuid.Parse(query.Get("cinema_id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid cinema ID", nil)
		return
	}

	dateStr := query.Get("date")
	if dateStr == "" {
		utils.ResponseBadRequest(w, "date query parameter is required", nil)
		return
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid date format (YYYY-MM-DD)", nil)
		return
	}

	slots, err := h.service.ListCinemaSlots(r.Context(), cinemaID, date)
	if err != nil {
		h.log.Warn("Failed to list cinema slots", zap.Error(err), zap.String("cinema_id", cinemaID.String()))
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "success", slots)
}
