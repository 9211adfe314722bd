package adaptor

import (
	"encoding/json"
	"net/http"

	"showtime-booking/internal/dto/request"
	"showtime-booking/internal/usecase"
	"showtime-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log.With(zap.String("handler", "catalog")),
	}
}

// CreateLocation handles POST /api/locations
func (h *CatalogHandler) CreateLocation(w http.ResponseWriter, r *http.Request) {
	var req request.CreateLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	location, err := h.service.CreateLocation(r.Context(), &req)
	if err != nil {
		h.log.Warn("Failed to create location", zap.Error(err))
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseCreated(w, "success", location)
}

// ListLocations handles GET /api/locations
func (h *CatalogHandler) ListLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.service.ListLocations(r.Context())
	if err != nil {
		h.log.Error("Failed to list locations", zap.Error(err))
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "success", locations)
}

// CreateCinema handles POST /api/cinemas
func (h *CatalogHandler) CreateCinema(w http.ResponseWriter, r *http.Request) {
	var req request.CreateCinemaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	cinema, err := h.service.CreateCinema(r.Context(), &req)
	if err != nil {
		h.log.Warn("Failed to create cinema", zap.Error(err))
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseCreated(w, "success", cinema)
}

// GetCinemaBySlug handles GET /api/cinemas/{slug}
func (h *CatalogHandler) GetCinemaBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		utils.ResponseBadRequest(w, "Cinema slug is required", nil)
		return
	}

	cinema, err := h.service.GetCinemaBySlug(r.Context(), slug)
	if err != nil {
		h.log.Warn("Failed to get cinema", zap.Error(err), zap.String("slug", slug))
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "success", cinema)
}

// CreateMovie handles POST /api/movies
func (h *CatalogHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var req request.CreateMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	movie, err := h.service.CreateMovie(r.Context(), &req)
	if err != nil {
		h.log.Warn("Failed to create movie", zap.Error(err))
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseCreated(w, "success", movie)
}
