package wire

import (
	"showtime-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCatalog(r chi.Router, catalogHandler *adaptor.CatalogHandler, log *zap.Logger) {
	// POST /api/locations - Register a city
	r.Post("/api/locations", catalogHandler.CreateLocation)

	// GET /api/locations - List registered cities
	r.Get("/api/locations", catalogHandler.ListLocations)

	// POST /api/cinemas - Register a cinema with its seat grid
	r.Post("/api/cinemas", catalogHandler.CreateCinema)

	// GET /api/cinemas/{slug} - Cinema details by slug
	r.Get("/api/cinemas/{slug}", catalogHandler.GetCinemaBySlug)

	// POST /api/movies - Register a movie
	r.Post("/api/movies", catalogHandler.CreateMovie)
}
