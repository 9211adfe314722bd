package wire

import (
	"net/http"

	"showtime-booking/internal/adaptor"
	"showtime-booking/internal/data/repository"
	"showtime-booking/internal/events"
	"showtime-booking/internal/usecase"
	"showtime-booking/pkg/middleware"
	"showtime-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type App struct {
	Router *chi.Mux
}

func Wiring(
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
	publisher events.Publisher,
	redisClient *redis.Client,
) *App {
	service := usecase.NewService(repo, config, logger, publisher)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, config, logger, redisClient)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	config *utils.Config,
	logger *zap.Logger,
	redisClient *redis.Client,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Metrics())
	if redisClient != nil {
		r.Use(middleware.RateLimit(redisClient, config.Redis.RequestsPerMin, logger))
	}

	wireCatalog(r, handler.Catalog, logger)
	wireSlot(r, handler.Slot, logger)
	wireBooking(r, handler.Booking, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}
