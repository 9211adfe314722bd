package main

import (
	"context"
	"log"

	"showtime-booking/cmd"
	"showtime-booking/internal/data/repository"
	"showtime-booking/internal/events"
	"showtime-booking/internal/wire"
	"showtime-booking/pkg/database"
	"showtime-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(context.Background(), db); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	logger.Info("Database connected successfully")

	// Rate limiting is optional: no Redis address, no limiter.
	var redisClient *redis.Client
	if config.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     config.Redis.Addr,
			Password: config.Redis.Password,
			DB:       config.Redis.DB,
		})
		defer redisClient.Close()
	}

	// Event publishing is optional too: without a broker URL the noop
	// publisher swallows events.
	publisher := events.NewNoopPublisher()
	if config.AMQP.URL != "" {
		publisher, err = events.NewAMQPPublisher(config.AMQP.URL, config.AMQP.Exchange, logger)
		if err != nil {
			logger.Fatal("Failed to connect to message broker", zap.Error(err))
		}
	}
	defer publisher.Close()

	repos := repository.NewRepository(db, logger)

	app := wire.Wiring(repos, config, logger, publisher, redisClient)

	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
