package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"corkboard-listing-service/internal/adapters/db"
	"corkboard-listing-service/internal/adapters/httpapi"
	"corkboard-listing-service/internal/adapters/notifier"
	"corkboard-listing-service/internal/adapters/redis"
	"corkboard-listing-service/internal/adapters/storage"
	"corkboard-listing-service/internal/app"
	"corkboard-listing-service/internal/config"
)

func main() {

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	initLogging(cfg)

	log.Info().Msg("Starting Corkboard Listing Service...")

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection
	dbConn, err := db.NewConnection(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer dbConn.Close()

	if err := dbConn.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database schema")
	}

	log.Info().Msg("Database connection established")

	// Create repositories
	repoFactory := db.NewRepositoryFactory(dbConn)
	listingRepo := repoFactory.GetListingRepository()
	attachmentRepo := repoFactory.GetAttachmentRepository()

	log.Info().Msg("Database repositories initialized")

	// Create Redis client for the mutation-event notifier
	redisClient := redis.NewClient(cfg.Redis)
	if err := redis.PingRedis(redisClient); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	log.Info().Msg("Redis connection established")

	eventNotifier := notifier.NewNotifier(notifier.RedisNotifierParams{
		RedisClient: redisClient,
		Logger:      log.Logger,
	})

	// Create object store for attachments
	objectStore, err := storage.NewMinioStore(ctx, storage.MinioStoreParams{
		Config: cfg,
		Logger: log.Logger,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to object storage")
	}
	log.Info().Msg("Object storage initialized")

	// Create business service
	policy := app.DefaultPolicy()
	policy.DefaultPageSize = cfg.Listing.DefaultPageSize
	policy.MaxPageSize = cfg.Listing.MaxPageSize
	policy.SoftDelete = cfg.Listing.SoftDelete

	listingService := app.NewListingService(app.ListingServiceParams{
		ListingRepo:    listingRepo,
		AttachmentRepo: attachmentRepo,
		Store:          objectStore,
		Notifier:       eventNotifier,
		Policy:         policy,
		Logger:         log.Logger,
	})

	log.Info().Msg("Listing service initialized")

	httpServer := httpapi.NewServer(httpapi.ServerParams{
		Config:         cfg,
		ListingService: listingService,
		Logger:         log.Logger,
	})

	// Start HTTP server
	go func() {
		if err := httpServer.Start(); err != nil {
			log.Error().Err(err).Msg("Failed to start HTTP server")
			cancel()
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case <-ctx.Done():
		log.Info().Msg("Context cancelled")
	}

	// Graceful shutdown
	log.Info().Msg("Starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error stopping HTTP server")
	}

	log.Info().Msg("Graceful shutdown completed")
}

func initLogging(cfg *config.Config) {
	// Set log level
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Set log format
	if cfg.Logging.Format == "json" {
		// JSON format (default)
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		// Console format for development
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		log.Logger = zerolog.New(output).With().Timestamp().Logger()
	}

	// Set global logger
	zerolog.DefaultContextLogger = &log.Logger
}
