package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"corkboard-listing-service/internal/config"
	"corkboard-listing-service/internal/ports/inbound"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Server is the HTTP presentation adapter
type Server struct {
	httpServer *http.Server
	config     *config.Config
	logger     zerolog.Logger
}

type ServerParams struct {
	Config         *config.Config
	ListingService inbound.ListingService
	Logger         zerolog.Logger
}

func NewServer(params ServerParams) *Server {
	if params.Config.Logging.Format == "json" {
		gin.SetMode(gin.ReleaseMode)
	}

	handler := NewHandler(params.ListingService, params.Logger)

	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.GET("/health", handleHealth)

	api := engine.Group("/api")

	// Public routes
	api.GET("/listings", handler.List)
	api.GET("/listings/:id", handler.Get)
	api.GET("/listings/:id/attachments", handler.Attachments)

	// Routes requiring an authenticated actor
	authed := api.Group("/")
	authed.Use(ActorMiddleware(params.Config.Auth.JWTSecret))
	{
		authed.POST("/listings", handler.Create)
		authed.PATCH("/listings/:id", handler.Update)
		authed.DELETE("/listings/:id", handler.Delete)
		authed.POST("/listings/:id/status", handler.Transition)
		authed.POST("/listings/:id/attachments", handler.AddAttachment)
		authed.GET("/my/listings", handler.MyListings)

		admin := authed.Group("/admin")
		admin.Use(RequireAdmin())
		{
			admin.GET("/listings", handler.AdminList)
			admin.GET("/listings/:id", handler.AdminGet)
		}
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%s", params.Config.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		config:     params.Config,
		logger:     params.Logger.With().Str("component", "http_server").Logger(),
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info().Str("port", s.config.Server.Port).Msg("Starting HTTP server")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info().Msg("Stopping HTTP server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	s.logger.Info().Msg("HTTP server stopped")
	return nil
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "listing-service"})
}
