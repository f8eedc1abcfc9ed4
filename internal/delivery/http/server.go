package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/partner-crm/internal/config"
	"github.com/partner-crm/internal/delivery/http/handler"
	"github.com/partner-crm/internal/delivery/http/middleware"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"
)

// HealthChecker is implemented by the storage layers exposed through the
// health endpoint.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Server is the Fiber HTTP server.
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	db    HealthChecker
	redis HealthChecker

	orgHandler     *handler.OrganizationHandler
	personHandler  *handler.PersonHandler
	countyHandler  *handler.CountyHandler
	mapHandler     *handler.MapHandler
	geocodeHandler *handler.GeocodeHandler
}

func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	db HealthChecker,
	redis HealthChecker,
	orgHandler *handler.OrganizationHandler,
	personHandler *handler.PersonHandler,
	countyHandler *handler.CountyHandler,
	mapHandler *handler.MapHandler,
	geocodeHandler *handler.GeocodeHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Partner CRM",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:            app,
		config:         cfg,
		logger:         logger,
		db:             db,
		redis:          redis,
		orgHandler:     orgHandler,
		personHandler:  personHandler,
		countyHandler:  countyHandler,
		mapHandler:     mapHandler,
		geocodeHandler: geocodeHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	api.Get("/health", s.health)

	// Organizations
	api.Get("/organizations", s.orgHandler.List)
	api.Post("/organizations", s.orgHandler.Create)
	api.Get("/organizations/:id", s.orgHandler.GetByID)
	api.Put("/organizations/:id", s.orgHandler.Update)

	// People
	api.Get("/people", s.personHandler.List)
	api.Post("/people", s.personHandler.Create)
	api.Get("/people/:id", s.personHandler.GetByID)
	api.Put("/people/:id", s.personHandler.Update)

	// Counties
	api.Get("/counties", s.countyHandler.ListByState)
	api.Get("/counties/:id", s.countyHandler.GetByID)

	// Map
	api.Get("/map/markers", s.mapHandler.GetMarkers)

	// Debug routes for exercising the geocoding pipeline directly
	debug := api.Group("/debug")
	debug.Get("/geocode/city", s.geocodeHandler.ResolveCity)
	debug.Get("/geocode/address", s.geocodeHandler.ResolveAddress)

	// Admin
	admin := api.Group("/admin")
	admin.Post("/backfill-counties", s.geocodeHandler.Backfill)
}

func (s *Server) health(c *fiber.Ctx) error {
	status := "healthy"
	checks := fiber.Map{}

	if err := s.db.Health(c.Context()); err != nil {
		status = "degraded"
		checks["postgres"] = err.Error()
	} else {
		checks["postgres"] = "ok"
	}

	if err := s.redis.Health(c.Context()); err != nil {
		status = "degraded"
		checks["redis"] = err.Error()
	} else {
		checks["redis"] = "ok"
	}

	return c.JSON(fiber.Map{
		"status": status,
		"checks": checks,
		"time":   time.Now(),
	})
}

// Start blocks serving HTTP until Shutdown.
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "INTERNAL_SERVER_ERROR",
				"message": err.Error(),
			},
		})
	}
}
