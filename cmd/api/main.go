package main

// @title Partner CRM API
// @version 1.0.0
// @description Relationship management service for chapter partner organizations and their contacts.
// @description
// @description Core capabilities:
// @description - Organization and contact person CRUD with automatic county assignment
// @description - Geocoding pipeline with caching and provider rate limiting
// @description - County hierarchy lookup (chapter, region, division)
// @description - Aggregated map markers with viewport framing

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/partner-crm/docs/swagger"
	"github.com/partner-crm/internal/config"
	httpDelivery "github.com/partner-crm/internal/delivery/http"
	"github.com/partner-crm/internal/delivery/http/handler"
	"github.com/partner-crm/internal/domain/repository"
	"github.com/partner-crm/internal/infrastructure/nominatim"
	"github.com/partner-crm/internal/pkg/logger"
	"github.com/partner-crm/internal/repository/cache"
	"github.com/partner-crm/internal/repository/postgres"
	redisRepo "github.com/partner-crm/internal/repository/redis"
	"github.com/partner-crm/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Partner CRM API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()
	log.Info("PostgreSQL connected")

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()
	log.Info("Redis connected")

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}
	log.Info("All connections healthy")

	// 6. Initialize repositories
	countyRepo := postgres.NewCountyRepository(db)
	orgRepo := postgres.NewOrganizationRepository(db)
	personRepo := postgres.NewPersonRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)

	log.Info("Repositories initialized")

	// 7. Initialize use cases
	geocoder := nominatim.NewClient(&cfg.Geocoder, log)
	resolver := usecase.NewCoordinateResolver(
		[]repository.GeocodeProvider{geocoder},
		log,
		cfg.Geocoder.CoordinateTTL,
		cfg.Geocoder.MinInterval,
		nil,
	)

	hierarchyUC := usecase.NewHierarchyUseCase(countyRepo, log)
	assignmentUC := usecase.NewAssignmentUseCase(
		orgRepo,
		personRepo,
		countyRepo,
		resolver,
		hierarchyUC,
		streamRepo,
		log,
	)
	orgUC := usecase.NewOrganizationUseCase(orgRepo, assignmentUC, log)
	personUC := usecase.NewPersonUseCase(personRepo, assignmentUC, log)
	countyUC := usecase.NewCountyUseCase(countyRepo, log)
	mapUC := usecase.NewMapUseCase(
		orgRepo,
		personRepo,
		cacheRepo,
		resolver,
		cfg.Map,
		cfg.Cache,
		log,
	)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP handlers
	orgHandler := handler.NewOrganizationHandler(orgUC, log)
	personHandler := handler.NewPersonHandler(personUC, log)
	countyHandler := handler.NewCountyHandler(countyUC, log)
	mapHandler := handler.NewMapHandler(mapUC, log)
	geocodeHandler := handler.NewGeocodeHandler(resolver, assignmentUC, log)

	log.Info("HTTP handlers initialized")

	// 9. Initialize HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		db,
		redisClient,
		orgHandler,
		personHandler,
		countyHandler,
		mapHandler,
		geocodeHandler,
	)

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
