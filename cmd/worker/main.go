package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/partner-crm/internal/config"
	"github.com/partner-crm/internal/domain/repository"
	"github.com/partner-crm/internal/infrastructure/nominatim"
	"github.com/partner-crm/internal/pkg/logger"
	"github.com/partner-crm/internal/repository/cache"
	"github.com/partner-crm/internal/repository/postgres"
	redisRepo "github.com/partner-crm/internal/repository/redis"
	"github.com/partner-crm/internal/usecase"
	"github.com/partner-crm/internal/worker"
	"github.com/partner-crm/internal/worker/assignment"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Check if worker is enabled
	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting County Assignment Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("max_retries", cfg.Worker.MaxRetries))

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

	// 5. Initialize repositories
	countyRepo := postgres.NewCountyRepository(db)
	orgRepo := postgres.NewOrganizationRepository(db)
	personRepo := postgres.NewPersonRepository(db)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)

	// 6. Initialize use cases
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

	// 7. Initialize workers
	countyWorker := assignment.NewCountyWorker(
		streamRepo,
		assignmentUC,
		cfg.Worker.ConsumerGroup,
		cfg.Worker.MaxRetries,
		log,
	)

	// 8. Create worker manager and register workers
	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(countyWorker)

	// 9. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
