package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/polibest/kp-api/docs"
	"github.com/polibest/kp-api/internal/config"
	"github.com/polibest/kp-api/internal/database"
	"github.com/polibest/kp-api/internal/http/handler"
	"github.com/polibest/kp-api/internal/http/middleware"
	"github.com/polibest/kp-api/internal/http/router"
	"github.com/polibest/kp-api/internal/jobs"
	"github.com/polibest/kp-api/internal/logger"
	"github.com/polibest/kp-api/internal/repository"
	"github.com/polibest/kp-api/internal/service"
	"github.com/polibest/kp-api/internal/storage"
	"go.uber.org/zap"
)

// @title PoliBest KP API
// @version 1.0
// @description Pricing calculator and commercial proposal API for protective floor coatings

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&cfg.Logging, &cfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Environment),
		zap.Int("port", cfg.App.Port),
	)

	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", cfg.App.Port)

	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Schema is kept current automatically; cmd/migrate handles
	// versioned migrations for shared environments
	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	fileStorage, err := storage.NewStorage(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	// Initialize repositories
	calculationRepo := repository.NewCalculationRepository(db)
	proposalRepo := repository.NewProposalRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	photoRepo := repository.NewPhotoRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Initialize services
	settingsService := service.NewSettingsService(settingsRepo, log)
	calculatorService := service.NewCalculatorService(settingsService, log)
	calculationService := service.NewCalculationService(calculationRepo, settingsService, log)
	proposalService := service.NewProposalService(proposalRepo, photoRepo, settingsService, log)
	documentService := service.NewDocumentService(documentRepo, log)
	photoService := service.NewPhotoService(photoRepo, fileStorage, cfg.Storage.MaxUploadSizeBytes(), log)
	dashboardService := service.NewDashboardService(calculationRepo, proposalRepo, documentRepo, photoRepo, settingsService, log)

	// Initialize middleware
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Initialize handlers
	calculatorHandler := handler.NewCalculatorHandler(calculatorService, log)
	calculationHandler := handler.NewCalculationHandler(calculationService, log)
	proposalHandler := handler.NewProposalHandler(proposalService, log)
	documentHandler := handler.NewDocumentHandler(documentService, log)
	photoHandler := handler.NewPhotoHandler(photoService, log)
	settingsHandler := handler.NewSettingsHandler(settingsService, log)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		db,
		rateLimiter,
		calculatorHandler,
		calculationHandler,
		proposalHandler,
		documentHandler,
		photoHandler,
		settingsHandler,
		dashboardHandler,
	)

	// Start scheduler for background jobs
	var scheduler *jobs.Scheduler
	if cfg.Jobs.TotalsRecalcEnabled {
		scheduler = jobs.NewScheduler(log)
		if err := jobs.RegisterTotalsRecalcJob(
			scheduler,
			proposalService,
			log,
			cfg.Jobs.TotalsRecalcSchedule,
		); err != nil {
			log.Error("Failed to register totals reconciliation job", zap.Error(err))
		} else {
			scheduler.Start()
			log.Info("Scheduler started",
				zap.String("cron_expr", cfg.Jobs.TotalsRecalcSchedule),
			)
		}
	} else {
		log.Info("Totals reconciliation job disabled")
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		if scheduler != nil {
			ctx := scheduler.Stop()
			<-ctx.Done()
			log.Info("Scheduler stopped")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
