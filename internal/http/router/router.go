package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/polibest/kp-api/internal/config"
	"github.com/polibest/kp-api/internal/database"
	"github.com/polibest/kp-api/internal/http/handler"
	"github.com/polibest/kp-api/internal/http/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/polibest/kp-api/docs" // Import generated swagger docs
)

type Router struct {
	cfg                *config.Config
	logger             *zap.Logger
	db                 *gorm.DB
	rateLimiter        *middleware.RateLimiter
	calculatorHandler  *handler.CalculatorHandler
	calculationHandler *handler.CalculationHandler
	proposalHandler    *handler.ProposalHandler
	documentHandler    *handler.DocumentHandler
	photoHandler       *handler.PhotoHandler
	settingsHandler    *handler.SettingsHandler
	dashboardHandler   *handler.DashboardHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	rateLimiter *middleware.RateLimiter,
	calculatorHandler *handler.CalculatorHandler,
	calculationHandler *handler.CalculationHandler,
	proposalHandler *handler.ProposalHandler,
	documentHandler *handler.DocumentHandler,
	photoHandler *handler.PhotoHandler,
	settingsHandler *handler.SettingsHandler,
	dashboardHandler *handler.DashboardHandler,
) *Router {
	return &Router{
		cfg:                cfg,
		logger:             logger,
		db:                 db,
		rateLimiter:        rateLimiter,
		calculatorHandler:  calculatorHandler,
		calculationHandler: calculationHandler,
		proposalHandler:    proposalHandler,
		documentHandler:    documentHandler,
		photoHandler:       photoHandler,
		settingsHandler:    settingsHandler,
		dashboardHandler:   dashboardHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Database health check (readiness probe with detailed stats)
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.HealthCheckWithStats(rt.db)
		if err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "database",
			"stats": map[string]interface{}{
				"max_open_connections": stats.MaxOpenConnections,
				"open_connections":     stats.OpenConnections,
				"in_use":               stats.InUse,
				"idle":                 stats.Idle,
			},
		})
	})

	// Combined readiness check
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		checks := make(map[string]interface{})
		allHealthy := true

		if err := database.HealthCheck(rt.db); err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			checks["database"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			allHealthy = false
		} else {
			checks["database"] = map[string]interface{}{
				"status": "healthy",
			}
		}

		w.Header().Set("Content-Type", "application/json")
		status := http.StatusOK
		overall := "healthy"
		if !allHealthy {
			status = http.StatusServiceUnavailable
			overall = "unhealthy"
		}
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": overall,
			"checks": checks,
		})
	})

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Calculator
		r.Post("/calculator/price", rt.calculatorHandler.Price)

		// Calculations
		r.Route("/calculations", func(r chi.Router) {
			r.Get("/", rt.calculationHandler.List)
			r.Post("/", rt.calculationHandler.Create)
			r.Get("/summary", rt.calculationHandler.Summary)
			r.Get("/{id}", rt.calculationHandler.GetByID)
			r.Put("/{id}", rt.calculationHandler.Update)
			r.Delete("/{id}", rt.calculationHandler.Delete)
			r.Post("/{id}/toggle-sum", rt.calculationHandler.ToggleSum)
			r.Get("/{id}/share", rt.calculationHandler.Share)
		})

		// Proposals
		r.Route("/proposals", func(r chi.Router) {
			r.Get("/", rt.proposalHandler.List)
			r.Post("/", rt.proposalHandler.Create)
			r.Get("/{id}", rt.proposalHandler.GetByID)
			r.Put("/{id}", rt.proposalHandler.Update)
			r.Delete("/{id}", rt.proposalHandler.Delete)

			// Lifecycle endpoints
			r.Patch("/{id}/status", rt.proposalHandler.UpdateStatus)
			r.Post("/{id}/clone", rt.proposalHandler.Clone)

			// Document composition
			r.Get("/{id}/preview", rt.proposalHandler.Preview)
			r.Get("/{id}/print", rt.proposalHandler.Print)
			r.Get("/{id}/share", rt.proposalHandler.Share)
		})

		// Documents
		r.Route("/documents", func(r chi.Router) {
			r.Get("/", rt.documentHandler.List)
			r.Post("/", rt.documentHandler.Create)
			r.Get("/{id}", rt.documentHandler.GetByID)
			r.Delete("/{id}", rt.documentHandler.Delete)
		})

		// Photos
		r.Route("/photos", func(r chi.Router) {
			r.Get("/", rt.photoHandler.List)
			r.Post("/", rt.photoHandler.Upload)
			r.Get("/{id}", rt.photoHandler.GetByID)
			r.Get("/{id}/download", rt.photoHandler.Download)
			r.Get("/{id}/thumbnail", rt.photoHandler.Thumbnail)
			r.Delete("/{id}", rt.photoHandler.Delete)
		})

		// Settings
		r.Route("/settings", func(r chi.Router) {
			r.Get("/", rt.settingsHandler.Get)
			r.Put("/", rt.settingsHandler.Update)
			r.Post("/reset", rt.settingsHandler.Reset)
		})

		// Dashboard
		r.Get("/dashboard/metrics", rt.dashboardHandler.Metrics)
	})

	return r
}
