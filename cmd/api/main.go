package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	_ "github.com/joho/godotenv/autoload"

	"github.com/kbelaid/chequier/internal/config"
	"github.com/kbelaid/chequier/internal/database"
	"github.com/kbelaid/chequier/internal/handlers"
	"github.com/kbelaid/chequier/internal/jobs"
	"github.com/kbelaid/chequier/internal/middleware"
	"github.com/kbelaid/chequier/internal/models"
	"github.com/kbelaid/chequier/internal/repository"
	"github.com/kbelaid/chequier/internal/services"
	"github.com/kbelaid/chequier/internal/storage"
	"github.com/kbelaid/chequier/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Setup(cfg.Environment, false)

	// Initialize Sentry when DSN is configured
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to the database when a register is configured
	var repos *repository.Repositories
	if cfg.DatabaseURL != "" {
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			logger.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		if err := db.AutoMigrate(&models.ChequeRecord{}); err != nil {
			logger.Error("Failed to migrate database", "error", err)
			os.Exit(1)
		}
		repos = repository.NewRepositories(db)
		logger.Info("Connected to database, cheque register enabled")
	} else {
		logger.Info("No DATABASE_URL set, cheque register disabled")
	}

	// Initialize storage for generated PDFs
	store, err := storage.NewLocalStorage(cfg.OutputDir)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	logger.Info("Initialized local storage", "dir", store.BasePath())

	// Initialize background worker
	worker := jobs.NewWorker(cfg.WorkerCount)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	// Initialize services
	svcs := services.NewServices(repos, worker, store, cfg)

	// Schedule recurring jobs
	scheduleJobs(worker, store, cfg)

	// Initialize handlers
	h := handlers.NewHandlers(svcs, store)

	// Setup router
	router := setupRouter(h, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	worker.Shutdown()
	logger.Info("Background worker stopped")

	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

func setupRouter(h *handlers.Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", h.Health.Index)

		// Cheque generation
		cheques := v1.Group("/cheques")
		{
			cheques.GET("/preview", h.Cheque.Preview)
			cheques.GET("/calibration", h.Cheque.Calibration)
			cheques.POST("", h.Cheque.Create)
			cheques.POST("/import", h.Cheque.Import)
		}

		// Cheque register, only when a database is configured
		if h.Register != nil {
			register := v1.Group("/register")
			{
				register.GET("", h.Register.Index)
				register.GET("/export", h.Register.Export)
				register.POST("/:id/print", h.Register.Print)
				register.POST("/:id/void", h.Register.Void)
			}
		}
	}

	return router
}

func scheduleJobs(worker *jobs.Worker, store *storage.LocalStorage, cfg *config.Config) {
	if cfg.RetentionDays <= 0 {
		return
	}

	maxAge := time.Duration(cfg.RetentionDays) * 24 * time.Hour

	// Purge old generated PDFs daily
	worker.ScheduleEvery(24*time.Hour, func(ctx context.Context) error {
		logger.Info("[Job] Purging old generated cheques...")
		removed, err := store.PurgeOlderThan(maxAge)
		if err != nil {
			return err
		}
		logger.Info("[Job] Purge finished", "removed", removed)
		return nil
	})

	logger.Info("Scheduled recurring jobs", "retention_days", cfg.RetentionDays)
}
