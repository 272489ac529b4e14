package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/catalog/backend/internal/application/catalog"
	"github.com/catalog/backend/internal/infrastructure/cache"
	"github.com/catalog/backend/internal/infrastructure/config"
	"github.com/catalog/backend/internal/infrastructure/event"
	"github.com/catalog/backend/internal/infrastructure/logger"
	"github.com/catalog/backend/internal/infrastructure/metrics"
	"github.com/catalog/backend/internal/infrastructure/pdf"
	"github.com/catalog/backend/internal/infrastructure/persistence"
	"github.com/catalog/backend/internal/infrastructure/storage"
	"github.com/catalog/backend/internal/infrastructure/workflow"
	"github.com/catalog/backend/internal/interfaces/http/handler"
	"github.com/catalog/backend/internal/interfaces/http/middleware"
	"github.com/catalog/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting catalog backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	jobRepo := persistence.NewGormCatalogJobRepository(db.DB)
	templateRepo := persistence.NewGormTemplateRepository(db.DB)

	// Blob storage for logos, intermediate renders and finished PDFs
	blobStore, err := storage.NewS3BlobStore(&cfg.Storage, storage.WithLogger(log))
	if err != nil {
		log.Fatal("Failed to initialize blob storage", zap.Error(err))
	}
	{
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := blobStore.EnsureBucket(ctx); err != nil {
			log.Warn("Could not ensure storage bucket, uploads may fail", zap.Error(err))
		}
		cancel()
	}

	// Client for the external image generation workflows
	workflows, err := workflow.NewClient(&cfg.Workflow, workflow.WithLogger(log))
	if err != nil {
		log.Fatal("Failed to initialize workflow client", zap.Error(err))
	}

	// PDF engine and catalog assembler
	pdfEngine := pdf.NewEngine(cfg.Branding, log)
	assembler := pdf.NewAssembler(pdfEngine, blobStore, log)

	// Job status snapshot cache (Redis when enabled, in-memory otherwise)
	cacheFactory := cache.NewSnapshotCacheFactory(cfg.Redis, cache.WithLogger(log))
	snapshotCache, err := cacheFactory.CreateCache()
	if err != nil {
		log.Fatal("Failed to initialize snapshot cache", zap.Error(err))
	}

	// Initialize event bus and job lifecycle handlers
	eventBus := event.NewInMemoryEventBus(log)
	auditHandler := catalogapp.NewJobAuditHandler(log)
	eventBus.Subscribe(auditHandler)
	log.Info("Event handlers registered",
		zap.Strings("job_audit_events", auditHandler.EventTypes()),
	)

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Prometheus metrics for the generation pipeline
	catalogMetrics := metrics.NewCatalogMetrics()

	// Initialize application services
	catalogService := catalogapp.NewCatalogService(
		jobRepo,
		templateRepo,
		blobStore,
		workflows,
		assembler,
		log,
		catalogapp.WithSnapshotCache(snapshotCache),
		catalogapp.WithEventPublisher(eventBus),
		catalogapp.WithMetrics(catalogMetrics),
		catalogapp.WithJobTimeout(cfg.Jobs.Timeout),
		catalogapp.WithSnapshotTTL(cfg.Jobs.SnapshotTTL),
	)
	templateService := catalogapp.NewTemplateService(templateRepo, log)

	// Initialize HTTP handlers
	catalogHandler := handler.NewCatalogHandler(catalogService)
	templateHandler := handler.NewTemplateHandler(templateService)
	industryHandler := handler.NewIndustryHandler()
	systemHandler := handler.NewSystemHandler(db)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size (logos arrive base64-inlined)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// HTTP metrics share the pipeline metrics registry
	if cfg.Metrics.Enabled {
		engine.Use(middleware.HTTPMetrics(catalogMetrics.Registry()))
		engine.GET(cfg.Metrics.Path, gin.WrapH(catalogMetrics.Handler()))
		log.Info("Metrics enabled", zap.String("path", cfg.Metrics.Path))
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", systemHandler.Health)

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(catalogHandler)
	r.Register(templateHandler)
	r.Register(industryHandler)
	r.Register(systemHandler)
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	// Let in-flight generation jobs reach a terminal status before exit
	log.Info("Waiting for running generation jobs...")
	catalogService.Wait()

	log.Info("Server exited gracefully")
}
