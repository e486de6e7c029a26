package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinical-trials-api/config"
	"clinical-trials-api/controllers"
	"clinical-trials-api/middleware"
	"clinical-trials-api/observability"
	"clinical-trials-api/routes"
	"clinical-trials-api/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	logFile, _ := config.InitLogging(cfg.LogFile)
	if logFile != nil {
		defer logFile.Close()
	}
	logger := config.NewLogger(cfg)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to the store; the API cannot serve without it
	st, err := config.OpenStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	shutdownTracing := func(context.Context) error { return nil }
	if cfg.TracingEnabled {
		shutdownTracing, err = observability.InitTracing(ctx, logger, observability.TracingConfig{
			ServiceName: cfg.ServiceName,
			Environment: cfg.Environment,
		})
		if err != nil {
			logger.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	// Set Gin mode
	if cfg.GinMode == "release" || cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.TracingEnabled {
		router.Use(otelgin.Middleware(cfg.ServiceName))
	}
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	if cfg.MetricsEnabled {
		router.Use(middleware.Metrics())
		router.GET("/metrics", gin.WrapH(observability.Handler()))
	}
	if cfg.RateLimitRPS > 0 {
		router.Use(middleware.RateLimitMiddleware(middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)))
	}

	applicationService := services.NewApplicationService(st, logger)
	applicationController := controllers.NewApplicationController(applicationService, logger)
	routes.SetupRoutes(router, st, applicationController)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting",
			zap.String("port", cfg.Port),
			zap.Strings("allowed_origins", cfg.AllowedOrigins),
			zap.Bool("production", cfg.IsProduction()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
	if err := st.Close(shutdownCtx); err != nil {
		logger.Error("Failed to close database", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("Failed to flush traces", zap.Error(err))
	}
}
