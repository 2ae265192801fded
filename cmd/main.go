package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"prediction-engine/internal/auth"
	"prediction-engine/internal/config"
	"prediction-engine/internal/database"
	"prediction-engine/internal/engine"
	"prediction-engine/internal/handlers"
	"prediction-engine/internal/logger"
	"prediction-engine/internal/metrics"
	"prediction-engine/internal/repository"
	"prediction-engine/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Server.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	// Initialize JWT
	auth.InitJWT(cfg.App.JWTSecret)

	// Connect to database
	if err := database.Connect(cfg.GetDSN()); err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run migrations
	if err := database.AutoMigrate(); err != nil {
		zlog.Fatal("failed to run migrations", zap.Error(err))
	}

	db := database.GetDB()

	// Ledger lives on Redis when configured, on the relational store
	// otherwise.
	var ledgerStore repository.LedgerStore = repository.NewGormLedgerStore(db)
	if cfg.Redis.Addr != "" {
		client, err := repository.ConnectRedis(cfg.Redis.Addr)
		if err != nil {
			zlog.Fatal("failed to connect to redis", zap.Error(err))
		}
		ledgerStore = repository.NewRedisLedgerStore(client)
		zlog.Info("ledger store: redis", zap.String("addr", cfg.Redis.Addr))
	} else {
		zlog.Info("ledger store: postgres")
	}

	// Initialize repositories
	selectionRepo := repository.NewSelectionRepository(db)
	accumulatorRepo := repository.NewAccumulatorRepository(db)

	// Initialize services
	authService := services.NewAuthService(db, zlog)
	predictionService := services.NewPredictionService(
		selectionRepo,
		accumulatorRepo,
		engine.DefaultArchetypes(),
		cfg.Engine.ValueThreshold,
		zlog,
	)
	ledgerService := services.NewLedgerService(ledgerStore, zlog)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	selectionHandler := handlers.NewSelectionHandler(predictionService)
	accumulatorHandler := handlers.NewAccumulatorHandler(predictionService)
	ledgerHandler := handlers.NewLedgerHandler(ledgerService)

	// Set up Gin router
	if cfg.Server.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	// CORS middleware
	allowedOrigins := []string{
		"http://localhost:3000",
		"http://localhost:5173",
		"http://127.0.0.1:3000",
		"http://127.0.0.1:5173",
	}
	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Prometheus metrics
	router.GET("/metrics", metrics.Handler())

	// Authentication routes (public)
	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/login", authHandler.Login)
	}

	// Authenticated /auth/me route
	authProtected := router.Group("/auth")
	authProtected.Use(auth.AuthMiddleware())
	{
		authProtected.GET("/me", authHandler.GetMe)
	}

	// Public read path: anonymous viewers browse as free tier, subscribers
	// are recognized when a token is present.
	public := router.Group("/api")
	public.Use(auth.OptionalAuthMiddleware())
	{
		public.GET("/selections", selectionHandler.GetSelections)
		public.GET("/selections/value", selectionHandler.GetValueBets)
		public.GET("/accumulators", accumulatorHandler.GetAccumulators)
		public.POST("/accumulators/combine", accumulatorHandler.Combine)
	}

	// API routes (protected)
	api := router.Group("/api")
	api.Use(auth.AuthMiddleware())
	{
		api.GET("/accumulators/mine", accumulatorHandler.ListMine)

		ledgerRoutes := api.Group("/ledger")
		{
			ledgerRoutes.POST("/save/:predictionId", ledgerHandler.ToggleSave)
			ledgerRoutes.POST("/stage/:predictionId", ledgerHandler.ToggleStage)
			ledgerRoutes.GET("/saved", ledgerHandler.ListSaved)
			ledgerRoutes.GET("/staged", ledgerHandler.ListStaged)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		zlog.Info("server starting", zap.String("port", cfg.Server.Port))

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server")

	// Graceful shutdown with 5 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zlog.Fatal("server forced to shutdown", zap.Error(err))
	}

	zlog.Info("server exited")
}
