// @title Practice Quest API
// @version 1.0
// @description Gamification engine for deliberate practice: XP, levels, streaks, badges and gems.
// @termsOfService http://swagger.io/terms/
// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "practice-quest/cmd/api/docs"
	"practice-quest/internal/adapter"
	"practice-quest/internal/adapter/feedback"
	"practice-quest/internal/cache"
	"practice-quest/internal/config"
	"practice-quest/internal/database"
	"practice-quest/internal/domain"
	"practice-quest/internal/handler"
	"practice-quest/internal/logger"
	"practice-quest/internal/metrics"
	"practice-quest/internal/middleware"
	"practice-quest/internal/repository"
	"practice-quest/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		// Process request
		err := c.Next()

		// Log request details
		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	loc, err := cfg.Gamification.Location()
	if err != nil {
		appLogger.Fatal("Invalid gamification timezone", zap.Error(err))
	}
	rules := cfg.Gamification.Rules()
	metrics.Init()

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	// Connect to database
	db, err := database.Connect(startupCtx, cfg)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Redis backs the stats cache, the feedback quota and the rate limiter
	redisClient, err := cache.NewRedisClient(startupCtx, cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Successfully connected to Redis")
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)

	// Initialize repositories
	txManager := repository.NewTransactionManagerAdapter(db)
	statsRepo := repository.NewStatsRepository(db)
	itemRepo := repository.NewPracticeItemRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	badgeRepo := repository.NewBadgeRepository(db)
	userBadgeRepo := repository.NewUserBadgeRepository(db)
	gemRepo := repository.NewGemTransactionRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	// Initialize services
	authService, err := service.NewAuthService(cfg.Auth)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}
	ledger := service.NewGemLedgerService(txManager, statsRepo, gemRepo)
	streaks := service.NewStreakService(txManager, statsRepo, ledger, cacheAdapter, cfg.Gamification, loc)
	badges := service.NewBadgeEngine(badgeRepo, userBadgeRepo, ledger, rules)
	recorder := service.NewSessionRecorder(txManager, statsRepo, itemRepo, sessionRepo, streaks, badges, cacheAdapter, rules, loc)
	stats := service.NewStatsService(txManager, statsRepo, cacheAdapter, rules, cfg.CacheTTLs, cfg.Gamification.LeaderboardSize)
	items := service.NewPracticeItemService(itemRepo)
	admin := service.NewAdminService(txManager, adminRepo, ledger, cacheAdapter)

	var generator domain.FeedbackGenerator
	if cfg.Feedback.Enabled {
		appLogger.Info("Initializing Ollama feedback generator",
			zap.String("server_url", cfg.Feedback.OllamaServerURL),
			zap.String("model", cfg.Feedback.Model))
		generator, err = feedback.NewOllamaFeedbackGenerator(cfg.Feedback)
		if err != nil {
			appLogger.Fatal("Failed to create feedback generator", zap.Error(err))
		}
	}
	feedbackService := service.NewFeedbackService(generator, sessionRepo, itemRepo, statsRepo, cacheAdapter, cfg.Feedback, loc)

	scheduler, err := service.NewScheduler(streaks, loc)
	if err != nil {
		appLogger.Fatal("Failed to create scheduler", zap.Error(err))
	}
	scheduler.Start()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())
	app.Use(middleware.Metrics())

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/health", handler.NewHealthHandler(db, cacheAdapter).Health)

	limiter := middleware.RateLimiter(cfg.RateLimit, adapter.NewRedisLimiterStorage(redisClient))
	handler.RegisterRoutes(app.Group("/api"), handler.Handlers{
		Sessions:      handler.NewSessionHandler(recorder, feedbackService),
		Users:         handler.NewUserHandler(stats, streaks, badges, ledger, authService),
		PracticeItems: handler.NewPracticeItemHandler(items),
		Admin:         handler.NewAdminHandler(badges, admin),
	}, authService, limiter)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	if err := scheduler.Shutdown(); err != nil {
		appLogger.Error("Scheduler shutdown failed", zap.Error(err))
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
