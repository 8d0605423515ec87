package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"orderhub/internal/cache"
	"orderhub/internal/config"
	"orderhub/internal/handlers"
	"orderhub/internal/idgen"
	"orderhub/internal/models"
	"orderhub/internal/repositories"
	"orderhub/internal/services"
	"orderhub/pkg/rabbitmq"
)

func main() {
	zlog, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer zlog.Sync()

	cfg := config.Load()

	// --- Relational store ---
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := db.AutoMigrate(&models.AppUser{}, &models.SystemLog{}, &models.Order{}, &models.OrderItem{}); err != nil {
		zlog.Fatal("failed to migrate schema", zap.Error(err))
	}

	// --- Cache store ---
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelPing()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		zlog.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer redisClient.Close()

	cacheStore := cache.NewRedisStore(redisClient)
	generator := idgen.NewRedisGenerator(redisClient)

	// --- RabbitMQ (optional: staging works without it) ---
	var publisher rabbitmq.Publisher
	mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
	if err != nil {
		zlog.Warn("RabbitMQ unavailable, order events disabled", zap.Error(err))
	} else {
		publisher = mqClient
		defer mqClient.Close()
	}

	// --- Repositories ---
	orderRepo := repositories.NewGORMOrderRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)
	logRepo := repositories.NewGORMLogRepository(db)

	// --- Services ---
	orderService := services.NewOrderService(cacheStore, generator, orderRepo, publisher, zlog)
	userService := services.NewUserService(userRepo, logRepo)
	logService := services.NewLogService(logRepo)

	// --- Handlers ---
	orderHandler := handlers.NewOrderHandler(orderService, zlog)
	userHandler := handlers.NewUserHandler(userService, zlog)
	logHandler := handlers.NewLogHandler(logService, zlog)

	// --- Fiber app ---
	app := fiber.New()
	app.Use(logger.New())

	apiV1 := app.Group("/api/v1")
	orderHandler.RegisterRoutes(apiV1)
	userHandler.RegisterRoutes(apiV1)
	logHandler.RegisterRoutes(apiV1)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start HTTP server with graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		zlog.Info("starting server", zap.String("port", cfg.AppPort))
		if err := app.Listen(cfg.AppPort); err != nil {
			zlog.Fatal("server failed to start", zap.Error(err))
		}
	}()

	<-quit
	zlog.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		zlog.Error("error during shutdown", zap.Error(err))
	}
	zlog.Info("server stopped")
}
