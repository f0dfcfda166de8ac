package main

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"go.uber.org/zap"

	"taskbase/configs"
	v1 "taskbase/internal/api/v1"
	"taskbase/internal/api/v1/handlers"
	"taskbase/internal/auth"
	"taskbase/internal/cache"
	"taskbase/internal/middleware"
	"taskbase/internal/repository"
	"taskbase/pkg/database"
	"taskbase/pkg/logger"
)

func main() {
	logger.InitLoggers()
	defer logger.SyncLoggers()
	logger.SystemLogger.Info("Starting application", zap.String("time", time.Now().Format(time.RFC3339)))

	cfg := configs.LoadConfig()

	db := database.ConnectDB(cfg)
	defer db.Close()
	logger.SystemLogger.Info("Database Connected")

	if err := repository.CreateSchema(db); err != nil {
		logger.ErrorLogger.Error("Error creating schema", zap.Error(err))
		return
	}

	redisClient := database.ConnectRedis(cfg)
	defer redisClient.Close()

	repo := repository.NewPostgres(db)
	issuer := auth.NewIssuer([]byte(cfg.JWTSecret))
	h := handlers.New(repo, repo, cache.NewRedis(redisClient), issuer)

	app := fiber.New()

	app.Use(middleware.ErrorHandler())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
	}))

	v1.RegisterRoutes(app, h, issuer)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.SystemLogger.Info("Application ready", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		logger.ErrorLogger.Error("Application failed to start", zap.Error(err))
	}
}
