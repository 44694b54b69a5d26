package server

import (
	"context"
	"fmt"
	"net/http"

	"moim-api/core/config"
	"moim-api/core/database"
	"moim-api/core/logger"
	"moim-api/core/middleware"
	"moim-api/modules/event"
	"moim-api/modules/fixedschedule"
	"moim-api/modules/timetable"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
)

// Run boots the HTTP server and the background worker.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.InitDB(database.DatabaseConfig{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		return err
	}

	if err := database.Migrate(context.Background(), &db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	asynqOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	asynqClient := asynq.NewClient(asynqOpt)
	defer asynqClient.Close()

	e := echo.New()
	e.HideBanner = true
	e.Validator = NewValidator()
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			logger.Info("request", "method", v.Method, "uri", v.URI, "status", v.Status)
			return nil
		},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	mw := middleware.NewMiddleware()

	event.Init(e, db, mw)
	timetable.Init(e, db, mw, redisClient, asynqClient)
	fixedschedule.Init(e, db, mw)

	go runWorker(asynqOpt, redisClient)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Starting server", "addr", addr)
	return e.Start(addr)
}

// runWorker serves background tasks (timetable cache refresh).
func runWorker(opt asynq.RedisClientOpt, redisClient *redis.Client) {
	srv := asynq.NewServer(opt, asynq.Config{
		Concurrency: 2,
	})

	mux := asynq.NewServeMux()
	timetable.RegisterWorker(mux, redisClient)

	if err := srv.Run(mux); err != nil {
		logger.Error("Worker stopped", "error", err)
	}
}
