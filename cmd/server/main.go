package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/reelhub/media-rental/internal/config"
	"github.com/reelhub/media-rental/internal/database"
	"github.com/reelhub/media-rental/internal/handler"
	"github.com/reelhub/media-rental/internal/lifecycle"
	"github.com/reelhub/media-rental/internal/middleware"
	"github.com/reelhub/media-rental/internal/queue"
	"github.com/reelhub/media-rental/internal/repository"
	"github.com/reelhub/media-rental/internal/router"
	"github.com/reelhub/media-rental/internal/validation"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the env directly
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("ensure schema: %v", err)
	}
	cancel()

	users := repository.NewUserRepo(db)
	videos := repository.NewVideoRepo(db)
	rentals := repository.NewRentalRepo(db)
	messages := repository.NewMessageRepo(db)

	events := queue.NewPublisher()
	lc := lifecycle.NewController(rentals, videos, events)

	// Redis is optional; with no client both middlewares are skipped.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; response cache and rate limiting disabled")
	}
	var cacheMW, rateMW echo.MiddlewareFunc
	if rdb != nil {
		cacheMW = middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
		rateMW = middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	}

	go func() {
		if err := queue.StartActivityConsumer(); err != nil {
			log.Printf("activity consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.Validator = validation.New()
	router.RegisterRoutes(e, router.Deps{
		JWTSecret: cfg.JWTSecret,
		Auth:      handler.NewAuthHandler(cfg, users),
		Users:     handler.NewUserHandler(cfg, users),
		Videos:    handler.NewVideoHandler(videos, lc),
		Rentals:   handler.NewRentalHandler(rentals, videos, lc),
		Messages:  handler.NewMessageHandler(messages, events),
		Upload:    handler.NewUploadHandler(cfg.UploadDir),
		Cache:     cacheMW,
		RateLimit: rateMW,
		UploadDir: cfg.UploadDir,
	})

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
