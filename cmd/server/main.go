package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"golang.org/x/time/rate"

	"github.com/improv-tovarisch/backend/internal/config"
	"github.com/improv-tovarisch/backend/internal/handler"
	"github.com/improv-tovarisch/backend/internal/scheduler"
	"github.com/improv-tovarisch/backend/pkg/catalog"
	"github.com/improv-tovarisch/backend/pkg/gallery"
	"github.com/improv-tovarisch/backend/pkg/logger"
	"github.com/improv-tovarisch/backend/pkg/videometa"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.IsDev())
	log := logger.Log

	store := catalog.NewStore(cfg.FormatsDir)
	engine := catalog.NewEngine()

	// Redis по конфигу, иначе кэш в памяти
	var cache videometa.Cache
	if cfg.RedisURL != "" {
		redisCache, err := videometa.NewRedisCache(cfg.RedisURL, cfg.MetadataTTL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		defer redisCache.Close()
		log.Info().Msg("redis metadata cache connected")
		cache = redisCache
	} else {
		cache = videometa.NewMemoryCache(cfg.MetadataTTL)
	}

	// YouTube и VK банят частые запросы, держим исходящий темп скромным
	fetcher := videometa.NewFetcher(
		videometa.WithTimeout(cfg.FetchTimeout),
		videometa.WithCache(cache),
		videometa.WithRateLimit(rate.NewLimiter(rate.Every(500*time.Millisecond), 2)),
	)
	gallerySvc := gallery.NewService(fetcher)
	sources := gallery.DefaultSources()

	formatHandler := handler.NewFormatHandler(store, engine)
	videoHandler := handler.NewVideoHandler(gallerySvc, sources)

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Error().Err(err).Str("path", c.Path()).Msg("request error")
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(cors.New())

	api := app.Group("/api")
	api.Get("/formats", formatHandler.List)
	api.Get("/formats/player-options", formatHandler.PlayerOptions)
	api.Get("/formats/:id", formatHandler.Get)
	api.Get("/videos", videoHandler.List)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched, err := scheduler.New(gallerySvc, sources, cfg.WarmInterval)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create scheduler")
	}
	if err := sched.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to start scheduler")
	}
	defer sched.Stop()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info().Msg("shutting down")
		cancel()
		app.Shutdown()
	}()

	log.Info().Str("port", cfg.Port).Str("formats", cfg.FormatsDir).Msg("backend started")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
