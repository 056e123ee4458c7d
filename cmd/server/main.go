package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/venue-seatmap/internal/config"
	"github.com/iliyamo/venue-seatmap/internal/database"
	"github.com/iliyamo/venue-seatmap/internal/handler"
	"github.com/iliyamo/venue-seatmap/internal/logger"
	"github.com/iliyamo/venue-seatmap/internal/middleware"
	"github.com/iliyamo/venue-seatmap/internal/queue"
	"github.com/iliyamo/venue-seatmap/internal/repository"
	"github.com/iliyamo/venue-seatmap/internal/router"
	"github.com/iliyamo/venue-seatmap/internal/selection"
	"github.com/iliyamo/venue-seatmap/internal/service"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		logger.Error("failed to read .env", "error", err)
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	lcfg := logger.DefaultConfig()
	lcfg.Level = logger.LogLevel(cfg.LogLevel)
	lcfg.JSON = cfg.LogJSON
	log := logger.Init(lcfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.ContextWithLogger(ctx, log)

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log logger.Logger) error {
	tiers, err := config.LoadPriceTiers(cfg.PriceFile)
	if err != nil {
		return err
	}

	var store service.DocumentStore
	if cfg.DBEnabled() {
		db, err := database.Open(ctx, cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			return err
		}
		defer db.Close()
		store = repository.NewVenueRepo(db)
		log.Info("venue store: mysql", "host", cfg.DBHost, "db", cfg.DBName)
	} else {
		store = repository.NewVenueFileRepo(cfg.VenueDir)
		log.Info("venue store: files", "dir", cfg.VenueDir)
	}

	// Redis is optional; without it responses are not cached, requests are
	// not rate limited and selections live in memory.
	var rdb *redis.Client
	if c, err := config.NewRedisClient(ctx, config.LoadRedisConfig()); err != nil {
		log.Warn("redis unavailable, continuing without it", "error", err)
	} else {
		rdb = c
		defer rdb.Close()
	}

	var pub service.Publisher
	if cfg.AMQPURL != "" {
		pub = service.AMQPPublisher{URL: cfg.AMQPURL}
	}
	catalog, err := service.NewVenueCatalog(store, config.PriceTable(tiers), cfg.CatalogSize, pub)
	if err != nil {
		return err
	}

	cacheCfg := config.LoadCacheConfig()
	invalidate := func(ctx context.Context, venueID string) {
		catalog.Invalidate(ctx, venueID)
		if n, err := middleware.PurgeVenue(ctx, rdb, cacheCfg, venueID); err != nil {
			log.Warn("response cache purge failed", "venue_id", venueID, "error", err)
		} else if n > 0 {
			log.Debug("response cache purged", "venue_id", venueID, "keys", n)
		}
	}
	if cfg.AMQPURL != "" {
		go func() {
			if err := queue.StartVenueConsumer(ctx, cfg.AMQPURL, queue.InvalidatorFunc(invalidate)); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("venue consumer stopped", "error", err)
			}
		}()
	}

	var selections selection.Store = selection.NewMemoryStore()
	if rdb != nil {
		selections = selection.NewRedisStore(rdb, cfg.SelectionTTL)
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(requestLogger(log))

	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	owner := handler.NewOwnerHandler(catalog)
	owner.Purge = func(c echo.Context, venueID string) { invalidate(c.Request().Context(), venueID) }

	router.RegisterRoutes(e)
	router.RegisterPublic(e, handler.NewPublicHandler(catalog), limiter, middleware.NewRedisCache(cacheCfg, rdb))
	router.RegisterCustomer(e, handler.NewSelectionHandler(catalog, selections, cfg.SelectionMaxSeats), cfg.JWTSecret, limiter)
	router.RegisterOwner(e, owner, cfg.JWTSecret)

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Port
		log.Info("listening", "addr", addr, "env", cfg.Env)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Info("shutting down")
	return e.Shutdown(shutdownCtx)
}

// requestLogger logs one line per request through the structured logger.
func requestLogger(log logger.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			kv := []any{"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency, "request_id", v.RequestID}
			if v.Error != nil {
				log.Error("request", append(kv, "error", v.Error)...)
				return nil
			}
			log.Info("request", kv...)
			return nil
		},
	})
}
