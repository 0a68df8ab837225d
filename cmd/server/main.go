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

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/dacha-booking/internal/config"
    "github.com/iliyamo/dacha-booking/internal/database"
    "github.com/iliyamo/dacha-booking/internal/handler"
    "github.com/iliyamo/dacha-booking/internal/logger"
    "github.com/iliyamo/dacha-booking/internal/middleware"
    "github.com/iliyamo/dacha-booking/internal/queue"
    "github.com/iliyamo/dacha-booking/internal/repository"
    "github.com/iliyamo/dacha-booking/internal/router"
    "github.com/iliyamo/dacha-booking/internal/service"
)

func main() {
    config.LoadEnvFile()
    cfg := config.Load()

    lg, closer, err := logger.New(config.LoadLogConfig())
    if err != nil {
        log.Printf("fluent sink disabled: %v", err)
    }
    defer closer.Close()
    lg = lg.With("service", "dacha-api", "env", cfg.Env)

    ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
    defer stop()

    db, err := database.Open(ctx, cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        lg.Error("database unavailable", "error", err)
        os.Exit(1)
    }
    defer db.Close()
    if cfg.EnsureSchema {
        if err := database.EnsureSchema(ctx, db); err != nil {
            lg.Error("ensure schema", "error", err)
            os.Exit(1)
        }
    }

    rdb := config.NewRedisClient()
    if rdb == nil {
        lg.Warn("redis unavailable; response cache and rate limiting disabled")
    } else {
        defer rdb.Close()
    }
    cache := middleware.NewResponseCache(config.LoadCacheConfig(), rdb, lg)

    checks := map[string]handler.Pinger{"db": handler.PingFunc(db.PingContext)}
    if rdb != nil {
        checks["redis"] = handler.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
    }

    var events handler.EventPublisher
    if cfg.EventsEnabled {
        pub := service.NewPublisher(cfg.AMQPURL, cfg.BookingQueue, lg.With("component", "publisher"))
        defer pub.Close()
        events = pub
    }

    listings := repository.NewListingRepo(db)
    bookings := handler.NewBookingHandler(repository.NewBookingRepo(db), events)
    bookings.Listings = listings

    if cfg.ConsumerEnabled {
        f, err := queue.OpenBookingLog(cfg.BookingLogPath)
        if err != nil {
            lg.Error("open booking log", "path", cfg.BookingLogPath, "error", err)
            os.Exit(1)
        }
        defer f.Close()
        c := &queue.Consumer{URL: cfg.AMQPURL, Queue: cfg.BookingQueue, Out: f, Log: lg.With("component", "consumer")}
        go func() {
            if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
                lg.Error("booking consumer stopped", "error", err)
            }
        }()
    }

    e := echo.New()
    e.HideBanner = true
    e.HidePort = true
    router.Register(e, router.Deps{
        Log:         lg,
        CORSOrigins: cfg.CORSOrigins,
        JWTSecret:   cfg.JWTSecret,
        Health:      &handler.Health{Checks: checks},
        Listings:    handler.NewListingHandler(listings, cache),
        Bookings:    bookings,
        Amenities:   handler.NewAmenityHandler(repository.NewAmenityRepo(db), cache),
        Auth: handler.NewAuthHandler(cfg.AdminUsername, cfg.AdminPasswordHash, cfg.JWTSecret,
            time.Duration(cfg.AccessTTLMin)*time.Minute),
        Cache:     cache,
        RateLimit: middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb, lg),
    })

    addr := ":" + cfg.Port
    go func() {
        lg.Info("listening", "addr", addr)
        if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
            lg.Error("server failed", "error", err)
            stop()
        }
    }()

    <-ctx.Done()
    shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()
    if err := e.Shutdown(shutdownCtx); err != nil {
        lg.Error("shutdown", "error", err)
    }
    lg.Info("stopped")
}
