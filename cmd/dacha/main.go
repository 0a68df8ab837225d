// Command dacha is the terminal front end of the dacha booking service.
//
//  dacha search [-region r] [-guests n] [-rooms n] [-min-price p] [-max-price p] [-amenities a,b] [-sort s] [-page n]
//  dacha show <id>
//  dacha fav <id>
//  dacha favs
//  dacha lang [uz|ru|en]
//  dacha amenities
//  dacha book <id> -in 2026-07-01 -out 2026-07-03 -guests 2 -name Aziz -phone 901234567
//  dacha admin login -user u -pass p
//  dacha admin status <booking-id> <new|confirmed|cancelled|completed>
//
// Without DACHA_API_URL the bundled demo catalog is used and bookings are
// not possible.
package main

import (
    "context"
    "fmt"
    "log/slog"
    "net/http"
    "os"
    "os/signal"

    "github.com/google/uuid"

    "github.com/iliyamo/dacha-booking/internal/apiclient"
    "github.com/iliyamo/dacha-booking/internal/catalog"
    "github.com/iliyamo/dacha-booking/internal/config"
    "github.com/iliyamo/dacha-booking/internal/kv"
    "github.com/iliyamo/dacha-booking/internal/logger"
    "github.com/iliyamo/dacha-booking/internal/session"
)

func main() {
    config.LoadEnvFile()
    cfg := config.LoadClientConfig()

    logCfg := config.LoadLogConfig()
    if os.Getenv("LOG_LEVEL") == "" {
        logCfg.Level = slog.LevelWarn
    }
    lg, closer, err := logger.New(logCfg)
    if err != nil {
        fmt.Fprintln(os.Stderr, "fluent sink disabled:", err)
    }
    defer closer.Close()

    ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
    defer stop()
    ctx = logger.WithTraceID(ctx, uuid.NewString())

    storage, cleanup, err := openStorage(cfg, lg)
    if err != nil {
        fmt.Fprintln(os.Stderr, err)
        os.Exit(1)
    }
    defer cleanup()

    sess, err := session.Open(ctx, storage, lg)
    if err != nil {
        fmt.Fprintln(os.Stderr, err)
        os.Exit(1)
    }

    a := &app{out: os.Stdout, log: lg, session: sess}
    if cfg.APIURL != "" {
        opts := []apiclient.Option{
            apiclient.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
            apiclient.WithLogger(lg),
        }
        a.api = apiclient.New(cfg.APIURL, opts...)
        a.bookings = a.api
        if cfg.AdminToken != "" {
            a.adminAPI = apiclient.New(cfg.APIURL, append(opts, apiclient.WithToken(cfg.AdminToken))...)
        }
        a.src = catalog.RemoteSource{Client: a.api}
    } else {
        a.src = catalog.NewFixture(catalog.Demo())
    }
    a.browser = catalog.NewBrowser(a.src, catalog.ParseMode(cfg.CatalogMode), lg, catalog.WithLocalLimit(cfg.LocalLimit))

    if err := a.run(ctx, os.Args[1:]); err != nil {
        fmt.Fprintln(os.Stderr, "dacha:", err)
        os.Exit(1)
    }
}

// openStorage picks the state backend.  A redis store that cannot be reached
// falls back to the file store.
func openStorage(cfg config.ClientConfig, lg *slog.Logger) (kv.Storage, func(), error) {
    if cfg.StateStore == "redis" {
        if rdb := config.NewRedisClient(); rdb != nil {
            return kv.NewRedis(rdb, cfg.StatePrefix), func() { _ = rdb.Close() }, nil
        }
        lg.Warn("redis state store unreachable, using files", "dir", cfg.StateDir)
    }
    f, err := kv.NewFile(cfg.StateDir)
    if err != nil {
        return nil, nil, err
    }
    return f, func() {}, nil
}
