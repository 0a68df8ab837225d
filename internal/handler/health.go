package handler

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
    Ping(ctx context.Context) error
}

// PingFunc adapts a function such as (*sql.DB).PingContext to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// Health reports "ok" when every dependency answers.  Nil checks are
// skipped so optional dependencies such as Redis can be left out.
type Health struct {
    Checks map[string]Pinger
}

// Healthz handles GET /healthz.
func (h *Health) Healthz(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
    defer cancel()

    status := http.StatusOK
    deps := make(map[string]string, len(h.Checks))
    for name, p := range h.Checks {
        if p == nil {
            continue
        }
        if err := p.Ping(ctx); err != nil {
            deps[name] = err.Error()
            status = http.StatusServiceUnavailable
            continue
        }
        deps[name] = "ok"
    }
    state := "ok"
    if status != http.StatusOK {
        state = "degraded"
    }
    return c.JSON(status, echo.Map{"status": state, "deps": deps})
}
