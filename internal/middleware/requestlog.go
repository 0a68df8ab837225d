package middleware

import (
    "log/slog"
    "time"

    "github.com/google/uuid"
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/dacha-booking/internal/logger"
)

// RequestLogger tags each request with a trace id (the incoming X-Trace-ID
// or a fresh UUID), echoes it back, puts a request-scoped logger into the
// request context and logs one line per request.
func RequestLogger(base *slog.Logger) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            req := c.Request()
            id := req.Header.Get(logger.TraceHeader)
            if _, err := uuid.Parse(id); err != nil {
                id = uuid.NewString()
            }
            c.Response().Header().Set(logger.TraceHeader, id)

            l := base.With("trace_id", id)
            ctx := logger.WithLogger(logger.WithTraceID(req.Context(), id), l)
            c.SetRequest(req.WithContext(ctx))

            start := time.Now()
            err := next(c)
            if err != nil {
                c.Error(err)
            }

            status := c.Response().Status
            attrs := []any{
                "method", req.Method,
                "path", c.Path(),
                "status", status,
                "duration_ms", time.Since(start).Milliseconds(),
                "cache", c.Response().Header().Get("X-Cache"),
            }
            switch {
            case status >= 500:
                l.Error("request", append(attrs, "error", err)...)
            case status >= 400:
                l.Warn("request", attrs...)
            default:
                l.Info("request", attrs...)
            }
            return nil
        }
    }
}
