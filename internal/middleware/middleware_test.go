package middleware

import (
    "bytes"
    "context"
    "encoding/json"
    "io"
    "log/slog"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/dacha-booking/internal/config"
    "github.com/iliyamo/dacha-booking/internal/logger"
    "github.com/iliyamo/dacha-booking/internal/utils"
)

func quiet() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func adminEcho(secret string) *echo.Echo {
    e := echo.New()
    g := e.Group("/admin", JWTAuth(secret), RequireRole(utils.RoleAdmin))
    g.GET("/whoami", func(c echo.Context) error {
        return c.String(http.StatusOK, subject(c))
    })
    return e
}

func detailOf(t *testing.T, body []byte) string {
    t.Helper()
    var m map[string]string
    if err := json.Unmarshal(body, &m); err != nil {
        t.Fatalf("body %q: %v", body, err)
    }
    return m["detail"]
}

func TestAdminAuth(t *testing.T) {
    admin, _ := utils.NewAccessToken("s3", "boss", utils.RoleAdmin, time.Hour)
    guest, _ := utils.NewAccessToken("s3", "someone", "GUEST", time.Hour)

    tests := []struct {
        name   string
        header string
        status int
        body   string
    }{
        {"no header", "", http.StatusUnauthorized, "missing bearer token"},
        {"garbage", "Bearer nope", http.StatusUnauthorized, "invalid token"},
        {"wrong role", "Bearer " + guest.Token, http.StatusForbidden, "forbidden"},
        {"admin", "Bearer " + admin.Token, http.StatusOK, "boss"},
    }
    e := adminEcho("s3")
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            req := httptest.NewRequest(http.MethodGet, "/admin/whoami", nil)
            if tt.header != "" {
                req.Header.Set(echo.HeaderAuthorization, tt.header)
            }
            rec := httptest.NewRecorder()
            e.ServeHTTP(rec, req)
            if rec.Code != tt.status {
                t.Fatalf("status = %d, want %d", rec.Code, tt.status)
            }
            if tt.status == http.StatusOK {
                if rec.Body.String() != tt.body {
                    t.Errorf("body = %q", rec.Body.String())
                }
                return
            }
            if got := detailOf(t, rec.Body.Bytes()); got != tt.body {
                t.Errorf("detail = %q, want %q", got, tt.body)
            }
        })
    }
}

func TestRequestLoggerTraceID(t *testing.T) {
    var buf bytes.Buffer
    base := slog.New(slog.NewJSONHandler(&buf, nil))

    e := echo.New()
    e.Use(RequestLogger(base))
    var seen string
    e.GET("/ping", func(c echo.Context) error {
        seen = logger.TraceID(c.Request().Context())
        logger.FromContext(c.Request().Context()).Info("inside")
        return c.NoContent(http.StatusNoContent)
    })

    incoming := "0b6f0f5e-9d1c-4b8f-9e61-3f3bd8c3a111"
    req := httptest.NewRequest(http.MethodGet, "/ping", nil)
    req.Header.Set(logger.TraceHeader, incoming)
    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, req)

    if seen != incoming || rec.Header().Get(logger.TraceHeader) != incoming {
        t.Errorf("trace id = %q, header %q", seen, rec.Header().Get(logger.TraceHeader))
    }
    if strings.Count(buf.String(), `"trace_id":"`+incoming+`"`) != 2 {
        t.Errorf("log lines lack trace id: %s", buf.String())
    }

    req = httptest.NewRequest(http.MethodGet, "/ping", nil)
    req.Header.Set(logger.TraceHeader, "not-a-uuid")
    rec = httptest.NewRecorder()
    e.ServeHTTP(rec, req)
    if got := rec.Header().Get(logger.TraceHeader); got == "not-a-uuid" || len(got) != 36 {
        t.Errorf("generated trace id = %q", got)
    }
}

func TestRequestLoggerHandlesErrors(t *testing.T) {
    e := echo.New()
    e.Use(RequestLogger(quiet()))
    e.GET("/boom", func(c echo.Context) error { return echo.NewHTTPError(http.StatusTeapot, "short and stout") })

    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
    if rec.Code != http.StatusTeapot {
        t.Errorf("status = %d", rec.Code)
    }
}

func TestWithoutRedisPassThrough(t *testing.T) {
    cache := NewResponseCache(config.CacheConfig{Enabled: true, Methods: map[string]bool{"GET": true}}, nil, quiet())
    e := echo.New()
    e.GET("/listings/", func(c echo.Context) error { return c.JSON(http.StatusOK, echo.Map{"items": []int{}}) },
        cache.Middleware(),
        NewTokenBucket(config.RateLimitConfig{Enabled: true, Capacity: 1}, nil, quiet()))

    for i := 0; i < 3; i++ {
        rec := httptest.NewRecorder()
        e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/listings/", nil))
        if rec.Code != http.StatusOK || rec.Header().Get("X-Cache") != "" {
            t.Fatalf("request %d: status %d, X-Cache %q", i, rec.Code, rec.Header().Get("X-Cache"))
        }
    }
    if err := cache.Bump(context.Background()); err != nil {
        t.Errorf("Bump without redis = %v", err)
    }
}

func TestPayloadRoundTrip(t *testing.T) {
    hdr := http.Header{"Content-Type": {"application/json"}}
    bs, err := encodePayload(http.StatusOK, hdr, []byte(`{"pages":1}`))
    if err != nil {
        t.Fatal(err)
    }
    status, got, body, ok := decodePayload(bs)
    if !ok || status != http.StatusOK || got.Get("Content-Type") != "application/json" || string(body) != `{"pages":1}` {
        t.Errorf("decoded %d %v %q %v", status, got, body, ok)
    }
    if _, _, _, ok := decodePayload(bs[:5]); ok {
        t.Error("short payload decoded")
    }
}

func TestCaptureWriterLimit(t *testing.T) {
    rec := httptest.NewRecorder()
    cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 4}
    _, _ = cw.Write([]byte("abc"))
    _, _ = cw.Write([]byte("def"))
    if !cw.truncated || cw.buf.Len() != 0 {
        t.Errorf("truncated = %v, buffered %d", cw.truncated, cw.buf.Len())
    }
    if rec.Body.String() != "abcdef" {
        t.Errorf("client got %q", rec.Body.String())
    }
}

func TestRateKey(t *testing.T) {
    e := echo.New()
    req := httptest.NewRequest(http.MethodPost, "/bookings/", nil)
    req.RemoteAddr = "10.0.0.7:5555"
    c := e.NewContext(req, httptest.NewRecorder())
    c.SetPath("/bookings/")

    cfg := config.RateLimitConfig{Prefix: "rl"}
    if got := rateKey(cfg, c); got != "rl:ip:10.0.0.7:route:POST /bookings/" {
        t.Errorf("default key = %q", got)
    }
    cfg.KeyStrategy = "user_route"
    if got := rateKey(cfg, c); got != "rl:user:anon:route:POST /bookings/" {
        t.Errorf("user_route key = %q", got)
    }
}
