// Package router wires the HTTP handlers and middleware onto an Echo
// instance.
package router

import (
    "log/slog"

    "github.com/labstack/echo/v4"
    echomw "github.com/labstack/echo/v4/middleware"

    "github.com/iliyamo/dacha-booking/internal/handler"
    "github.com/iliyamo/dacha-booking/internal/logger"
    "github.com/iliyamo/dacha-booking/internal/middleware"
    "github.com/iliyamo/dacha-booking/internal/utils"
)

// Deps are the handlers and cross-cutting middleware Register mounts.
// Cache and RateLimit may be nil.
type Deps struct {
    Log         *slog.Logger
    CORSOrigins []string
    JWTSecret   string

    Health    *handler.Health
    Listings  *handler.ListingHandler
    Bookings  *handler.BookingHandler
    Amenities *handler.AmenityHandler
    Auth      *handler.AuthHandler

    Cache     *middleware.ResponseCache
    RateLimit echo.MiddlewareFunc
}

// Register mounts every route on e.
//
//  public:  GET /healthz, GET /listings/, GET /listings/:id, GET /amenities/
//  limited: POST /bookings/, POST /auth/login
//  admin:   PUT /bookings/:id, /admin/listings/*, /admin/bookings/, /admin/amenities/*
func Register(e *echo.Echo, d Deps) {
    origins := d.CORSOrigins
    if len(origins) == 0 {
        origins = []string{"*"}
    }
    e.Use(echomw.Recover())
    e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
        AllowOrigins:  origins,
        AllowHeaders:  []string{echo.HeaderContentType, echo.HeaderAuthorization, logger.TraceHeader},
        ExposeHeaders: []string{logger.TraceHeader, "X-Cache", "Retry-After"},
    }))
    e.Use(middleware.RequestLogger(d.Log))

    e.GET("/healthz", d.Health.Healthz)

    limit := d.RateLimit
    if limit == nil {
        limit = func(next echo.HandlerFunc) echo.HandlerFunc { return next }
    }
    cached := func(next echo.HandlerFunc) echo.HandlerFunc { return next }
    if d.Cache != nil {
        cached = d.Cache.Middleware()
    }

    e.GET("/listings/", d.Listings.List, cached)
    e.GET("/listings/:id", d.Listings.Get, cached)
    e.GET("/amenities/", d.Amenities.List, cached)

    e.POST("/bookings/", d.Bookings.Create, limit)
    e.POST("/auth/login", d.Auth.Login, limit)

    admin := []echo.MiddlewareFunc{middleware.JWTAuth(d.JWTSecret), middleware.RequireRole(utils.RoleAdmin)}
    e.PUT("/bookings/:id", d.Bookings.UpdateStatus, admin...)

    g := e.Group("/admin", admin...)
    g.POST("/listings/", d.Listings.Create)
    g.PUT("/listings/:id", d.Listings.Update)
    g.DELETE("/listings/:id", d.Listings.Delete)
    g.GET("/bookings/", d.Bookings.List)
    g.POST("/amenities/", d.Amenities.Create)
    g.DELETE("/amenities/:id", d.Amenities.Delete)
}
