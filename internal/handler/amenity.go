package handler

import (
    "context"
    "errors"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/dacha-booking/internal/logger"
    "github.com/iliyamo/dacha-booking/internal/model"
    "github.com/iliyamo/dacha-booking/internal/repository"
)

type AmenityStore interface {
    ListAll(ctx context.Context) ([]model.AmenityRecord, error)
    Create(ctx context.Context, a *model.AmenityRecord) error
    Delete(ctx context.Context, id int64) error
}

type AmenityHandler struct {
    Amenities AmenityStore
    Cache     Invalidator
}

func NewAmenityHandler(s AmenityStore, cache Invalidator) *AmenityHandler {
    return &AmenityHandler{Amenities: s, Cache: cache}
}

// List handles GET /amenities/.
func (h *AmenityHandler) List(c echo.Context) error {
    ctx, cancel := dbCtx(c)
    defer cancel()
    items, err := h.Amenities.ListAll(ctx)
    if err != nil {
        logger.FromContext(c.Request().Context()).Error("list amenities", "error", err)
        return detail(c, http.StatusInternalServerError, "database error")
    }
    out := make([]amenityJSON, 0, len(items))
    for _, a := range items {
        out = append(out, amenityJSON{ID: a.ID, NameUz: a.NameUz, NameRu: a.NameRu, Icon: a.Icon})
    }
    return c.JSON(http.StatusOK, out)
}

// Create handles POST /admin/amenities/.  A missing icon is derived from the
// amenity key when name_uz is one of the known keys.
func (h *AmenityHandler) Create(c echo.Context) error {
    var req amenityJSON
    if err := c.Bind(&req); err != nil {
        return detail(c, http.StatusBadRequest, "invalid body")
    }
    a := model.AmenityRecord{
        NameUz: strings.TrimSpace(req.NameUz),
        NameRu: strings.TrimSpace(req.NameRu),
        Icon:   strings.TrimSpace(req.Icon),
    }
    if a.NameUz == "" {
        return detail(c, http.StatusBadRequest, "name_uz is required")
    }
    if a.Icon == "" {
        a.Icon = model.Amenity(a.NameUz).Icon()
    }

    ctx, cancel := dbCtx(c)
    defer cancel()
    err := h.Amenities.Create(ctx, &a)
    if errors.Is(err, repository.ErrConflict) {
        return detail(c, http.StatusConflict, "amenity already exists")
    }
    if err != nil {
        logger.FromContext(c.Request().Context()).Error("create amenity", "error", err)
        return detail(c, http.StatusInternalServerError, "create amenity failed")
    }
    h.invalidate(c)
    return c.JSON(http.StatusCreated, amenityJSON{ID: a.ID, NameUz: a.NameUz, NameRu: a.NameRu, Icon: a.Icon})
}

// Delete handles DELETE /admin/amenities/:id.
func (h *AmenityHandler) Delete(c echo.Context) error {
    id, ok := parseID(c, "id")
    if !ok {
        return detail(c, http.StatusNotFound, "amenity not found")
    }
    ctx, cancel := dbCtx(c)
    defer cancel()
    err := h.Amenities.Delete(ctx, id)
    if errors.Is(err, repository.ErrAmenityNotFound) {
        return detail(c, http.StatusNotFound, "amenity not found")
    }
    if err != nil {
        logger.FromContext(c.Request().Context()).Error("delete amenity", "amenity_id", id, "error", err)
        return detail(c, http.StatusInternalServerError, "delete amenity failed")
    }
    h.invalidate(c)
    return c.NoContent(http.StatusNoContent)
}

func (h *AmenityHandler) invalidate(c echo.Context) {
    if h.Cache == nil {
        return
    }
    if err := h.Cache.Bump(c.Request().Context()); err != nil {
        logger.FromContext(c.Request().Context()).Warn("cache invalidation failed", "error", err)
    }
}
