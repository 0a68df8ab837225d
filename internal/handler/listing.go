package handler

import (
    "context"
    "encoding/json"
    "errors"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/dacha-booking/internal/logger"
    "github.com/iliyamo/dacha-booking/internal/model"
    "github.com/iliyamo/dacha-booking/internal/repository"
    "github.com/iliyamo/dacha-booking/internal/validation"
)

// ListingStore is the listing storage used by ListingHandler.
// *repository.ListingRepo implements it.
type ListingStore interface {
    List(ctx context.Context, q model.ListingQuery) ([]model.Listing, int64, error)
    GetByID(ctx context.Context, id int64) (model.Listing, error)
    Create(ctx context.Context, l *model.Listing) error
    Update(ctx context.Context, l *model.Listing) error
    Delete(ctx context.Context, id int64) error
}

// Invalidator drops cached public responses after a write.
type Invalidator interface {
    Bump(ctx context.Context) error
}

// ListingHandler serves the public listing endpoints and the admin CRUD.
type ListingHandler struct {
    Listings ListingStore
    Cache    Invalidator
}

func NewListingHandler(s ListingStore, cache Invalidator) *ListingHandler {
    return &ListingHandler{Listings: s, Cache: cache}
}

// List handles GET /listings/?size&page&search&status&region.
func (h *ListingHandler) List(c echo.Context) error {
    page, size := pageParams(c)
    q := model.ListingQuery{
        Page:   page,
        Size:   size,
        Search: strings.TrimSpace(c.QueryParam("search")),
        Status: c.QueryParam("status"),
        Region: model.Region(c.QueryParam("region")),
    }
    if q.Region != "" && !q.Region.Valid() {
        return detail(c, http.StatusBadRequest, "unknown region")
    }
    if q.Status != "" && q.Status != model.ListingActive && q.Status != model.ListingHidden {
        return detail(c, http.StatusBadRequest, "unknown status")
    }

    ctx, cancel := dbCtx(c)
    defer cancel()
    items, total, err := h.Listings.List(ctx, q)
    if err != nil {
        logger.FromContext(c.Request().Context()).Error("list listings", "error", err)
        return detail(c, http.StatusInternalServerError, "database error")
    }
    out := make([]listingJSON, 0, len(items))
    for _, l := range items {
        out = append(out, toListingJSON(l))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out, "pages": pageCount(total, size)})
}

// Get handles GET /listings/:id.
func (h *ListingHandler) Get(c echo.Context) error {
    id, ok := parseID(c, "id")
    if !ok {
        return detail(c, http.StatusNotFound, "listing not found")
    }
    ctx, cancel := dbCtx(c)
    defer cancel()
    l, err := h.Listings.GetByID(ctx, id)
    if errors.Is(err, repository.ErrListingNotFound) {
        return detail(c, http.StatusNotFound, "listing not found")
    }
    if err != nil {
        logger.FromContext(c.Request().Context()).Error("get listing", "listing_id", id, "error", err)
        return detail(c, http.StatusInternalServerError, "database error")
    }
    return c.JSON(http.StatusOK, toListingJSON(l))
}

// Create handles POST /admin/listings/.
func (h *ListingHandler) Create(c echo.Context) error {
    body, ok, err := readValidated(c, validation.ListingWrite)
    if !ok {
        return err
    }
    var req listingWriteReq
    if err := json.Unmarshal(body, &req); err != nil {
        return detail(c, http.StatusBadRequest, "invalid body")
    }
    l := req.toModel(0)

    ctx, cancel := dbCtx(c)
    defer cancel()
    if err := h.Listings.Create(ctx, &l); err != nil {
        logger.FromContext(c.Request().Context()).Error("create listing", "error", err)
        return detail(c, http.StatusInternalServerError, "create listing failed")
    }
    h.invalidate(c)
    return c.JSON(http.StatusCreated, toListingJSON(l))
}

// Update handles PUT /admin/listings/:id with a full listing body.
func (h *ListingHandler) Update(c echo.Context) error {
    id, ok := parseID(c, "id")
    if !ok {
        return detail(c, http.StatusNotFound, "listing not found")
    }
    body, ok, err := readValidated(c, validation.ListingWrite)
    if !ok {
        return err
    }
    var req listingWriteReq
    if err := json.Unmarshal(body, &req); err != nil {
        return detail(c, http.StatusBadRequest, "invalid body")
    }
    l := req.toModel(id)

    ctx, cancel := dbCtx(c)
    defer cancel()
    err = h.Listings.Update(ctx, &l)
    if errors.Is(err, repository.ErrListingNotFound) {
        return detail(c, http.StatusNotFound, "listing not found")
    }
    if err != nil {
        logger.FromContext(c.Request().Context()).Error("update listing", "listing_id", id, "error", err)
        return detail(c, http.StatusInternalServerError, "update listing failed")
    }
    h.invalidate(c)
    return c.JSON(http.StatusOK, toListingJSON(l))
}

// Delete handles DELETE /admin/listings/:id.
func (h *ListingHandler) Delete(c echo.Context) error {
    id, ok := parseID(c, "id")
    if !ok {
        return detail(c, http.StatusNotFound, "listing not found")
    }
    ctx, cancel := dbCtx(c)
    defer cancel()
    switch err := h.Listings.Delete(ctx, id); {
    case errors.Is(err, repository.ErrListingNotFound):
        return detail(c, http.StatusNotFound, "listing not found")
    case errors.Is(err, repository.ErrConflict):
        return detail(c, http.StatusConflict, "listing has bookings; hide it instead")
    case err != nil:
        logger.FromContext(c.Request().Context()).Error("delete listing", "listing_id", id, "error", err)
        return detail(c, http.StatusInternalServerError, "delete listing failed")
    }
    h.invalidate(c)
    return c.NoContent(http.StatusNoContent)
}

func (h *ListingHandler) invalidate(c echo.Context) {
    if h.Cache == nil {
        return
    }
    if err := h.Cache.Bump(c.Request().Context()); err != nil {
        logger.FromContext(c.Request().Context()).Warn("cache invalidation failed", "error", err)
    }
}
