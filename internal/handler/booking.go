package handler

import (
    "context"
    "encoding/json"
    "errors"
    "net/http"
    "strconv"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/dacha-booking/internal/booking"
    "github.com/iliyamo/dacha-booking/internal/logger"
    "github.com/iliyamo/dacha-booking/internal/model"
    "github.com/iliyamo/dacha-booking/internal/repository"
    "github.com/iliyamo/dacha-booking/internal/validation"
)

// BookingStore is the booking storage used by BookingHandler.
type BookingStore interface {
    Create(ctx context.Context, req model.BookingRequest) (model.Booking, error)
    UpdateStatus(ctx context.Context, id int64, status string) (model.Booking, error)
    List(ctx context.Context, f repository.BookingFilter) ([]model.Booking, int64, error)
}

// EventPublisher announces new bookings.  Failures never fail the request.
type EventPublisher interface {
    BookingCreated(ctx context.Context, b model.Booking) error
}

// ListingReader resolves the listing a booking is priced against.
type ListingReader interface {
    GetByID(ctx context.Context, id int64) (model.Listing, error)
}

// BookingHandler serves the booking endpoints.  When Listings is set the
// submitted total_price is recomputed and the server quote is stored.
type BookingHandler struct {
    Bookings BookingStore
    Listings ListingReader
    Events   EventPublisher
}

func NewBookingHandler(s BookingStore, events EventPublisher) *BookingHandler {
    return &BookingHandler{Bookings: s, Events: events}
}

// Create handles POST /bookings/.  The body is checked against the
// booking_create schema.  Check-out before check-in is accepted.
func (h *BookingHandler) Create(c echo.Context) error {
    body, ok, err := readValidated(c, validation.BookingCreate)
    if !ok {
        return err
    }
    var req createBookingReq
    if err := json.Unmarshal(body, &req); err != nil {
        return detail(c, http.StatusBadRequest, "invalid body")
    }
    name := strings.TrimSpace(req.CustomerName)
    phone := strings.TrimSpace(req.CustomerPhone)
    if name == "" || phone == "" {
        return detail(c, http.StatusBadRequest, "customer_name and customer_phone are required")
    }

    ctx, cancel := dbCtx(c)
    defer cancel()
    log := logger.FromContext(c.Request().Context())
    in, out := req.CheckIn.UTC(), req.CheckOut.UTC()
    total := req.TotalPrice
    if h.Listings != nil {
        l, err := h.Listings.GetByID(ctx, req.ListingID)
        if errors.Is(err, repository.ErrListingNotFound) {
            return detail(c, http.StatusNotFound, "listing not found")
        }
        if err != nil {
            log.Error("load listing for booking", "listing_id", req.ListingID, "error", err)
            return detail(c, http.StatusInternalServerError, "create booking failed")
        }
        q := booking.Price(booking.NewDraft(l.ID).WithDates(&in, &out), l)
        if q.Total != total {
            log.Warn("booking total differs from quote", "listing_id", l.ID,
                "submitted", total, "quoted", q.Total, "nights", q.Nights)
            total = q.Total
        }
    }

    b, err := h.Bookings.Create(ctx, model.BookingRequest{
        ListingID:     req.ListingID,
        CheckIn:       in,
        CheckOut:      out,
        Guests:        req.Guests,
        CustomerName:  name,
        CustomerPhone: phone,
        TotalPrice:    total,
    })
    if errors.Is(err, repository.ErrListingNotFound) {
        return detail(c, http.StatusNotFound, "listing not found")
    }
    if err != nil {
        log.Error("create booking", "listing_id", req.ListingID, "error", err)
        return detail(c, http.StatusInternalServerError, "create booking failed")
    }
    log.Info("booking created", "booking_id", b.ID, "listing_id", b.ListingID, "total_price", b.TotalPrice)

    if h.Events != nil {
        if err := h.Events.BookingCreated(c.Request().Context(), b); err != nil {
            log.Warn("booking event not published", "booking_id", b.ID, "error", err)
        }
    }
    return c.JSON(http.StatusCreated, toBookingJSON(b))
}

// UpdateStatus handles PUT /bookings/:id {"status": ...}.
func (h *BookingHandler) UpdateStatus(c echo.Context) error {
    id, ok := parseID(c, "id")
    if !ok {
        return detail(c, http.StatusNotFound, "booking not found")
    }
    body, ok, err := readValidated(c, validation.BookingStatus)
    if !ok {
        return err
    }
    var req struct {
        Status string `json:"status"`
    }
    if err := json.Unmarshal(body, &req); err != nil {
        return detail(c, http.StatusBadRequest, "invalid body")
    }

    ctx, cancel := dbCtx(c)
    defer cancel()
    b, err := h.Bookings.UpdateStatus(ctx, id, req.Status)
    if errors.Is(err, repository.ErrBookingNotFound) {
        return detail(c, http.StatusNotFound, "booking not found")
    }
    if err != nil {
        logger.FromContext(c.Request().Context()).Error("update booking", "booking_id", id, "error", err)
        return detail(c, http.StatusInternalServerError, "update booking failed")
    }
    return c.JSON(http.StatusOK, toBookingJSON(b))
}

// List handles GET /admin/bookings/?status&listing_id&page&size.
func (h *BookingHandler) List(c echo.Context) error {
    page, size := pageParams(c)
    f := repository.BookingFilter{Status: c.QueryParam("status"), Page: page, Size: size}
    if f.Status != "" && !model.ValidBookingStatus(f.Status) {
        return detail(c, http.StatusBadRequest, "unknown status")
    }
    if v := c.QueryParam("listing_id"); v != "" {
        id, err := strconv.ParseInt(v, 10, 64)
        if err != nil || id <= 0 {
            return detail(c, http.StatusBadRequest, "invalid listing_id")
        }
        f.ListingID = id
    }

    ctx, cancel := dbCtx(c)
    defer cancel()
    items, total, err := h.Bookings.List(ctx, f)
    if err != nil {
        logger.FromContext(c.Request().Context()).Error("list bookings", "error", err)
        return detail(c, http.StatusInternalServerError, "database error")
    }
    out := make([]bookingJSON, 0, len(items))
    for _, b := range items {
        out = append(out, toBookingJSON(b))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out, "pages": pageCount(total, size), "total": total})
}
