// Package queue defines the booking event payload and the consumer that
// records booking events to the booking log.
package queue

import (
    "time"

    "github.com/google/uuid"

    "github.com/iliyamo/dacha-booking/internal/model"
)

// BookingCreatedEvent is published once a booking row is committed.  It
// carries enough for downstream consumers to log or notify without querying
// the primary database.
type BookingCreatedEvent struct {
    EventID       string `json:"event_id"`
    BookingID     int64  `json:"booking_id"`
    ListingID     int64  `json:"listing_id"`
    CheckIn       string `json:"check_in"`
    CheckOut      string `json:"check_out"`
    Guests        int    `json:"guests"`
    CustomerName  string `json:"customer_name"`
    CustomerPhone string `json:"customer_phone"`
    TotalPrice    int64  `json:"total_price"`
    Status        string `json:"status"`
    CreatedAt     string `json:"created_at"`
}

// NewBookingCreated builds the event for b with a fresh event id.
func NewBookingCreated(b model.Booking) BookingCreatedEvent {
    created := b.CreatedAt
    if created.IsZero() {
        created = time.Now()
    }
    return BookingCreatedEvent{
        EventID:       uuid.NewString(),
        BookingID:     b.ID,
        ListingID:     b.ListingID,
        CheckIn:       b.CheckIn.UTC().Format(time.DateOnly),
        CheckOut:      b.CheckOut.UTC().Format(time.DateOnly),
        Guests:        b.Guests,
        CustomerName:  b.CustomerName,
        CustomerPhone: b.CustomerPhone,
        TotalPrice:    b.TotalPrice,
        Status:        b.Status,
        CreatedAt:     created.UTC().Format(time.RFC3339),
    }
}
