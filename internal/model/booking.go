package model

import "time"

// Booking statuses.  New bookings start as BookingNew; the admin moves them
// along with PUT /bookings/{id}.
const (
    BookingNew       = "new"
    BookingConfirmed = "confirmed"
    BookingCancelled = "cancelled"
    BookingCompleted = "completed"
)

// ValidBookingStatus reports whether s is a known booking status.
func ValidBookingStatus(s string) bool {
    switch s {
    case BookingNew, BookingConfirmed, BookingCancelled, BookingCompleted:
        return true
    }
    return false
}

// Booking is a submitted stay request as stored by the backend.
//
// Fields:
//  ID            – primary key identifier.
//  ListingID     – listing being booked.
//  CheckIn       – arrival date (UTC).
//  CheckOut      – departure date (UTC).
//  Guests        – number of guests, at least one.
//  CustomerName  – contact name given at checkout.
//  CustomerPhone – phone in +998 XX XXX XX XX form.
//  TotalPrice    – quoted total including the service fee.
//  Status        – one of the Booking* constants.
type Booking struct {
    ID            int64
    ListingID     int64
    CheckIn       time.Time
    CheckOut      time.Time
    Guests        int
    CustomerName  string
    CustomerPhone string
    TotalPrice    int64
    Status        string
    CreatedAt     time.Time
    UpdatedAt     time.Time
}

// BookingRequest is the payload a checkout submits to create a booking.
type BookingRequest struct {
    ListingID     int64
    CheckIn       time.Time
    CheckOut      time.Time
    Guests        int
    CustomerName  string
    CustomerPhone string
    TotalPrice    int64
}
