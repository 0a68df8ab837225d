package booking

import (
    "math"
    "time"

    "github.com/iliyamo/dacha-booking/internal/model"
)

// ServiceFeePercent is the platform fee added on top of the nightly total.
const ServiceFeePercent = 5

// Quote is the price breakdown shown on the checkout page.
type Quote struct {
    Nights     int
    BasePrice  int64
    ServiceFee int64
    Total      int64
}

// Nights counts the nights between checkIn and checkOut, rounding partial
// days up.  Missing or identical dates count as a single night.  The order
// of the dates is not checked.
func Nights(checkIn, checkOut *time.Time) int {
    if checkIn == nil || checkOut == nil {
        return 1
    }
    d := checkOut.Sub(*checkIn)
    if d < 0 {
        d = -d
    }
    n := int(math.Ceil(float64(d) / float64(24*time.Hour)))
    if n < 1 {
        return 1
    }
    return n
}

// Price computes the quote for d against listing l.  It is recomputed on
// every call; callers must not keep a Quote across draft changes.
func Price(d Draft, l model.Listing) Quote {
    nights := Nights(d.CheckIn, d.CheckOut)
    base := l.PricePerNight * int64(nights)
    fee := roundPercent(base, ServiceFeePercent)
    return Quote{
        Nights:     nights,
        BasePrice:  base,
        ServiceFee: fee,
        Total:      base + fee,
    }
}

// roundPercent returns round(v*pct/100) with halves rounded away from zero.
func roundPercent(v, pct int64) int64 {
    p := v * pct
    if p >= 0 {
        return (p + 50) / 100
    }
    return (p - 50) / 100
}
