package handler

import (
    "strings"
    "time"

    "github.com/iliyamo/dacha-booking/internal/model"
)

// listingJSON is the wire form of a listing.  Rating and video_url are
// null when absent.
type listingJSON struct {
    ID            int64           `json:"id"`
    Title         string          `json:"title"`
    Description   string          `json:"description"`
    Region        string          `json:"region"`
    PricePerNight int64           `json:"price_per_night"`
    Rating        *float64        `json:"rating"`
    GuestsMax     int             `json:"guests_max"`
    Rooms         int             `json:"rooms"`
    Beds          int             `json:"beds"`
    Baths         int             `json:"baths"`
    Amenities     map[string]bool `json:"amenities"`
    Images        []string        `json:"images"`
    VideoURL      *string         `json:"video_url"`
    Status        string          `json:"status"`
    CreatedAt     time.Time       `json:"created_at"`
    UpdatedAt     time.Time       `json:"updated_at"`
}

func toListingJSON(l model.Listing) listingJSON {
    out := listingJSON{
        ID:            l.ID,
        Title:         l.Title,
        Description:   l.Description,
        Region:        string(l.Region),
        PricePerNight: l.PricePerNight,
        GuestsMax:     l.GuestsMax,
        Rooms:         l.Rooms,
        Beds:          l.Beds,
        Baths:         l.Baths,
        Amenities:     make(map[string]bool, len(l.Amenities)),
        Images:        l.Images,
        Status:        l.Status,
        CreatedAt:     l.CreatedAt,
        UpdatedAt:     l.UpdatedAt,
    }
    if l.Rating > 0 {
        r := l.Rating
        out.Rating = &r
    }
    if l.VideoURL != "" {
        v := l.VideoURL
        out.VideoURL = &v
    }
    for k, v := range l.Amenities {
        out.Amenities[string(k)] = v
    }
    if out.Images == nil {
        out.Images = []string{}
    }
    return out
}

// listingWriteReq is the admin create/update body.  Amenity keys are kept
// verbatim, including keys taken from an amenity's Uzbek name.
type listingWriteReq struct {
    Title         string          `json:"title"`
    Description   string          `json:"description"`
    Region        string          `json:"region"`
    PricePerNight int64           `json:"price_per_night"`
    Rating        *float64        `json:"rating"`
    GuestsMax     int             `json:"guests_max"`
    Rooms         int             `json:"rooms"`
    Beds          int             `json:"beds"`
    Baths         int             `json:"baths"`
    Amenities     map[string]bool `json:"amenities"`
    Images        []string        `json:"images"`
    VideoURL      *string         `json:"video_url"`
    Status        string          `json:"status"`
}

func (r listingWriteReq) toModel(id int64) model.Listing {
    l := model.Listing{
        ID:            id,
        Title:         strings.TrimSpace(r.Title),
        Description:   r.Description,
        Region:        model.Region(r.Region),
        PricePerNight: r.PricePerNight,
        GuestsMax:     r.GuestsMax,
        Rooms:         r.Rooms,
        Beds:          r.Beds,
        Baths:         r.Baths,
        Amenities:     make(map[model.Amenity]bool, len(r.Amenities)),
        Images:        r.Images,
        Status:        r.Status,
    }
    if r.Rating != nil {
        l.Rating = *r.Rating
    }
    if r.VideoURL != nil {
        l.VideoURL = *r.VideoURL
    }
    for k, v := range r.Amenities {
        l.Amenities[model.Amenity(k)] = v
    }
    if l.Status == "" {
        l.Status = model.ListingActive
    }
    return l
}

type createBookingReq struct {
    ListingID     int64     `json:"listing_id"`
    CheckIn       time.Time `json:"check_in"`
    CheckOut      time.Time `json:"check_out"`
    Guests        int       `json:"guests"`
    CustomerName  string    `json:"customer_name"`
    CustomerPhone string    `json:"customer_phone"`
    TotalPrice    int64     `json:"total_price"`
}

type bookingJSON struct {
    ID            int64     `json:"id"`
    ListingID     int64     `json:"listing_id"`
    CheckIn       time.Time `json:"check_in"`
    CheckOut      time.Time `json:"check_out"`
    Guests        int       `json:"guests"`
    CustomerName  string    `json:"customer_name"`
    CustomerPhone string    `json:"customer_phone"`
    TotalPrice    int64     `json:"total_price"`
    Status        string    `json:"status"`
    CreatedAt     time.Time `json:"created_at"`
}

func toBookingJSON(b model.Booking) bookingJSON {
    return bookingJSON{
        ID:            b.ID,
        ListingID:     b.ListingID,
        CheckIn:       b.CheckIn.UTC(),
        CheckOut:      b.CheckOut.UTC(),
        Guests:        b.Guests,
        CustomerName:  b.CustomerName,
        CustomerPhone: b.CustomerPhone,
        TotalPrice:    b.TotalPrice,
        Status:        b.Status,
        CreatedAt:     b.CreatedAt.UTC(),
    }
}

type amenityJSON struct {
    ID     int64  `json:"id"`
    NameUz string `json:"name_uz"`
    NameRu string `json:"name_ru"`
    Icon   string `json:"icon"`
}
