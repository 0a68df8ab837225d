package apiclient

import (
	"time"

	"github.com/iliyamo/dacha-booking/internal/model"
)

// listingDTO is a listing as the backend serializes it.
type listingDTO struct {
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
}

type listingPageDTO struct {
	Items []listingDTO `json:"items"`
	Pages int          `json:"pages"`
}

func (d listingDTO) toModel() model.Listing {
	l := model.Listing{
		ID:            d.ID,
		Title:         d.Title,
		Description:   d.Description,
		Region:        model.Region(d.Region),
		PricePerNight: d.PricePerNight,
		GuestsMax:     d.GuestsMax,
		Rooms:         d.Rooms,
		Beds:          d.Beds,
		Baths:         d.Baths,
		Amenities:     make(map[model.Amenity]bool, len(d.Amenities)),
		Images:        d.Images,
		Status:        d.Status,
	}
	if d.Rating != nil {
		l.Rating = *d.Rating
	}
	if d.VideoURL != nil {
		l.VideoURL = *d.VideoURL
	}
	for k, v := range d.Amenities {
		l.Amenities[model.Amenity(k)] = v
	}
	if l.Images == nil {
		l.Images = []string{}
	}
	return l
}

type amenityDTO struct {
	ID     int64  `json:"id"`
	NameUz string `json:"name_uz"`
	NameRu string `json:"name_ru"`
	Icon   string `json:"icon"`
}

type createBookingDTO struct {
	ListingID     int64     `json:"listing_id"`
	CheckIn       time.Time `json:"check_in"`
	CheckOut      time.Time `json:"check_out"`
	Guests        int       `json:"guests"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone"`
	TotalPrice    int64     `json:"total_price"`
}

type bookingDTO struct {
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

func (d bookingDTO) toModel() model.Booking {
	return model.Booking{
		ID:            d.ID,
		ListingID:     d.ListingID,
		CheckIn:       d.CheckIn,
		CheckOut:      d.CheckOut,
		Guests:        d.Guests,
		CustomerName:  d.CustomerName,
		CustomerPhone: d.CustomerPhone,
		TotalPrice:    d.TotalPrice,
		Status:        d.Status,
		CreatedAt:     d.CreatedAt,
	}
}

type errorDTO struct {
	Detail string `json:"detail"`
}
