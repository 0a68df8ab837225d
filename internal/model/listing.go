package model

import "time"

// Region is one of the fixed geographic groupings listings are filed under.
type Region string

const (
    RegionTashkent  Region = "tashkent"
    RegionChimgan   Region = "chimgan"
    RegionCharvak   Region = "charvak"
    RegionBostanliq Region = "bostanliq"
    RegionZaamin    Region = "zaamin"
    RegionSamarkand Region = "samarkand"
)

// Regions lists every known region in display order.
var Regions = []Region{
    RegionTashkent,
    RegionChimgan,
    RegionCharvak,
    RegionBostanliq,
    RegionZaamin,
    RegionSamarkand,
}

// Valid reports whether r is one of the enumerated regions.
func (r Region) Valid() bool {
    for _, known := range Regions {
        if r == known {
            return true
        }
    }
    return false
}

// Amenity is a boolean feature flag a listing may offer.
type Amenity string

const (
    AmenityPool    Amenity = "pool"
    AmenitySauna   Amenity = "sauna"
    AmenityBBQ     Amenity = "bbq"
    AmenityWifi    Amenity = "wifi"
    AmenityAC      Amenity = "ac"
    AmenityKitchen Amenity = "kitchen"
)

// Amenities lists every known amenity key.
var Amenities = []Amenity{
    AmenityPool,
    AmenitySauna,
    AmenityBBQ,
    AmenityWifi,
    AmenityAC,
    AmenityKitchen,
}

// Valid reports whether a is one of the enumerated amenity keys.
func (a Amenity) Valid() bool {
    switch a {
    case AmenityPool, AmenitySauna, AmenityBBQ, AmenityWifi, AmenityAC, AmenityKitchen:
        return true
    default:
        return false
    }
}

// Icon returns the icon name the UI renders next to the amenity.  Unknown
// keys get a generic check mark.
func (a Amenity) Icon() string {
    switch a {
    case AmenityPool:
        return "waves"
    case AmenitySauna:
        return "flame"
    case AmenityBBQ:
        return "beef"
    case AmenityWifi:
        return "wifi"
    case AmenityAC:
        return "snowflake"
    case AmenityKitchen:
        return "utensils"
    default:
        return "check"
    }
}

// Listing statuses used by the admin screens and the status query filter.
const (
    ListingActive = "active"
    ListingHidden = "hidden"
)

// Listing is a bookable dacha.  Prices are whole currency units with no
// minor part.
//
// Fields:
//  ID            – unique positive identifier.
//  Region        – enumerated region code.
//  PricePerNight – nightly price, never negative.
//  Rating        – 0..5, zero when the listing has no rating yet.
//  Amenities     – amenity flags; a missing key means false.
//  Images        – gallery in display order, the first one is primary.
//  VideoURL      – optional walkthrough video.
type Listing struct {
    ID            int64
    Title         string
    Description   string
    Region        Region
    PricePerNight int64
    Rating        float64
    GuestsMax     int
    Rooms         int
    Beds          int
    Baths         int
    Amenities     map[Amenity]bool
    Images        []string
    VideoURL      string
    Status        string
    CreatedAt     time.Time
    UpdatedAt     time.Time
}

// Has reports whether the listing offers amenity a.
func (l Listing) Has(a Amenity) bool {
    return l.Amenities[a]
}

// PrimaryImage returns the first gallery image or an empty string.
func (l Listing) PrimaryImage() string {
    if len(l.Images) == 0 {
        return ""
    }
    return l.Images[0]
}
