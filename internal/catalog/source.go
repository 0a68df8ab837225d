// Package catalog is the client-side listing repository.  A Source is
// either the bundled fixture catalog or the REST backend; Browser decides
// whether search runs in memory or on the server, and Viewer loads a
// single listing for the detail screen.
package catalog

import (
    "context"
    "errors"
    "fmt"
    "strings"

    "github.com/iliyamo/dacha-booking/internal/model"
)

// ErrNotFound is returned by a Source for an unknown listing id.
var ErrNotFound = errors.New("listing not found")

// Source is anything that can answer the listing endpoints.
// *apiclient.Client satisfies it through RemoteSource.
type Source interface {
    Listings(ctx context.Context, q model.ListingQuery) (model.ListingPage, error)
    Listing(ctx context.Context, id int64) (model.Listing, error)
}

// DefaultPageSize matches the backend's default page size.
const DefaultPageSize = 24

// Fixture is an in-memory Source.  It pages and filters the same way the
// backend does: region equality, case-insensitive title search and status.
type Fixture struct {
    listings []model.Listing
}

// NewFixture wraps listings.  The slice is copied.
func NewFixture(listings []model.Listing) *Fixture {
    return &Fixture{listings: append([]model.Listing(nil), listings...)}
}

func (f *Fixture) Listings(ctx context.Context, q model.ListingQuery) (model.ListingPage, error) {
    if err := ctx.Err(); err != nil {
        return model.ListingPage{}, err
    }
    size := q.Size
    if size <= 0 {
        size = DefaultPageSize
    }
    page := q.Page
    if page < 1 {
        page = 1
    }
    search := strings.ToLower(strings.TrimSpace(q.Search))

    matched := make([]model.Listing, 0, len(f.listings))
    for _, l := range f.listings {
        if q.Region != "" && l.Region != q.Region {
            continue
        }
        if q.Status != "" && l.Status != q.Status {
            continue
        }
        if search != "" && !strings.Contains(strings.ToLower(l.Title), search) {
            continue
        }
        matched = append(matched, l)
    }

    pages := (len(matched) + size - 1) / size
    start := (page - 1) * size
    if start > len(matched) {
        start = len(matched)
    }
    end := start + size
    if end > len(matched) {
        end = len(matched)
    }
    return model.ListingPage{Items: append([]model.Listing{}, matched[start:end]...), Pages: pages}, nil
}

func (f *Fixture) Listing(ctx context.Context, id int64) (model.Listing, error) {
    if err := ctx.Err(); err != nil {
        return model.Listing{}, err
    }
    for _, l := range f.listings {
        if l.ID == id {
            return l, nil
        }
    }
    return model.Listing{}, fmt.Errorf("listing %d: %w", id, ErrNotFound)
}

var fixtureTitles = []string{
    "Tog' etagidagi dacha",
    "Oilaviy uy",
    "Basseynli villa",
    "Daryo bo'yidagi kottej",
}

// Demo returns the bundled catalog: four listings per region with prices,
// capacities and amenities varied deterministically.
func Demo() []model.Listing {
    out := make([]model.Listing, 0, len(model.Regions)*len(fixtureTitles))
    id := int64(1)
    for ri, region := range model.Regions {
        for ti, title := range fixtureTitles {
            n := ri*len(fixtureTitles) + ti
            l := model.Listing{
                ID:            id,
                Title:         fmt.Sprintf("%s #%d", title, id),
                Region:        region,
                PricePerNight: int64(300000 + (n%7)*150000),
                Rating:        float64(35+(n*3)%16) / 10,
                GuestsMax:     2 + (n % 9),
                Rooms:         1 + (n % 5),
                Beds:          1 + (n % 6),
                Baths:         1 + (n % 3),
                Amenities: map[model.Amenity]bool{
                    model.AmenityPool:    n%2 == 0,
                    model.AmenitySauna:   n%3 == 0,
                    model.AmenityBBQ:     n%4 != 3,
                    model.AmenityWifi:    n%5 != 0,
                    model.AmenityAC:      n%2 == 1,
                    model.AmenityKitchen: true,
                },
                Images: []string{
                    fmt.Sprintf("/img/listings/%d/1.jpg", id),
                    fmt.Sprintf("/img/listings/%d/2.jpg", id),
                },
                Status: model.ListingActive,
            }
            if n%6 == 0 {
                l.VideoURL = fmt.Sprintf("/video/listings/%d.mp4", id)
            }
            out = append(out, l)
            id++
        }
    }
    return out
}
