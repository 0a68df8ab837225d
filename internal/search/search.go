// Package search filters and orders listings in memory.  Everything here is
// pure: no I/O, no shared state, and the input slice is never modified, so
// it is safe to run on every filter change for catalogs of a few hundred
// listings.
package search

import (
    "sort"

    "github.com/iliyamo/dacha-booking/internal/model"
)

// Sort selects the ordering of a search result.
type Sort string

const (
    SortPopular   Sort = "popular"
    SortPriceLow  Sort = "price-low"
    SortPriceHigh Sort = "price-high"
)

// Valid reports whether s is a known sort key.
func (s Sort) Valid() bool {
    switch s {
    case SortPopular, SortPriceLow, SortPriceHigh:
        return true
    }
    return false
}

// Criteria is a conjunction of optional predicates.  A nil bound is
// unconstrained and every bound is inclusive.  An empty RequiredAmenities
// matches every listing.
type Criteria struct {
    Region            model.Region
    MinGuests         *int
    MinRooms          *int
    MinPrice          *int64
    MaxPrice          *int64
    RequiredAmenities []model.Amenity
    Sort              Sort
}

// Matches reports whether l satisfies every active predicate of c.
func (c Criteria) Matches(l model.Listing) bool {
    if c.Region != "" && l.Region != c.Region {
        return false
    }
    if c.MinGuests != nil && l.GuestsMax < *c.MinGuests {
        return false
    }
    if c.MinRooms != nil && l.Rooms < *c.MinRooms {
        return false
    }
    if c.MinPrice != nil && l.PricePerNight < *c.MinPrice {
        return false
    }
    if c.MaxPrice != nil && l.PricePerNight > *c.MaxPrice {
        return false
    }
    for _, a := range c.RequiredAmenities {
        if !l.Has(a) {
            return false
        }
    }
    return true
}

// Apply returns the listings matching c, ordered by c.Sort.  Listings with
// equal sort keys keep their input order.  An empty result is returned as
// an empty, non-nil slice.
func Apply(listings []model.Listing, c Criteria) []model.Listing {
    out := make([]model.Listing, 0, len(listings))
    for _, l := range listings {
        if c.Matches(l) {
            out = append(out, l)
        }
    }
    sort.SliceStable(out, less(out, c.Sort))
    return out
}

func less(ls []model.Listing, s Sort) func(i, j int) bool {
    switch s {
    case SortPriceLow:
        return func(i, j int) bool { return ls[i].PricePerNight < ls[j].PricePerNight }
    case SortPriceHigh:
        return func(i, j int) bool { return ls[i].PricePerNight > ls[j].PricePerNight }
    default:
        return func(i, j int) bool { return ls[i].Rating > ls[j].Rating }
    }
}
