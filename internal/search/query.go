package search

import (
    "net/url"
    "strconv"
    "strings"

    "github.com/iliyamo/dacha-booking/internal/model"
)

// ParseCriteria builds Criteria from query parameters: region, guests,
// rooms, min_price, max_price, amenities (comma separated) and sort.
// Unparseable numbers are treated as absent and an unknown sort key falls
// back to popular, mirroring how the search form ignores junk input.
func ParseCriteria(q url.Values) Criteria {
    c := Criteria{
        Region:    model.Region(strings.ToLower(strings.TrimSpace(q.Get("region")))),
        MinGuests: optInt(q.Get("guests")),
        MinRooms:  optInt(q.Get("rooms")),
        MinPrice:  optInt64(q.Get("min_price")),
        MaxPrice:  optInt64(q.Get("max_price")),
        Sort:      Sort(strings.ToLower(strings.TrimSpace(q.Get("sort")))),
    }
    if !c.Sort.Valid() {
        c.Sort = SortPopular
    }
    seen := map[model.Amenity]bool{}
    for _, raw := range strings.Split(q.Get("amenities"), ",") {
        a := model.Amenity(strings.ToLower(strings.TrimSpace(raw)))
        if a == "" || seen[a] {
            continue
        }
        seen[a] = true
        c.RequiredAmenities = append(c.RequiredAmenities, a)
    }
    return c
}

// Values renders c back into query parameters understood by ParseCriteria.
func (c Criteria) Values() url.Values {
    q := url.Values{}
    if c.Region != "" {
        q.Set("region", string(c.Region))
    }
    if c.MinGuests != nil {
        q.Set("guests", strconv.Itoa(*c.MinGuests))
    }
    if c.MinRooms != nil {
        q.Set("rooms", strconv.Itoa(*c.MinRooms))
    }
    if c.MinPrice != nil {
        q.Set("min_price", strconv.FormatInt(*c.MinPrice, 10))
    }
    if c.MaxPrice != nil {
        q.Set("max_price", strconv.FormatInt(*c.MaxPrice, 10))
    }
    if len(c.RequiredAmenities) > 0 {
        parts := make([]string, len(c.RequiredAmenities))
        for i, a := range c.RequiredAmenities {
            parts[i] = string(a)
        }
        q.Set("amenities", strings.Join(parts, ","))
    }
    if c.Sort != "" {
        q.Set("sort", string(c.Sort))
    }
    return q
}

func optInt(s string) *int {
    s = strings.TrimSpace(s)
    if s == "" {
        return nil
    }
    n, err := strconv.Atoi(s)
    if err != nil {
        return nil
    }
    return &n
}

func optInt64(s string) *int64 {
    s = strings.TrimSpace(s)
    if s == "" {
        return nil
    }
    n, err := strconv.ParseInt(s, 10, 64)
    if err != nil {
        return nil
    }
    return &n
}
