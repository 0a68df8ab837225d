package model

// ListingQuery is the server-side listing filter behind GET /listings/.
// Zero values mean "no constraint"; Page starts at 1.
type ListingQuery struct {
    Page   int
    Size   int
    Search string
    Status string
    Region Region
}

// ListingPage is one page of a listing query.
type ListingPage struct {
    Items []Listing
    Pages int
}
