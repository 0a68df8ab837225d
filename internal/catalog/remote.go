package catalog

import (
    "context"
    "errors"

    "github.com/iliyamo/dacha-booking/internal/apiclient"
    "github.com/iliyamo/dacha-booking/internal/model"
)

// RemoteSource adapts the REST client to Source, translating the client's
// not-found error into ErrNotFound.
type RemoteSource struct {
    Client *apiclient.Client
}

func (r RemoteSource) Listings(ctx context.Context, q model.ListingQuery) (model.ListingPage, error) {
    return r.Client.ListListings(ctx, q)
}

func (r RemoteSource) Listing(ctx context.Context, id int64) (model.Listing, error) {
    l, err := r.Client.GetListing(ctx, id)
    if errors.Is(err, apiclient.ErrNotFound) {
        return model.Listing{}, ErrNotFound
    }
    return l, err
}
