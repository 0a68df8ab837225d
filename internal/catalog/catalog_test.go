package catalog

import (
    "context"
    "errors"
    "io"
    "log/slog"
    "reflect"
    "sync"
    "testing"

    "github.com/iliyamo/dacha-booking/internal/model"
    "github.com/iliyamo/dacha-booking/internal/search"
)

func quiet() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

type countingSource struct {
    Source
    mu      sync.Mutex
    queries []model.ListingQuery
}

func (c *countingSource) Listings(ctx context.Context, q model.ListingQuery) (model.ListingPage, error) {
    c.mu.Lock()
    c.queries = append(c.queries, q)
    c.mu.Unlock()
    return c.Source.Listings(ctx, q)
}

func TestDemoIsDeterministic(t *testing.T) {
    a, b := Demo(), Demo()
    if len(a) != 24 {
        t.Fatalf("len = %d, want 24", len(a))
    }
    if !reflect.DeepEqual(a, b) {
        t.Fatal("Demo differs between calls")
    }
    seen := map[int64]bool{}
    for _, l := range a {
        if seen[l.ID] || l.ID <= 0 {
            t.Fatalf("bad id %d", l.ID)
        }
        seen[l.ID] = true
        if !l.Region.Valid() || l.Rating < 0 || l.Rating > 5 || l.PricePerNight < 0 {
            t.Errorf("listing %d out of range: %+v", l.ID, l)
        }
    }
}

func TestFixturePaging(t *testing.T) {
    f := NewFixture(Demo())
    ctx := context.Background()

    page, err := f.Listings(ctx, model.ListingQuery{Page: 3, Size: 10})
    if err != nil {
        t.Fatal(err)
    }
    if page.Pages != 3 || len(page.Items) != 4 || page.Items[0].ID != 21 {
        t.Errorf("page 3 = %d items, pages %d", len(page.Items), page.Pages)
    }

    page, _ = f.Listings(ctx, model.ListingQuery{Page: 9, Size: 10})
    if len(page.Items) != 0 || page.Items == nil {
        t.Errorf("past the end = %v", page.Items)
    }

    page, _ = f.Listings(ctx, model.ListingQuery{Region: model.RegionZaamin, Search: "VILLA"})
    if len(page.Items) != 1 || page.Items[0].Region != model.RegionZaamin {
        t.Errorf("region+search = %+v", page.Items)
    }

    _, err = f.Listing(ctx, 999)
    if !errors.Is(err, ErrNotFound) {
        t.Errorf("err = %v", err)
    }
}

func TestBrowserLocal(t *testing.T) {
    src := &countingSource{Source: NewFixture(Demo())}
    b := NewBrowser(src, ModeLocal, quiet())
    c := search.Criteria{Region: model.RegionChimgan, Sort: search.SortPriceLow}

    for i := 0; i < 2; i++ {
        res, err := b.Search(context.Background(), c, 1)
        if err != nil {
            t.Fatal(err)
        }
        if res.Mode != ModeLocal || len(res.Items) != 4 || len(res.Unapplied) != 0 {
            t.Fatalf("result = %+v", res)
        }
        want := search.Apply(Demo(), c)
        if !reflect.DeepEqual(res.Items, want) {
            t.Errorf("local result differs from search.Apply")
        }
    }
    if len(src.queries) != 1 {
        t.Errorf("catalog loaded %d times, want once", len(src.queries))
    }
}

func TestBrowserAutoSwitchesToRemote(t *testing.T) {
    src := &countingSource{Source: NewFixture(Demo())}
    b := NewBrowser(src, ModeAuto, quiet(), WithLocalLimit(10), WithPageSize(10))

    min := 4
    res, err := b.Search(context.Background(), search.Criteria{MinGuests: &min, Sort: search.SortPriceHigh}, 2)
    if err != nil {
        t.Fatal(err)
    }
    if res.Mode != ModeRemote || b.Mode() != ModeRemote {
        t.Fatalf("mode = %s", res.Mode)
    }
    if res.Pages != 3 || len(res.Items) != 10 || res.Items[0].ID != 11 {
        t.Errorf("page 2 = %d items from %d, pages %d", len(res.Items), res.Items[0].ID, res.Pages)
    }
    if !reflect.DeepEqual(res.Unapplied, []string{"guests", "sort"}) {
        t.Errorf("unapplied = %v", res.Unapplied)
    }

    if _, err := b.Search(context.Background(), search.Criteria{}, 1); err != nil {
        t.Fatal(err)
    }
    if len(src.queries) != 3 {
        t.Errorf("queries = %d, want probe + 2 searches", len(src.queries))
    }
}

func TestBrowserAutoStaysLocal(t *testing.T) {
    b := NewBrowser(NewFixture(Demo()), ModeAuto, quiet())
    res, err := b.Search(context.Background(), search.Criteria{}, 1)
    if err != nil {
        t.Fatal(err)
    }
    if res.Mode != ModeLocal || len(res.Items) != 24 {
        t.Errorf("mode %s, %d items", res.Mode, len(res.Items))
    }
}

func TestBrowserSkipsHiddenListings(t *testing.T) {
    listings := []model.Listing{
        {ID: 1, Title: "open", Region: model.RegionChimgan, Status: model.ListingActive},
        {ID: 2, Title: "hidden", Region: model.RegionChimgan, Status: model.ListingHidden},
    }
    for _, mode := range []Mode{ModeLocal, ModeRemote, ModeAuto} {
        b := NewBrowser(NewFixture(listings), mode, quiet())
        res, err := b.Search(context.Background(), search.Criteria{}, 1)
        if err != nil {
            t.Fatal(err)
        }
        if len(res.Items) != 1 || res.Items[0].ID != 1 {
            t.Errorf("%s: items = %+v", mode, res.Items)
        }
    }
}

func TestBrowserRemoteReportsSort(t *testing.T) {
    listings := []model.Listing{
        {ID: 1, Region: model.RegionChimgan, Rating: 3, Status: model.ListingActive},
        {ID: 2, Region: model.RegionChimgan, Rating: 5, Status: model.ListingActive},
    }
    b := NewBrowser(NewFixture(listings), ModeRemote, quiet())
    for _, sort := range []search.Sort{"", search.SortPopular} {
        res, err := b.Search(context.Background(), search.Criteria{Sort: sort}, 1)
        if err != nil {
            t.Fatal(err)
        }
        if !reflect.DeepEqual(res.Unapplied, []string{"sort"}) {
            t.Errorf("sort %q: unapplied = %v", sort, res.Unapplied)
        }
        if res.Items[0].ID != 1 {
            t.Errorf("remote page was reordered: %+v", res.Items)
        }
    }
}

func TestParseMode(t *testing.T) {
    for in, want := range map[string]Mode{"local": ModeLocal, "remote": ModeRemote, "auto": ModeAuto, "": ModeAuto, "x": ModeAuto} {
        if got := ParseMode(in); got != want {
            t.Errorf("ParseMode(%q) = %s", in, got)
        }
    }
}

// gatedSource answers Listing(id) only after gates[id] is closed.
type gatedSource struct {
    *Fixture
    gates map[int64]chan struct{}
}

func (g gatedSource) Listing(ctx context.Context, id int64) (model.Listing, error) {
    if ch, ok := g.gates[id]; ok {
        <-ch
    }
    return g.Fixture.Listing(ctx, id)
}

func TestViewerDropsStaleResponse(t *testing.T) {
    src := gatedSource{Fixture: NewFixture(Demo()), gates: map[int64]chan struct{}{1: make(chan struct{})}}
    v := NewViewer(src, quiet())

    var mu sync.Mutex
    var seen []int64
    cancel := v.Subscribe(func(s State) {
        if s.Loading {
            return
        }
        mu.Lock()
        seen = append(seen, s.ListingID)
        mu.Unlock()
    })
    defer cancel()

    done := make(chan State)
    go func() { done <- v.Open(context.Background(), 1) }()
    for v.State().ListingID != 1 {
        // wait for the first fetch to start
    }

    second := v.Open(context.Background(), 2)
    if second.ListingID != 2 || second.Listing.ID != 2 {
        t.Fatalf("second = %+v", second)
    }

    close(src.gates[1])
    first := <-done
    if first.ListingID != 2 {
        t.Errorf("stale open returned state for %d", first.ListingID)
    }
    if got := v.State(); got.Listing.ID != 2 {
        t.Errorf("current listing = %d, want 2", got.Listing.ID)
    }
    mu.Lock()
    defer mu.Unlock()
    if !reflect.DeepEqual(seen, []int64{2}) {
        t.Errorf("settled notifications = %v, want [2]", seen)
    }
}

func TestViewerNotFound(t *testing.T) {
    v := NewViewer(NewFixture(Demo()), quiet())
    s := v.Open(context.Background(), 404)
    if !s.NotFound || s.Err != nil || s.Loading {
        t.Errorf("state = %+v", s)
    }
}

func TestViewerNotifiesInSubscribeOrder(t *testing.T) {
    v := NewViewer(NewFixture(Demo()), quiet())
    var order []int
    var cancels []func()
    for i := 0; i < 8; i++ {
        i := i
        cancels = append(cancels, v.Subscribe(func(State) { order = append(order, i) }))
    }
    cancels[3]()
    v.Close()

    want := []int{0, 1, 2, 4, 5, 6, 7}
    if !reflect.DeepEqual(order, want) {
        t.Errorf("order = %v, want %v", order, want)
    }
}
