package catalog

import (
    "context"
    "fmt"
    "log/slog"
    "sync"

    "github.com/iliyamo/dacha-booking/internal/model"
    "github.com/iliyamo/dacha-booking/internal/search"
)

// Mode is where a search runs.
type Mode string

const (
    // ModeLocal loads the whole catalog once and filters it in memory.
    ModeLocal Mode = "local"
    // ModeRemote sends region to the server and returns its page as is.
    ModeRemote Mode = "remote"
    // ModeAuto probes the catalog size on first use and then fixes one of
    // the two modes above for the lifetime of the browser.
    ModeAuto Mode = "auto"
)

// ParseMode maps a config string to a Mode, defaulting to auto.
func ParseMode(s string) Mode {
    switch Mode(s) {
    case ModeLocal, ModeRemote:
        return Mode(s)
    default:
        return ModeAuto
    }
}

// DefaultLocalLimit is the largest catalog the browser filters in memory.
const DefaultLocalLimit = 100

// Result is one rendered page of search results.
type Result struct {
    Items []model.Listing
    Pages int
    Mode  Mode
    // Unapplied names the criteria a remote search could not send to the
    // server.  It is always empty for local results.
    Unapplied []string
}

// Browser runs searches against a Source.  Only active listings are
// searched.
type Browser struct {
    src        Source
    log        *slog.Logger
    localLimit int
    pageSize   int

    mu     sync.Mutex
    mode   Mode
    loaded []model.Listing
    ready  bool
}

// BrowserOption customizes a Browser.
type BrowserOption func(*Browser)

// WithLocalLimit sets the catalog size up to which searches stay local.
func WithLocalLimit(n int) BrowserOption { return func(b *Browser) { b.localLimit = n } }

// WithPageSize sets the remote page size.
func WithPageSize(n int) BrowserOption { return func(b *Browser) { b.pageSize = n } }

// NewBrowser returns a browser in the given mode.
func NewBrowser(src Source, mode Mode, log *slog.Logger, opts ...BrowserOption) *Browser {
    if log == nil {
        log = slog.Default()
    }
    b := &Browser{
        src:        src,
        log:        log.With("component", "catalog"),
        localLimit: DefaultLocalLimit,
        pageSize:   DefaultPageSize,
        mode:       mode,
    }
    for _, o := range opts {
        o(b)
    }
    return b
}

// Mode returns the current mode.  For an auto browser this stays ModeAuto
// until the first search.
func (b *Browser) Mode() Mode {
    b.mu.Lock()
    defer b.mu.Unlock()
    return b.mode
}

// Search returns page (1-based) of the listings matching c.
func (b *Browser) Search(ctx context.Context, c search.Criteria, page int) (Result, error) {
    if page < 1 {
        page = 1
    }
    mode, all, err := b.resolve(ctx)
    if err != nil {
        return Result{}, err
    }
    if mode == ModeLocal {
        return Result{Items: search.Apply(all, c), Pages: 1, Mode: ModeLocal}, nil
    }

    res, err := b.src.Listings(ctx, model.ListingQuery{Page: page, Size: b.pageSize, Region: c.Region, Status: model.ListingActive})
    if err != nil {
        return Result{}, fmt.Errorf("remote search: %w", err)
    }
    items := res.Items
    if items == nil {
        items = []model.Listing{}
    }
    return Result{Items: items, Pages: res.Pages, Mode: ModeRemote, Unapplied: unapplied(c)}, nil
}

// Reload drops the in-memory catalog so the next local search fetches it
// again.  The mode is not re-probed.
func (b *Browser) Reload() {
    b.mu.Lock()
    defer b.mu.Unlock()
    b.ready = false
    b.loaded = nil
}

func (b *Browser) resolve(ctx context.Context) (Mode, []model.Listing, error) {
    b.mu.Lock()
    defer b.mu.Unlock()

    if b.mode == ModeRemote {
        return ModeRemote, nil, nil
    }
    if b.ready {
        return b.mode, b.loaded, nil
    }

    res, err := b.src.Listings(ctx, model.ListingQuery{Page: 1, Size: b.localLimit, Status: model.ListingActive})
    if err != nil {
        return "", nil, fmt.Errorf("load catalog: %w", err)
    }
    if b.mode == ModeAuto {
        if res.Pages > 1 {
            b.mode = ModeRemote
            b.log.Info("catalog exceeds local limit, searching remotely", "limit", b.localLimit, "pages", res.Pages)
            return ModeRemote, nil, nil
        }
        b.mode = ModeLocal
        b.log.Info("catalog fits in memory, searching locally", "listings", len(res.Items))
    } else if res.Pages > 1 {
        b.log.Warn("local catalog truncated", "limit", b.localLimit, "pages", res.Pages)
    }
    b.loaded = res.Items
    b.ready = true
    return ModeLocal, b.loaded, nil
}

func unapplied(c search.Criteria) []string {
    var out []string
    if c.MinGuests != nil {
        out = append(out, "guests")
    }
    if c.MinRooms != nil {
        out = append(out, "rooms")
    }
    if c.MinPrice != nil {
        out = append(out, "min_price")
    }
    if c.MaxPrice != nil {
        out = append(out, "max_price")
    }
    if len(c.RequiredAmenities) > 0 {
        out = append(out, "amenities")
    }
    // server pages come back newest first
    return append(out, "sort")
}
