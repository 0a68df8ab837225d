package catalog

import (
    "context"
    "errors"
    "log/slog"
    "sync"

    "github.com/iliyamo/dacha-booking/internal/model"
)

// State is what the detail screen renders.  Exactly one of Loading,
// NotFound, Err and a non-zero Listing describes the outcome.
type State struct {
    ListingID int64
    Loading   bool
    Listing   model.Listing
    NotFound  bool
    Err       error
}

// Viewer loads one listing at a time.  Each Open is tagged with a token;
// a response that arrives after a newer Open has started is dropped, so a
// slow answer for a previous id never overwrites the current one.
type Viewer struct {
    src Source
    log *slog.Logger

    mu     sync.Mutex
    token  uint64
    state  State
    subs   []listener
    nextID int
}

// NewViewer returns an idle viewer.
func NewViewer(src Source, log *slog.Logger) *Viewer {
    if log == nil {
        log = slog.Default()
    }
    return &Viewer{src: src, log: log.With("component", "viewer")}
}

// State returns the current state.
func (v *Viewer) State() State {
    v.mu.Lock()
    defer v.mu.Unlock()
    return v.state
}

// Subscribe registers fn for state changes and returns its cancel func.
// fn is called without the viewer lock held.
func (v *Viewer) Subscribe(fn func(State)) (cancel func()) {
    v.mu.Lock()
    id := v.nextID
    v.nextID++
    v.subs = append(v.subs, listener{id: id, fn: fn})
    v.mu.Unlock()
    return func() {
        v.mu.Lock()
        for i, sub := range v.subs {
            if sub.id == id {
                v.subs = append(v.subs[:i:i], v.subs[i+1:]...)
                break
            }
        }
        v.mu.Unlock()
    }
}

// Open fetches listing id and returns the viewer state once the fetch
// settles.  If another Open superseded this one meanwhile, the result is
// discarded and the returned state is whatever is current.
func (v *Viewer) Open(ctx context.Context, id int64) State {
    v.mu.Lock()
    v.token++
    tok := v.token
    v.state = State{ListingID: id, Loading: true}
    loading := v.state
    v.mu.Unlock()
    v.notify(loading)

    l, err := v.src.Listing(ctx, id)

    next := State{ListingID: id}
    switch {
    case errors.Is(err, ErrNotFound):
        next.NotFound = true
    case err != nil:
        next.Err = err
    default:
        next.Listing = l
    }

    v.mu.Lock()
    if tok != v.token {
        cur := v.state
        v.mu.Unlock()
        v.log.Debug("dropping stale listing response", "listing_id", id)
        return cur
    }
    v.state = next
    v.mu.Unlock()

    if next.Err != nil {
        v.log.Warn("listing fetch failed", "listing_id", id, "error", next.Err)
    }
    v.notify(next)
    return next
}

// Close invalidates any in-flight Open and clears the state.
func (v *Viewer) Close() {
    v.mu.Lock()
    v.token++
    v.state = State{}
    v.mu.Unlock()
    v.notify(State{})
}

func (v *Viewer) notify(s State) {
    v.mu.Lock()
    fns := make([]func(State), 0, len(v.subs))
    for _, sub := range v.subs {
        fns = append(fns, sub.fn)
    }
    v.mu.Unlock()
    for _, fn := range fns {
        fn(s)
    }
}

// listener is one Subscribe registration; subs is kept in registration order.
type listener struct {
    id int
    fn func(State)
}
