package booking

import (
    "context"
    "errors"
    "fmt"
    "log/slog"
    "sync"
    "time"

    "github.com/iliyamo/dacha-booking/internal/model"
)

var (
    // ErrSubmitInFlight is returned by Submit while a previous submit for
    // the same checkout has not completed.
    ErrSubmitInFlight = errors.New("booking submission already in progress")
    // ErrCheckoutClosed is returned when the checkout was reset while its
    // submit was in flight; the late result is discarded.
    ErrCheckoutClosed = errors.New("checkout was reset")
    // ErrSubmitted is returned when editing a draft that was already
    // submitted.
    ErrSubmitted = errors.New("booking already submitted")
)

// Submitter performs the create-booking call.
type Submitter interface {
    CreateBooking(ctx context.Context, req model.BookingRequest) (model.Booking, error)
}

// Checkout drives one listing's booking flow.  It owns the current draft,
// the submit latch and the confirmed booking once the backend accepts it.
// All methods are safe for concurrent use, although the flow itself is
// sequential.
type Checkout struct {
    mu        sync.Mutex
    listing   model.Listing
    draft     Draft
    submitter Submitter
    log       *slog.Logger

    pending bool
    gen     uint64
    booking *model.Booking
}

// NewCheckout starts a checkout for l.  The submitter must be non-nil.
func NewCheckout(l model.Listing, s Submitter, log *slog.Logger) *Checkout {
    if s == nil {
        panic("nil submitter passed to NewCheckout")
    }
    if log == nil {
        log = slog.Default()
    }
    return &Checkout{
        listing:   l,
        draft:     NewDraft(l.ID),
        submitter: s,
        log:       log.With("component", "checkout", "listing_id", l.ID),
    }
}

// Draft returns a copy of the current draft.
func (c *Checkout) Draft() Draft {
    c.mu.Lock()
    defer c.mu.Unlock()
    return c.draft
}

// Quote prices the current draft against the current listing.
func (c *Checkout) Quote() Quote {
    c.mu.Lock()
    defer c.mu.Unlock()
    return Price(c.draft, c.listing)
}

// Pending reports whether a submit is in flight.
func (c *Checkout) Pending() bool {
    c.mu.Lock()
    defer c.mu.Unlock()
    return c.pending
}

// Booking returns the confirmed booking after a successful submit.
func (c *Checkout) Booking() (model.Booking, bool) {
    c.mu.Lock()
    defer c.mu.Unlock()
    if c.booking == nil {
        return model.Booking{}, false
    }
    return *c.booking, true
}

// SetListing swaps in a refreshed copy of the listing, e.g. after a price
// change.  A different listing ID starts a new draft.
func (c *Checkout) SetListing(l model.Listing) {
    c.mu.Lock()
    defer c.mu.Unlock()
    if l.ID != c.listing.ID {
        c.resetLocked()
        c.draft = NewDraft(l.ID)
    }
    c.listing = l
}

// SetDates updates the stay dates.
func (c *Checkout) SetDates(checkIn, checkOut *time.Time) error {
    return c.edit(func(d Draft) Draft { return d.WithDates(checkIn, checkOut) })
}

// SetGuests updates the guest count.
func (c *Checkout) SetGuests(n int) error {
    return c.edit(func(d Draft) Draft { return d.WithGuests(n) })
}

// SetContact updates the contact details.  The phone is kept as typed and
// normalized at submit time.
func (c *Checkout) SetContact(name, phone string) error {
    return c.edit(func(d Draft) Draft { return d.WithContact(Contact{Name: name, Phone: phone}) })
}

func (c *Checkout) edit(fn func(Draft) Draft) error {
    c.mu.Lock()
    defer c.mu.Unlock()
    if c.draft.Step == StepSubmitted {
        return ErrSubmitted
    }
    c.draft = fn(c.draft)
    return nil
}

// Next moves from the planning step to the contact step.
func (c *Checkout) Next() error {
    c.mu.Lock()
    defer c.mu.Unlock()
    d, err := c.draft.Advance()
    if err != nil {
        return err
    }
    c.draft = d
    return nil
}

// Back returns from the contact step to the planning step.  It is refused
// while a submit is in flight.
func (c *Checkout) Back() error {
    c.mu.Lock()
    defer c.mu.Unlock()
    if c.pending {
        return ErrSubmitInFlight
    }
    d, err := c.draft.Back()
    if err != nil {
        return err
    }
    c.draft = d
    return nil
}

// Submit validates the draft and creates the booking.  Validation failures
// return a *ValidationError without calling the submitter.  A submitter
// error is returned as is and the draft stays on the contact step so the
// caller can submit again.
func (c *Checkout) Submit(ctx context.Context) (model.Booking, error) {
    c.mu.Lock()
    if c.draft.Step != StepContact {
        step := c.draft.Step
        c.mu.Unlock()
        return model.Booking{}, fmt.Errorf("%w: submit from %s", ErrInvalidTransition, step)
    }
    if c.pending {
        c.mu.Unlock()
        return model.Booking{}, ErrSubmitInFlight
    }
    req, err := c.draft.Request(c.listing)
    if err != nil {
        c.mu.Unlock()
        return model.Booking{}, err
    }
    c.pending = true
    gen := c.gen
    c.mu.Unlock()

    c.log.Info("submitting booking", "guests", req.Guests, "total_price", req.TotalPrice)
    b, err := c.submitter.CreateBooking(ctx, req)

    c.mu.Lock()
    defer c.mu.Unlock()
    if gen != c.gen {
        c.log.Warn("discarding booking result after reset", "error", err)
        return model.Booking{}, ErrCheckoutClosed
    }
    c.pending = false
    if err != nil {
        c.log.Warn("booking submission failed", "error", err)
        return model.Booking{}, err
    }
    c.draft.Step = StepSubmitted
    c.booking = &b
    c.log.Info("booking created", "booking_id", b.ID)
    return b, nil
}

// Reset discards the flow and starts a new draft for the same listing.  A
// submit still in flight has its result dropped.
func (c *Checkout) Reset() {
    c.mu.Lock()
    defer c.mu.Unlock()
    c.resetLocked()
}

func (c *Checkout) resetLocked() {
    c.gen++
    c.pending = false
    c.booking = nil
    c.draft = NewDraft(c.listing.ID)
}
