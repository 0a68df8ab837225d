// Package booking holds the checkout flow: the booking draft and its steps,
// the price quote, the phone grammar shared with the backend, and the
// Checkout controller that performs the single create-booking call.
package booking

import (
    "errors"
    "fmt"
    "strings"
    "time"

    "github.com/iliyamo/dacha-booking/internal/model"
)

// Step is a stage of the checkout stepper.
type Step string

const (
    StepPlanning  Step = "PLANNING"
    StepContact   Step = "CONTACT"
    StepSubmitted Step = "SUBMITTED"
)

// ErrInvalidTransition is returned when a step change is not allowed from
// the current step.
var ErrInvalidTransition = errors.New("invalid checkout transition")

// ValidationError reports a draft field that blocks submission.
type ValidationError struct {
    Field   string
    Message string
}

func (e *ValidationError) Error() string {
    return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Contact is the customer's contact details.
type Contact struct {
    Name  string
    Phone string
}

// Draft is an unsubmitted booking.  It is a value: every With* and step
// method returns a new Draft and leaves the receiver untouched.
type Draft struct {
    ListingID int64
    CheckIn   *time.Time
    CheckOut  *time.Time
    Guests    int
    Contact   Contact
    Step      Step
}

// NewDraft starts a draft for a listing: no dates, one guest, empty
// contact, planning step.
func NewDraft(listingID int64) Draft {
    return Draft{ListingID: listingID, Guests: 1, Step: StepPlanning}
}

// WithDates sets the stay dates.  Either may be nil and their order is not
// checked.
func (d Draft) WithDates(checkIn, checkOut *time.Time) Draft {
    d.CheckIn = copyTime(checkIn)
    d.CheckOut = copyTime(checkOut)
    return d
}

// WithGuests sets the guest count; values below one become one.
func (d Draft) WithGuests(n int) Draft {
    if n < 1 {
        n = 1
    }
    d.Guests = n
    return d
}

// WithContact replaces the contact details.
func (d Draft) WithContact(c Contact) Draft {
    d.Contact = c
    return d
}

// Advance moves from planning to contact.  The move is unconditional.
func (d Draft) Advance() (Draft, error) {
    if d.Step != StepPlanning {
        return d, fmt.Errorf("%w: advance from %s", ErrInvalidTransition, d.Step)
    }
    d.Step = StepContact
    return d, nil
}

// Back returns from contact to planning.
func (d Draft) Back() (Draft, error) {
    if d.Step != StepContact {
        return d, fmt.Errorf("%w: back from %s", ErrInvalidTransition, d.Step)
    }
    d.Step = StepPlanning
    return d, nil
}

// Validate checks the gates for submission: a name, a phone with at least
// one local digit, and both stay dates.
func (d Draft) Validate() error {
    if strings.TrimSpace(d.Contact.Name) == "" {
        return &ValidationError{Field: "name", Message: "name is required"}
    }
    if strings.TrimSpace(d.Contact.Phone) == "" {
        return &ValidationError{Field: "phone", Message: "phone is required"}
    }
    if LocalDigits(d.Contact.Phone) == "" {
        return &ValidationError{Field: "phone", Message: "phone has no digits"}
    }
    if d.CheckIn == nil || d.CheckOut == nil {
        return &ValidationError{Field: "dates", Message: "check-in and check-out dates are required"}
    }
    return nil
}

// Request builds the create-booking payload for d priced against l.  It
// validates first and never returns a request for an incomplete draft.
func (d Draft) Request(l model.Listing) (model.BookingRequest, error) {
    if err := d.Validate(); err != nil {
        return model.BookingRequest{}, err
    }
    q := Price(d, l)
    return model.BookingRequest{
        ListingID:     d.ListingID,
        CheckIn:       d.CheckIn.UTC(),
        CheckOut:      d.CheckOut.UTC(),
        Guests:        d.Guests,
        CustomerName:  strings.TrimSpace(d.Contact.Name),
        CustomerPhone: NormalizePhone(d.Contact.Phone),
        TotalPrice:    q.Total,
    }, nil
}

func copyTime(t *time.Time) *time.Time {
    if t == nil {
        return nil
    }
    v := *t
    return &v
}
