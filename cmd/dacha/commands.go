package main

import (
    "context"
    "errors"
    "flag"
    "fmt"
    "io"
    "log/slog"
    "net/url"
    "strconv"
    "strings"
    "time"

    "github.com/iliyamo/dacha-booking/internal/apiclient"
    "github.com/iliyamo/dacha-booking/internal/booking"
    "github.com/iliyamo/dacha-booking/internal/catalog"
    "github.com/iliyamo/dacha-booking/internal/i18n"
    "github.com/iliyamo/dacha-booking/internal/model"
    "github.com/iliyamo/dacha-booking/internal/search"
    "github.com/iliyamo/dacha-booking/internal/session"
)

var errUsage = errors.New("usage: dacha search|show|fav|favs|lang|book|amenities|admin ...")

type app struct {
    out      io.Writer
    log      *slog.Logger
    session  *session.Session
    src      catalog.Source
    browser  *catalog.Browser
    bookings booking.Submitter // nil with the demo catalog
    api      *apiclient.Client // nil with the demo catalog
    adminAPI *apiclient.Client // api with DACHA_ADMIN_TOKEN, if set
}

func (a *app) run(ctx context.Context, args []string) error {
    if len(args) == 0 {
        return errUsage
    }
    cmd, rest := args[0], args[1:]
    switch cmd {
    case "search":
        return a.search(ctx, rest)
    case "show":
        return a.show(ctx, rest)
    case "fav":
        return a.fav(ctx, rest)
    case "favs":
        return a.favs(ctx)
    case "lang":
        return a.lang(ctx, rest)
    case "book":
        return a.book(ctx, rest)
    case "amenities":
        return a.amenities(ctx)
    case "admin":
        return a.admin(ctx, rest)
    default:
        return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
    }
}

func (a *app) t(key string) string { return a.session.T(key) }

func (a *app) price(v int64) string { return i18n.FormatPrice(a.session.Language(), v) }

func (a *app) search(ctx context.Context, args []string) error {
    fs := flag.NewFlagSet("search", flag.ContinueOnError)
    fs.SetOutput(a.out)
    region := fs.String("region", "", "region key")
    guests := fs.String("guests", "", "minimum guests")
    rooms := fs.String("rooms", "", "minimum rooms")
    minPrice := fs.String("min-price", "", "minimum nightly price")
    maxPrice := fs.String("max-price", "", "maximum nightly price")
    amenities := fs.String("amenities", "", "comma separated amenity keys")
    sortKey := fs.String("sort", "", "popular | price-low | price-high")
    page := fs.Int("page", 1, "result page")
    if err := fs.Parse(args); err != nil {
        return err
    }

    // Same parsing as the search form's query string.
    c := search.ParseCriteria(url.Values{
        "region":    {*region},
        "guests":    {*guests},
        "rooms":     {*rooms},
        "min_price": {*minPrice},
        "max_price": {*maxPrice},
        "amenities": {*amenities},
        "sort":      {*sortKey},
    })
    res, err := a.browser.Search(ctx, c, *page)
    if err != nil {
        return err
    }

    lang := a.session.Language()
    fmt.Fprintf(a.out, "%s: %s\n", a.t("search.title"), i18n.RegionLabel(lang, c.Region))
    if len(res.Items) == 0 {
        fmt.Fprintln(a.out, a.t("search.empty"))
        return nil
    }
    fmt.Fprintf(a.out, "%s: %d\n", a.t("search.found"), len(res.Items))
    for _, l := range res.Items {
        a.printRow(l)
    }
    if res.Pages > 1 {
        fmt.Fprintf(a.out, "page %d/%d\n", *page, res.Pages)
    }
    if len(res.Unapplied) > 0 {
        fmt.Fprintf(a.out, "(server-side search ignores: %s)\n", strings.Join(res.Unapplied, ", "))
    }
    return nil
}

func (a *app) printRow(l model.Listing) {
    mark := " "
    if a.session.Favorites().IsFavorite(l.ID) {
        mark = "*"
    }
    fmt.Fprintf(a.out, "%s %4d  %-32s %-12s %s/%s\n", mark, l.ID, l.Title,
        i18n.RegionLabel(a.session.Language(), l.Region), a.price(l.PricePerNight), a.t("listing.per_night"))
}

func parseListingID(args []string) (int64, error) {
    if len(args) == 0 {
        return 0, errors.New("listing id required")
    }
    id, err := strconv.ParseInt(args[0], 10, 64)
    if err != nil || id <= 0 {
        return 0, fmt.Errorf("invalid listing id %q", args[0])
    }
    return id, nil
}

func (a *app) show(ctx context.Context, args []string) error {
    id, err := parseListingID(args)
    if err != nil {
        return err
    }
    v := catalog.NewViewer(a.src, a.log)
    defer v.Close()
    st := v.Open(ctx, id)
    switch {
    case st.NotFound:
        fmt.Fprintln(a.out, a.t("listing.not_found"))
        return nil
    case st.Err != nil:
        return st.Err
    }

    l, lang := st.Listing, a.session.Language()
    fmt.Fprintf(a.out, "%s  (%s)\n", l.Title, i18n.RegionLabel(lang, l.Region))
    fmt.Fprintf(a.out, "%s / %s\n", a.price(l.PricePerNight), a.t("listing.per_night"))
    if l.Rating > 0 {
        fmt.Fprintf(a.out, "%s: %.1f\n", a.t("listing.rating"), l.Rating)
    }
    fmt.Fprintf(a.out, "%s: %d  %s: %d  %s: %d  %s: %d\n",
        a.t("listing.guests"), l.GuestsMax, a.t("listing.rooms"), l.Rooms,
        a.t("listing.beds"), l.Beds, a.t("listing.baths"), l.Baths)
    var labels []string
    for _, am := range model.Amenities {
        if l.Has(am) {
            labels = append(labels, i18n.AmenityLabel(lang, am))
        }
    }
    if len(labels) > 0 {
        fmt.Fprintln(a.out, strings.Join(labels, ", "))
    }
    if l.Description != "" {
        fmt.Fprintln(a.out, l.Description)
    }
    if img := l.PrimaryImage(); img != "" {
        fmt.Fprintln(a.out, img)
    }
    return nil
}

func (a *app) fav(ctx context.Context, args []string) error {
    id, err := parseListingID(args)
    if err != nil {
        return err
    }
    on, err := a.session.ToggleFavorite(ctx, id)
    if err != nil {
        return err
    }
    if on {
        fmt.Fprintln(a.out, a.t("favorites.added"))
    } else {
        fmt.Fprintln(a.out, a.t("favorites.removed"))
    }
    return nil
}

func (a *app) favs(ctx context.Context) error {
    ids := a.session.Favorites().IDs()
    if len(ids) == 0 {
        fmt.Fprintln(a.out, a.t("favorites.empty"))
        return nil
    }
    for _, id := range ids {
        l, err := a.src.Listing(ctx, id)
        if errors.Is(err, catalog.ErrNotFound) {
            fmt.Fprintf(a.out, "  %4d  %s\n", id, a.t("listing.not_found"))
            continue
        }
        if err != nil {
            return err
        }
        a.printRow(l)
    }
    return nil
}

func (a *app) lang(ctx context.Context, args []string) error {
    if len(args) == 0 {
        fmt.Fprintln(a.out, a.session.Language())
        return nil
    }
    return a.session.SetLanguage(ctx, i18n.Language(strings.ToLower(args[0])))
}

// amenities lists the amenity catalog.  With a backend the list comes from
// GET /amenities/ and a failed fetch prints nothing.
func (a *app) amenities(ctx context.Context) error {
    lang := a.session.Language()
    if a.api == nil {
        for _, am := range model.Amenities {
            fmt.Fprintf(a.out, "%-10s %-10s %s\n", am, am.Icon(), i18n.AmenityLabel(lang, am))
        }
        return nil
    }
    recs, err := a.api.ListAmenities(ctx)
    if err != nil {
        a.log.Warn("amenities unavailable", "error", err)
        return nil
    }
    for _, r := range recs {
        label := r.NameUz
        if lang == i18n.Russian && r.NameRu != "" {
            label = r.NameRu
        }
        fmt.Fprintf(a.out, "%-10s %-10s %s\n", r.NameUz, r.Icon, label)
    }
    return nil
}

const dateLayout = "2006-01-02"

func (a *app) book(ctx context.Context, args []string) error {
    id, err := parseListingID(args)
    if err != nil {
        return err
    }
    fs := flag.NewFlagSet("book", flag.ContinueOnError)
    fs.SetOutput(a.out)
    in := fs.String("in", "", "check-in date YYYY-MM-DD")
    out := fs.String("out", "", "check-out date YYYY-MM-DD")
    guests := fs.Int("guests", 1, "number of guests")
    name := fs.String("name", "", "contact name")
    phone := fs.String("phone", "", "contact phone")
    if err := fs.Parse(args[1:]); err != nil {
        return err
    }
    if a.bookings == nil {
        return errors.New("booking needs DACHA_API_URL")
    }

    l, err := a.src.Listing(ctx, id)
    if err != nil {
        return err
    }
    checkIn, err := optDate(*in)
    if err != nil {
        return err
    }
    checkOut, err := optDate(*out)
    if err != nil {
        return err
    }

    co := booking.NewCheckout(l, a.bookings, a.log)
    if err := co.SetDates(checkIn, checkOut); err != nil {
        return err
    }
    if err := co.SetGuests(*guests); err != nil {
        return err
    }
    q := co.Quote()
    fmt.Fprintf(a.out, "%s: %d\n%s: %s\n%s: %s\n%s: %s\n",
        a.t("checkout.nights"), q.Nights,
        a.t("checkout.base"), a.price(q.BasePrice),
        a.t("checkout.fee"), a.price(q.ServiceFee),
        a.t("checkout.total"), a.price(q.Total))

    if err := co.Next(); err != nil {
        return err
    }
    if err := co.SetContact(*name, *phone); err != nil {
        return err
    }
    fmt.Fprintln(a.out, a.t("checkout.pending"))
    b, err := co.Submit(ctx)
    var verr *booking.ValidationError
    if errors.As(err, &verr) {
        return errors.New(a.validationMessage(verr))
    }
    if err != nil {
        return err
    }
    fmt.Fprintf(a.out, "%s (#%d)\n", a.t("checkout.success"), b.ID)
    return nil
}

func (a *app) validationMessage(e *booking.ValidationError) string {
    switch e.Field {
    case "dates":
        return a.t("error.dates")
    case "name":
        return a.t("error.name")
    case "phone":
        return a.t("error.phone")
    }
    return e.Error()
}

func optDate(s string) (*time.Time, error) {
    if s == "" {
        return nil, nil
    }
    t, err := time.ParseInLocation(dateLayout, s, time.UTC)
    if err != nil {
        return nil, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
    }
    return &t, nil
}

func (a *app) admin(ctx context.Context, args []string) error {
    if a.api == nil {
        return errors.New("admin commands need DACHA_API_URL")
    }
    if len(args) == 0 {
        return errUsage
    }
    switch args[0] {
    case "login":
        fs := flag.NewFlagSet("login", flag.ContinueOnError)
        fs.SetOutput(a.out)
        user := fs.String("user", "", "admin username")
        pass := fs.String("pass", "", "admin password")
        if err := fs.Parse(args[1:]); err != nil {
            return err
        }
        token, err := a.api.Login(ctx, *user, *pass)
        if err != nil {
            return err
        }
        fmt.Fprintf(a.out, "export DACHA_ADMIN_TOKEN=%s\n", token)
        return nil
    case "status":
        if len(args) != 3 {
            return errors.New("usage: dacha admin status <booking-id> <status>")
        }
        id, err := strconv.ParseInt(args[1], 10, 64)
        if err != nil || id <= 0 {
            return fmt.Errorf("invalid booking id %q", args[1])
        }
        if !model.ValidBookingStatus(args[2]) {
            return fmt.Errorf("unknown status %q", args[2])
        }
        if a.adminAPI == nil {
            return errors.New("DACHA_ADMIN_TOKEN is not set; run dacha admin login")
        }
        if err := a.adminAPI.UpdateBookingStatus(ctx, id, args[2]); err != nil {
            return err
        }
        fmt.Fprintf(a.out, "booking #%d: %s\n", id, args[2])
        return nil
    }
    return errUsage
}
