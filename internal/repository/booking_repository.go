package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/iliyamo/dacha-booking/internal/model"
)

// BookingRepo stores booking requests.  All times are UTC.
type BookingRepo struct {
    db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to db.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// BookingFilter narrows the admin booking list.  Zero values match all.
type BookingFilter struct {
    Status    string
    ListingID int64
    Page      int
    Size      int
}

const bookingColumns = `id, listing_id, check_in, check_out, guests, customer_name, customer_phone,
    total_price, status, created_at, updated_at`

func scanBooking(s rowScanner) (model.Booking, error) {
    var b model.Booking
    err := s.Scan(&b.ID, &b.ListingID, &b.CheckIn, &b.CheckOut, &b.Guests, &b.CustomerName,
        &b.CustomerPhone, &b.TotalPrice, &b.Status, &b.CreatedAt, &b.UpdatedAt)
    return b, err
}

// Create inserts a new booking for an existing listing.  The listing check
// and the insert share a transaction; an unknown listing yields
// ErrListingNotFound.  Date order is not checked.
func (r *BookingRepo) Create(ctx context.Context, req model.BookingRequest) (model.Booking, error) {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return model.Booking{}, err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    var id int64
    err = tx.QueryRowContext(ctx, `SELECT id FROM listings WHERE id = ? LOCK IN SHARE MODE`, req.ListingID).Scan(&id)
    if errors.Is(err, sql.ErrNoRows) {
        return model.Booking{}, ErrListingNotFound
    }
    if err != nil {
        return model.Booking{}, err
    }

    res, err := tx.ExecContext(ctx, `INSERT INTO bookings
        (listing_id, check_in, check_out, guests, customer_name, customer_phone, total_price, status)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
        req.ListingID, req.CheckIn.UTC(), req.CheckOut.UTC(), req.Guests,
        req.CustomerName, req.CustomerPhone, req.TotalPrice, model.BookingNew)
    if err != nil {
        if mysqlErrno(err) == errNoReferencedRow {
            return model.Booking{}, ErrListingNotFound
        }
        return model.Booking{}, err
    }
    bid, err := res.LastInsertId()
    if err != nil {
        return model.Booking{}, err
    }
    b, err := scanBooking(tx.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, bid))
    if err != nil {
        return model.Booking{}, err
    }
    if err := tx.Commit(); err != nil {
        return model.Booking{}, err
    }
    committed = true
    return b, nil
}

// GetByID returns ErrBookingNotFound for an unknown id.
func (r *BookingRepo) GetByID(ctx context.Context, id int64) (model.Booking, error) {
    b, err := scanBooking(r.db.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, id))
    if errors.Is(err, sql.ErrNoRows) {
        return model.Booking{}, ErrBookingNotFound
    }
    return b, err
}

// UpdateStatus sets the status of booking id and returns the updated row.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id int64, status string) (model.Booking, error) {
    if _, err := r.db.ExecContext(ctx, `UPDATE bookings SET status = ? WHERE id = ?`, status, id); err != nil {
        return model.Booking{}, err
    }
    return r.GetByID(ctx, id)
}

// List returns one page of bookings, newest first, and the total count.
func (r *BookingRepo) List(ctx context.Context, f BookingFilter) ([]model.Booking, int64, error) {
    where := []string{}
    args := []any{}
    if f.Status != "" {
        where = append(where, "status = ?")
        args = append(args, f.Status)
    }
    if f.ListingID > 0 {
        where = append(where, "listing_id = ?")
        args = append(args, f.ListingID)
    }
    cond := "1=1"
    if len(where) > 0 {
        cond = strings.Join(where, " AND ")
    }

    var total int64
    if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE `+cond, args...).Scan(&total); err != nil {
        return nil, 0, err
    }
    rows, err := r.db.QueryContext(ctx,
        `SELECT `+bookingColumns+` FROM bookings WHERE `+cond+` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
        append(args, f.Size, (f.Page-1)*f.Size)...)
    if err != nil {
        return nil, 0, err
    }
    defer rows.Close()

    out := make([]model.Booking, 0, f.Size)
    for rows.Next() {
        b, err := scanBooking(rows)
        if err != nil {
            return nil, 0, err
        }
        out = append(out, b)
    }
    return out, total, rows.Err()
}
