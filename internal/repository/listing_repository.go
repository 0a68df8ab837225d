package repository

import (
    "context"
    "database/sql"
    "encoding/json"
    "errors"
    "fmt"
    "strings"

    "github.com/iliyamo/dacha-booking/internal/model"
)

// ListingRepo stores listings.  Amenity flags and the image gallery live in
// JSON columns; rating and video_url are nullable.
type ListingRepo struct {
    db *sql.DB
}

// NewListingRepo returns a ListingRepo bound to db.
func NewListingRepo(db *sql.DB) *ListingRepo { return &ListingRepo{db: db} }

const listingColumns = `id, title, description, region, price_per_night, rating, guests_max, rooms, beds, baths,
    amenities, images, video_url, status, created_at, updated_at`

type rowScanner interface {
    Scan(dest ...any) error
}

func scanListing(s rowScanner) (model.Listing, error) {
    var (
        l         model.Listing
        region    string
        rating    sql.NullFloat64
        amenities []byte
        images    []byte
        video     sql.NullString
    )
    err := s.Scan(&l.ID, &l.Title, &l.Description, &region, &l.PricePerNight, &rating,
        &l.GuestsMax, &l.Rooms, &l.Beds, &l.Baths, &amenities, &images, &video, &l.Status,
        &l.CreatedAt, &l.UpdatedAt)
    if err != nil {
        return model.Listing{}, err
    }
    l.Region = model.Region(region)
    if rating.Valid {
        l.Rating = rating.Float64
    }
    if video.Valid {
        l.VideoURL = video.String
    }
    l.Amenities = map[model.Amenity]bool{}
    if len(amenities) > 0 {
        var raw map[string]bool
        if err := json.Unmarshal(amenities, &raw); err != nil {
            return model.Listing{}, fmt.Errorf("listing %d amenities: %w", l.ID, err)
        }
        for k, v := range raw {
            l.Amenities[model.Amenity(k)] = v
        }
    }
    l.Images = []string{}
    if len(images) > 0 {
        if err := json.Unmarshal(images, &l.Images); err != nil {
            return model.Listing{}, fmt.Errorf("listing %d images: %w", l.ID, err)
        }
    }
    return l, nil
}

// List returns one page of listings matching q and the total match count.
// Search matches the title case-insensitively.  Newest listings come first.
func (r *ListingRepo) List(ctx context.Context, q model.ListingQuery) ([]model.Listing, int64, error) {
    where := []string{}
    args := []any{}
    if q.Region != "" {
        where = append(where, "region = ?")
        args = append(args, string(q.Region))
    }
    if q.Status != "" {
        where = append(where, "status = ?")
        args = append(args, q.Status)
    }
    if s := strings.TrimSpace(q.Search); s != "" {
        where = append(where, "LOWER(title) LIKE ?")
        args = append(args, "%"+strings.ToLower(s)+"%")
    }
    cond := "1=1"
    if len(where) > 0 {
        cond = strings.Join(where, " AND ")
    }

    var total int64
    if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM listings WHERE `+cond, args...).Scan(&total); err != nil {
        return nil, 0, err
    }

    dataSQL := `SELECT ` + listingColumns + ` FROM listings WHERE ` + cond + ` ORDER BY id DESC LIMIT ? OFFSET ?`
    rows, err := r.db.QueryContext(ctx, dataSQL, append(args, q.Size, (q.Page-1)*q.Size)...)
    if err != nil {
        return nil, 0, err
    }
    defer rows.Close()

    out := make([]model.Listing, 0, q.Size)
    for rows.Next() {
        l, err := scanListing(rows)
        if err != nil {
            return nil, 0, err
        }
        out = append(out, l)
    }
    if err := rows.Err(); err != nil {
        return nil, 0, err
    }
    return out, total, nil
}

// GetByID returns ErrListingNotFound for an unknown id.
func (r *ListingRepo) GetByID(ctx context.Context, id int64) (model.Listing, error) {
    row := r.db.QueryRowContext(ctx, `SELECT `+listingColumns+` FROM listings WHERE id = ?`, id)
    l, err := scanListing(row)
    if errors.Is(err, sql.ErrNoRows) {
        return model.Listing{}, ErrListingNotFound
    }
    return l, err
}

func listingArgs(l *model.Listing) ([]any, error) {
    amenities := make(map[string]bool, len(l.Amenities))
    for k, v := range l.Amenities {
        amenities[string(k)] = v
    }
    am, err := json.Marshal(amenities)
    if err != nil {
        return nil, err
    }
    images := l.Images
    if images == nil {
        images = []string{}
    }
    im, err := json.Marshal(images)
    if err != nil {
        return nil, err
    }
    var rating sql.NullFloat64
    if l.Rating > 0 {
        rating = sql.NullFloat64{Float64: l.Rating, Valid: true}
    }
    var video sql.NullString
    if l.VideoURL != "" {
        video = sql.NullString{String: l.VideoURL, Valid: true}
    }
    status := l.Status
    if status == "" {
        status = model.ListingActive
    }
    return []any{l.Title, l.Description, string(l.Region), l.PricePerNight, rating,
        l.GuestsMax, l.Rooms, l.Beds, l.Baths, am, im, video, status}, nil
}

// Create inserts l and fills in its id and timestamps.
func (r *ListingRepo) Create(ctx context.Context, l *model.Listing) error {
    args, err := listingArgs(l)
    if err != nil {
        return err
    }
    res, err := r.db.ExecContext(ctx, `INSERT INTO listings
        (title, description, region, price_per_night, rating, guests_max, rooms, beds, baths, amenities, images, video_url, status)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, args...)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    created, err := r.GetByID(ctx, id)
    if err != nil {
        return err
    }
    *l = created
    return nil
}

// Update overwrites every column of listing l.ID.
func (r *ListingRepo) Update(ctx context.Context, l *model.Listing) error {
    args, err := listingArgs(l)
    if err != nil {
        return err
    }
    _, err = r.db.ExecContext(ctx, `UPDATE listings SET
        title = ?, description = ?, region = ?, price_per_night = ?, rating = ?, guests_max = ?, rooms = ?,
        beds = ?, baths = ?, amenities = ?, images = ?, video_url = ?, status = ?
        WHERE id = ?`, append(args, l.ID)...)
    if err != nil {
        return err
    }
    // MySQL reports zero affected rows for an unchanged row, so existence
    // is checked by reading it back.
    updated, err := r.GetByID(ctx, l.ID)
    if err != nil {
        return err
    }
    *l = updated
    return nil
}

// Delete removes listing id.  Listings with bookings cannot be deleted and
// yield ErrConflict; hide them instead.
func (r *ListingRepo) Delete(ctx context.Context, id int64) error {
    res, err := r.db.ExecContext(ctx, `DELETE FROM listings WHERE id = ?`, id)
    if err != nil {
        if mysqlErrno(err) == errRowIsReferenced {
            return ErrConflict
        }
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrListingNotFound
    }
    return nil
}
