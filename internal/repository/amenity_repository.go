package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/dacha-booking/internal/model"
)

// AmenityRepo stores the amenity catalogue shown in the admin listing form.
type AmenityRepo struct {
	db *sql.DB
}

func NewAmenityRepo(db *sql.DB) *AmenityRepo { return &AmenityRepo{db: db} }

// ListAll returns every amenity ordered by id.
func (r *AmenityRepo) ListAll(ctx context.Context) ([]model.AmenityRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name_uz, name_ru, icon FROM amenities ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.AmenityRecord{}
	for rows.Next() {
		var a model.AmenityRecord
		if err := rows.Scan(&a.ID, &a.NameUz, &a.NameRu, &a.Icon); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Create inserts a; a duplicate Uzbek name is ErrConflict.
func (r *AmenityRepo) Create(ctx context.Context, a *model.AmenityRecord) error {
	res, err := r.db.ExecContext(ctx, `INSERT INTO amenities (name_uz, name_ru, icon) VALUES (?, ?, ?)`,
		a.NameUz, a.NameRu, a.Icon)
	if err != nil {
		if mysqlErrno(err) == errDupEntry {
			return ErrConflict
		}
		return err
	}
	a.ID, err = res.LastInsertId()
	return err
}

// Delete removes amenity id.
func (r *AmenityRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM amenities WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAmenityNotFound
	}
	return nil
}
