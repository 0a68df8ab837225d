// Package repository is the MySQL storage of listings, bookings and
// amenities.  The sentinel errors below let handlers pick a status code
// without looking at driver errors.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

var (
	ErrListingNotFound = errors.New("listing not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrAmenityNotFound = errors.New("amenity not found")

	// ErrConflict means the write clashes with existing rows: a duplicate
	// unique key, or deleting a listing that still has bookings.
	ErrConflict = errors.New("conflict")
)

// MySQL server error numbers.
const (
	errDupEntry        = 1062
	errRowIsReferenced = 1451
	errNoReferencedRow = 1452
)

func mysqlErrno(err error) uint16 {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number
	}
	return 0
}
