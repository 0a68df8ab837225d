package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
)

func TestMySQLErrno(t *testing.T) {
	wrapped := fmt.Errorf("delete: %w", &mysql.MySQLError{Number: errRowIsReferenced, Message: "fk"})
	if got := mysqlErrno(wrapped); got != errRowIsReferenced {
		t.Errorf("mysqlErrno = %d", got)
	}
	if got := mysqlErrno(errors.New("plain")); got != 0 {
		t.Errorf("mysqlErrno(plain) = %d", got)
	}
}
