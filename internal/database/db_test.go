package database

import (
	"strings"
	"testing"
)

func TestDSN(t *testing.T) {
	dsn := DSN("dacha", "s3cret", "db", "3306", "dacha")
	for _, want := range []string{"dacha:s3cret@tcp(db:3306)/dacha", "parseTime=true", "charset=utf8mb4"} {
		if !strings.Contains(dsn, want) {
			t.Errorf("dsn %q lacks %q", dsn, want)
		}
	}
}

func TestDSNWithoutPassword(t *testing.T) {
	dsn := DSN("root", "", "localhost", "3306", "dacha")
	if !strings.HasPrefix(dsn, "root@tcp(localhost:3306)/dacha") {
		t.Errorf("dsn = %q", dsn)
	}
}
