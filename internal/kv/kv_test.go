package kv

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func exercise(t *testing.T, s Storage) {
	t.Helper()
	ctx := context.Background()
	if _, err := s.Get(ctx, "favorites"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get on empty storage err = %v, want ErrNotFound", err)
	}
	if err := s.Set(ctx, "favorites", []byte("[1,2]")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(ctx, "favorites", []byte("[3]")); err != nil {
		t.Fatalf("second Set: %v", err)
	}
	got, err := s.Get(ctx, "favorites")
	if err != nil || string(got) != "[3]" {
		t.Fatalf("Get = %q, %v", got, err)
	}
}

func TestMemory(t *testing.T) {
	m := NewMemory()
	exercise(t, m)

	// returned slices are copies
	b, _ := m.Get(context.Background(), "favorites")
	b[0] = 'x'
	again, _ := m.Get(context.Background(), "favorites")
	if string(again) != "[3]" {
		t.Errorf("stored value aliased caller slice: %q", again)
	}
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	f, err := NewFile(filepath.Join(dir, "state"))
	if err != nil {
		t.Fatal(err)
	}
	exercise(t, f)

	entries, err := os.ReadDir(filepath.Join(dir, "state"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "favorites.json" {
		t.Errorf("unexpected files left behind: %v", entries)
	}

	// a fresh handle on the same directory sees the value
	reopened, _ := NewFile(filepath.Join(dir, "state"))
	got, err := reopened.Get(context.Background(), "favorites")
	if err != nil || string(got) != "[3]" {
		t.Errorf("reopened Get = %q, %v", got, err)
	}
}

func TestFileRejectsPathKeys(t *testing.T) {
	f, _ := NewFile(t.TempDir())
	for _, key := range []string{"", "../x", "a/b", ".."} {
		if err := f.Set(context.Background(), key, []byte("1")); err == nil {
			t.Errorf("Set(%q) succeeded", key)
		}
	}
}
