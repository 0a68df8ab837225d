package favorites

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/iliyamo/dacha-booking/internal/kv"
)

func TestToggleXOR(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, kv.NewMemory())
	if err != nil {
		t.Fatal(err)
	}
	on, err := s.Toggle(ctx, 7)
	if err != nil || !on {
		t.Fatalf("first toggle = %v, %v", on, err)
	}
	if !s.IsFavorite(7) {
		t.Errorf("IsFavorite(7) false after one toggle")
	}
	on, err = s.Toggle(ctx, 7)
	if err != nil || on {
		t.Fatalf("second toggle = %v, %v", on, err)
	}
	if s.IsFavorite(7) || s.Len() != 0 {
		t.Errorf("two toggles did not cancel out: %v", s.IDs())
	}
}

func TestTogglePersistsBeforeReturning(t *testing.T) {
	ctx := context.Background()
	storage := kv.NewMemory()
	s, _ := Open(ctx, storage)
	for _, id := range []int64{3, 1, 2} {
		if _, err := s.Toggle(ctx, id); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := s.Toggle(ctx, 1); err != nil {
		t.Fatal(err)
	}
	raw, err := storage.Get(ctx, StorageKey)
	if err != nil || string(raw) != "[3,2]" {
		t.Fatalf("stored = %q, %v", raw, err)
	}

	reloaded, err := Open(ctx, storage)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(reloaded.IDs(), []int64{3, 2}) {
		t.Errorf("reloaded IDs = %v", reloaded.IDs())
	}
}

func TestOpenDropsDuplicates(t *testing.T) {
	ctx := context.Background()
	storage := kv.NewMemory()
	_ = storage.Set(ctx, StorageKey, []byte("[5,5,6]"))
	s, err := Open(ctx, storage)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(s.IDs(), []int64{5, 6}) {
		t.Errorf("IDs = %v", s.IDs())
	}
}

func TestOpenCorrupt(t *testing.T) {
	ctx := context.Background()
	storage := kv.NewMemory()
	_ = storage.Set(ctx, StorageKey, []byte("{oops"))
	if _, err := Open(ctx, storage); err == nil {
		t.Fatal("expected decode error")
	}
}

type failingStorage struct{ kv.Storage }

func (failingStorage) Set(context.Context, string, []byte) error { return errors.New("disk full") }

func TestToggleWriteFailureLeavesSet(t *testing.T) {
	ctx := context.Background()
	s, _ := Open(ctx, failingStorage{kv.NewMemory()})
	on, err := s.Toggle(ctx, 9)
	if err == nil {
		t.Fatal("expected error")
	}
	if on || s.IsFavorite(9) {
		t.Errorf("failed toggle changed the set")
	}
}
