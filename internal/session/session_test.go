package session

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/iliyamo/dacha-booking/internal/favorites"
	"github.com/iliyamo/dacha-booking/internal/i18n"
	"github.com/iliyamo/dacha-booking/internal/kv"
)

func quiet() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestOpenDefaults(t *testing.T) {
	s, err := Open(context.Background(), kv.NewMemory(), quiet())
	if err != nil {
		t.Fatal(err)
	}
	if s.Language() != i18n.Uzbek || s.Favorites().Len() != 0 {
		t.Errorf("lang %s, favorites %d", s.Language(), s.Favorites().Len())
	}
}

func TestOpenRestoresState(t *testing.T) {
	ctx := context.Background()
	st := kv.NewMemory()
	_ = st.Set(ctx, LanguageKey, []byte("ru"))
	_ = st.Set(ctx, favorites.StorageKey, []byte("[4,9]"))

	s, err := Open(ctx, st, quiet())
	if err != nil {
		t.Fatal(err)
	}
	if s.Language() != i18n.Russian || !s.Favorites().IsFavorite(9) {
		t.Errorf("lang %s favorites %v", s.Language(), s.Favorites().IDs())
	}
}

func TestOpenUnknownLanguageFallsBack(t *testing.T) {
	ctx := context.Background()
	st := kv.NewMemory()
	_ = st.Set(ctx, LanguageKey, []byte("de"))
	s, err := Open(ctx, st, quiet())
	if err != nil {
		t.Fatal(err)
	}
	if s.Language() != i18n.Default {
		t.Errorf("lang = %s", s.Language())
	}
}

func TestOpenResetsCorruptFavorites(t *testing.T) {
	ctx := context.Background()
	st := kv.NewMemory()
	_ = st.Set(ctx, favorites.StorageKey, []byte("{oops"))
	s, err := Open(ctx, st, quiet())
	if err != nil {
		t.Fatal(err)
	}
	if s.Favorites().Len() != 0 {
		t.Errorf("favorites = %v", s.Favorites().IDs())
	}
	raw, _ := st.Get(ctx, favorites.StorageKey)
	if string(raw) != "[]" {
		t.Errorf("stored = %s", raw)
	}
}

func TestEvents(t *testing.T) {
	ctx := context.Background()
	st := kv.NewMemory()
	s, _ := Open(ctx, st, quiet())

	var events []Event
	cancel := s.Subscribe(func(e Event) { events = append(events, e) })

	if err := s.SetLanguage(ctx, i18n.English); err != nil {
		t.Fatal(err)
	}
	if err := s.SetLanguage(ctx, i18n.English); err != nil {
		t.Fatal(err)
	}
	if on, err := s.ToggleFavorite(ctx, 3); err != nil || !on {
		t.Fatalf("toggle = %v, %v", on, err)
	}
	cancel()
	_, _ = s.ToggleFavorite(ctx, 3)

	if len(events) != 2 {
		t.Fatalf("events = %+v", events)
	}
	if events[0] != (Event{Kind: LanguageChanged, Language: i18n.English}) {
		t.Errorf("event 0 = %+v", events[0])
	}
	if events[1] != (Event{Kind: FavoriteToggled, ListingID: 3, Favorite: true}) {
		t.Errorf("event 1 = %+v", events[1])
	}

	raw, _ := st.Get(ctx, LanguageKey)
	if string(raw) != "en" {
		t.Errorf("stored lang = %s", raw)
	}
	if s.T("checkout.total") != "Total" {
		t.Errorf("T did not translate")
	}
}

func TestSetLanguageRejectsUnknown(t *testing.T) {
	s, _ := Open(context.Background(), kv.NewMemory(), quiet())
	if err := s.SetLanguage(context.Background(), "de"); err == nil {
		t.Fatal("expected error")
	}
}

func TestSubscribersKeepOrder(t *testing.T) {
	ctx := context.Background()
	s, _ := Open(ctx, kv.NewMemory(), quiet())

	var order []int
	var cancels []func()
	for i := 0; i < 8; i++ {
		i := i
		cancels = append(cancels, s.Subscribe(func(Event) { order = append(order, i) }))
	}
	cancels[0]()
	cancels[5]()
	if _, err := s.ToggleFavorite(ctx, 1); err != nil {
		t.Fatal(err)
	}

	want := []int{1, 2, 3, 4, 6, 7}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}
