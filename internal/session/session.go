// Package session holds the user state shared by every screen: the UI
// language and the favorites set.  It is created once at startup and passed
// to whatever needs it; changes are announced to subscribers.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/iliyamo/dacha-booking/internal/favorites"
	"github.com/iliyamo/dacha-booking/internal/i18n"
	"github.com/iliyamo/dacha-booking/internal/kv"
)

// LanguageKey is the storage key of the two-letter language code.
const LanguageKey = "lang"

// EventKind says what changed.
type EventKind int

const (
	LanguageChanged EventKind = iota + 1
	FavoriteToggled
)

// Event describes one change.  ListingID and Favorite are set for
// FavoriteToggled, Language for LanguageChanged.
type Event struct {
	Kind      EventKind
	Language  i18n.Language
	ListingID int64
	Favorite  bool
}

// Session is safe for concurrent use.
type Session struct {
	storage kv.Storage
	favs    *favorites.Store
	log     *slog.Logger

	mu     sync.Mutex
	lang   i18n.Language
	subs   []listener
	nextID int
}

// Open loads the stored language and favorites.  An unknown or missing
// language code falls back to the default language.  Corrupt favorites
// data is logged and replaced by an empty set.
func Open(ctx context.Context, storage kv.Storage, log *slog.Logger) (*Session, error) {
	if log == nil {
		log = slog.Default()
	}
	s := &Session{storage: storage, log: log.With("component", "session"), lang: i18n.Default}

	raw, err := storage.Get(ctx, LanguageKey)
	switch {
	case errors.Is(err, kv.ErrNotFound):
	case err != nil:
		return nil, fmt.Errorf("load language: %w", err)
	default:
		if l := i18n.Language(raw); l.Valid() {
			s.lang = l
		} else {
			s.log.Warn("ignoring unknown stored language", "value", string(raw))
		}
	}

	favs, err := favorites.Open(ctx, storage)
	if err != nil {
		s.log.Warn("favorites unreadable, starting empty", "error", err)
		if err := storage.Set(ctx, favorites.StorageKey, []byte("[]")); err != nil {
			return nil, fmt.Errorf("reset favorites: %w", err)
		}
		if favs, err = favorites.Open(ctx, storage); err != nil {
			return nil, err
		}
	}
	s.favs = favs
	return s, nil
}

// Language returns the current UI language.
func (s *Session) Language() i18n.Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lang
}

// SetLanguage stores l and notifies subscribers.  Unsupported codes are
// rejected.
func (s *Session) SetLanguage(ctx context.Context, l i18n.Language) error {
	if !l.Valid() {
		return fmt.Errorf("unsupported language %q", l)
	}
	if err := s.storage.Set(ctx, LanguageKey, []byte(l)); err != nil {
		return fmt.Errorf("save language: %w", err)
	}
	s.mu.Lock()
	changed := s.lang != l
	s.lang = l
	s.mu.Unlock()
	if changed {
		s.publish(Event{Kind: LanguageChanged, Language: l})
	}
	return nil
}

// T translates key into the current language.
func (s *Session) T(key string) string {
	return i18n.Lookup(s.Language(), key)
}

// Favorites exposes the favorites store for reads.
func (s *Session) Favorites() *favorites.Store { return s.favs }

// ToggleFavorite flips id in the favorites set and notifies subscribers.
func (s *Session) ToggleFavorite(ctx context.Context, id int64) (bool, error) {
	on, err := s.favs.Toggle(ctx, id)
	if err != nil {
		return on, err
	}
	s.publish(Event{Kind: FavoriteToggled, ListingID: id, Favorite: on})
	return on, nil
}

// Subscribe registers fn and returns a func that removes it.
func (s *Session) Subscribe(fn func(Event)) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, listener{id: id, fn: fn})
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				break
			}
		}
		s.mu.Unlock()
	}
}

func (s *Session) publish(e Event) {
	s.mu.Lock()
	fns := make([]func(Event), 0, len(s.subs))
	for _, sub := range s.subs {
		fns = append(fns, sub.fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(e)
	}
}

// listener is one Subscribe registration; subs is kept in registration order.
type listener struct {
	id int
	fn func(Event)
}
