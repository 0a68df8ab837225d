// Package favorites keeps the set of listing IDs a user has starred.  The
// set lives in memory and is written through to durable storage on every
// toggle, so a restart sees the latest state.
package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/iliyamo/dacha-booking/internal/kv"
)

// StorageKey is the key the set is stored under, as a JSON array of IDs.
const StorageKey = "favorites"

// Store is the favorites set.  Toggles are serialized; a toggle returns
// only after the new set has been written.
type Store struct {
	mu      sync.Mutex
	storage kv.Storage
	ids     []int64
	index   map[int64]struct{}
}

// Open loads the set from storage.  A missing key is an empty set; a
// corrupt value is reported so the caller can decide whether to start over.
func Open(ctx context.Context, storage kv.Storage) (*Store, error) {
	s := &Store{storage: storage, index: map[int64]struct{}{}}
	raw, err := storage.Get(ctx, StorageKey)
	if errors.Is(err, kv.ErrNotFound) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load favorites: %w", err)
	}
	var ids []int64
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("decode favorites: %w", err)
	}
	for _, id := range ids {
		if _, dup := s.index[id]; dup {
			continue
		}
		s.index[id] = struct{}{}
		s.ids = append(s.ids, id)
	}
	return s, nil
}

// IsFavorite reports whether id is in the set.
func (s *Store) IsFavorite(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.index[id]
	return ok
}

// IDs returns the set in the order the IDs were added.
func (s *Store) IDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64{}, s.ids...)
}

// Len returns the size of the set.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

// Toggle removes id if present and adds it otherwise, then persists the
// set.  It returns whether id is a favorite afterwards.  If the write fails
// the in-memory set is left as it was.
func (s *Store) Toggle(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, present := s.index[id]
	next := make([]int64, 0, len(s.ids)+1)
	for _, v := range s.ids {
		if v != id {
			next = append(next, v)
		}
	}
	if !present {
		next = append(next, id)
	}

	raw, err := json.Marshal(next)
	if err != nil {
		return present, fmt.Errorf("encode favorites: %w", err)
	}
	if err := s.storage.Set(ctx, StorageKey, raw); err != nil {
		return present, fmt.Errorf("save favorites: %w", err)
	}

	s.ids = next
	if present {
		delete(s.index, id)
	} else {
		s.index[id] = struct{}{}
	}
	return !present, nil
}
