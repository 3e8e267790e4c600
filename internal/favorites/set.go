// Package favorites keeps the user's persisted selection of items.
package favorites

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/mmcdole/marquee/internal/domain"
)

// Set is a persisted set of item IDs. Membership is kept in memory and
// written through to the store after every change; a failed write is logged
// and the in-memory state stays authoritative for the session.
type Set struct {
	store  domain.Store
	logger *slog.Logger

	mu    sync.RWMutex
	order []domain.ID
	index map[domain.ID]struct{}
}

// Open loads the stored selection. A missing or unreadable value yields an
// empty set. store may be nil, in which case nothing is persisted.
func Open(store domain.Store, logger *slog.Logger) *Set {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Set{
		store:  store,
		logger: logger,
		index:  make(map[domain.ID]struct{}),
	}

	if store == nil {
		return s
	}

	ids, ok := store.GetSelection()
	if !ok {
		logger.Warn("no usable stored selection, starting empty")
		return s
	}
	for _, id := range ids {
		if id.IsZero() {
			continue
		}
		if _, dup := s.index[id]; dup {
			continue
		}
		s.index[id] = struct{}{}
		s.order = append(s.order, id)
	}
	logger.Debug("loaded selection", "count", len(s.order))
	return s
}

// Toggle adds id when absent and removes it when present, then persists the
// set. It returns the new membership of id. Zero IDs are ignored.
func (s *Set) Toggle(id domain.ID) bool {
	if id.IsZero() {
		return false
	}

	s.mu.Lock()
	_, member := s.index[id]
	if member {
		delete(s.index, id)
		s.order = slices.DeleteFunc(s.order, func(v domain.ID) bool { return v == id })
	} else {
		s.index[id] = struct{}{}
		s.order = append(s.order, id)
	}
	snapshot := slices.Clone(s.order)
	s.mu.Unlock()

	s.persist(snapshot)
	return !member
}

// Contains reports whether id is selected
func (s *Set) Contains(id domain.ID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.index[id]
	return ok
}

// All returns the selected IDs in the order they were added
func (s *Set) All() []domain.ID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.order)
}

// Len returns the number of selected IDs
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Project returns the items of the collection that are selected, in
// collection order. Selected IDs missing from the collection are skipped but
// stay in the set.
func (s *Set) Project(items []domain.Item) []domain.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Item, 0, len(s.order))
	for _, item := range items {
		if _, ok := s.index[item.ID]; ok {
			out = append(out, item)
		}
	}
	return out
}

func (s *Set) persist(ids []domain.ID) {
	if s.store == nil {
		return
	}
	if err := s.store.SaveSelection(ids); err != nil {
		s.logger.Error("failed to save selection", "error", err, "count", len(ids))
	}
}
