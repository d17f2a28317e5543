// Package session keeps the list of items the user has open.
package session

import (
	"errors"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/udisondev/craftassist/internal/model"
)

// ErrItemNotFound is returned when no open item has the given ID.
var ErrItemNotFound = errors.New("item not found in session")

// Session holds open items in insertion order, the currently selected one
// and the names of items saved in the store.
// Safe for concurrent use.
type Session struct {
	mu         sync.Mutex
	items      []*model.Item
	current    uuid.UUID
	savedNames []string
}

// New creates an empty session.
func New() *Session {
	return &Session{}
}

// Add appends item and makes it current. Adding an item whose ID is already
// open replaces that entry in place.
func (s *Session) Add(item *model.Item) {
	if item == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(item.ID); i >= 0 {
		s.items[i] = item
	} else {
		s.items = append(s.items, item)
	}
	s.current = item.ID
}

// Items returns a snapshot of the open items.
func (s *Session) Items() []*model.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// Len returns the number of open items.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Get returns the open item with the given ID.
func (s *Session) Get(id uuid.UUID) (*model.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		return s.items[i], true
	}
	return nil, false
}

// Select makes the item with the given ID current.
func (s *Session) Select(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(id) < 0 {
		return ErrItemNotFound
	}
	s.current = id
	return nil
}

// Current returns the selected item, if any.
func (s *Session) Current() (*model.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(s.current); i >= 0 {
		return s.items[i], true
	}
	return nil, false
}

// Remove closes the item with the given ID.
func (s *Session) Remove(id uuid.UUID) error {
	if s.RemoveWhere(func(it *model.Item) bool { return it.ID == id }) == 0 {
		return ErrItemNotFound
	}
	return nil
}

// RemoveWhere closes every item for which match returns true and reports
// how many were removed. Matches are collected first and removed afterwards,
// so match never observes a partially modified list.
// When the current item is removed, the last remaining item becomes current.
func (s *Session) RemoveWhere(match func(*model.Item) bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	doomed := make(map[uuid.UUID]struct{})
	for _, it := range s.items {
		if match(it) {
			doomed[it.ID] = struct{}{}
		}
	}
	if len(doomed) == 0 {
		return 0
	}

	s.items = slices.DeleteFunc(s.items, func(it *model.Item) bool {
		_, ok := doomed[it.ID]
		return ok
	})

	if _, ok := doomed[s.current]; ok {
		s.current = uuid.Nil
		if n := len(s.items); n > 0 {
			s.current = s.items[n-1].ID
		}
	}
	return len(doomed)
}

// Clear closes all items.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.current = uuid.Nil
}

// SetSavedNames replaces the saved-name list.
func (s *Session) SetSavedNames(names []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.savedNames = slices.Clone(names)
}

// SavedNames returns the names of items saved in the store.
func (s *Session) SavedNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.savedNames)
}

func (s *Session) indexOf(id uuid.UUID) int {
	if id == uuid.Nil {
		return -1
	}
	return slices.IndexFunc(s.items, func(it *model.Item) bool { return it.ID == id })
}
