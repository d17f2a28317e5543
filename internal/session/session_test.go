package session

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/craftassist/internal/model"
)

func newItem(base string) *model.Item {
	it := model.NewItem()
	it.BaseName = base
	return it
}

func TestSession_AddSelect(t *testing.T) {
	t.Parallel()

	s := New()
	_, ok := s.Current()
	assert.False(t, ok)

	a, b := newItem("Plate Vest"), newItem("Iron Ring")
	s.Add(a)
	s.Add(b)

	cur, ok := s.Current()
	require.True(t, ok)
	assert.Same(t, b, cur, "last added is current")

	require.NoError(t, s.Select(a.ID))
	cur, _ = s.Current()
	assert.Same(t, a, cur)

	assert.ErrorIs(t, s.Select(uuid.New()), ErrItemNotFound)
	assert.Equal(t, []*model.Item{a, b}, s.Items())
}

func TestSession_AddSameIDReplaces(t *testing.T) {
	t.Parallel()

	s := New()
	a := newItem("Plate Vest")
	s.Add(a)

	updated := *a
	updated.Quality = 20
	s.Add(&updated)

	assert.Equal(t, 1, s.Len())
	got, ok := s.Get(a.ID)
	require.True(t, ok)
	assert.Equal(t, 20, got.Quality)

	s.Add(nil)
	assert.Equal(t, 1, s.Len())
}

func TestSession_Remove(t *testing.T) {
	t.Parallel()

	s := New()
	a, b, c := newItem("a"), newItem("b"), newItem("c")
	s.Add(a)
	s.Add(b)
	s.Add(c)

	require.NoError(t, s.Remove(c.ID))
	cur, ok := s.Current()
	require.True(t, ok)
	assert.Same(t, b, cur, "current falls back to the last remaining item")

	assert.ErrorIs(t, s.Remove(c.ID), ErrItemNotFound)

	require.NoError(t, s.Select(a.ID))
	require.NoError(t, s.Remove(b.ID))
	cur, _ = s.Current()
	assert.Same(t, a, cur, "removing another item keeps the selection")
}

func TestSession_RemoveWhere(t *testing.T) {
	t.Parallel()

	s := New()
	items := []*model.Item{newItem("Plate Vest"), newItem("Iron Ring"), newItem("Plate Vest"), newItem("Amulet")}
	for _, it := range items {
		s.Add(it)
	}

	var seen int
	n := s.RemoveWhere(func(it *model.Item) bool {
		seen++
		return it.BaseName == "Plate Vest"
	})

	assert.Equal(t, 2, n)
	assert.Equal(t, 4, seen, "predicate sees every item once")
	assert.Equal(t, []*model.Item{items[1], items[3]}, s.Items())

	assert.Zero(t, s.RemoveWhere(func(*model.Item) bool { return false }))

	assert.Equal(t, 2, s.RemoveWhere(func(*model.Item) bool { return true }))
	_, ok := s.Current()
	assert.False(t, ok)
}

func TestSession_Clear(t *testing.T) {
	t.Parallel()

	s := New()
	s.Add(newItem("a"))
	s.SetSavedNames([]string{"a"})
	s.Clear()

	assert.Zero(t, s.Len())
	_, ok := s.Current()
	assert.False(t, ok)
	assert.Equal(t, []string{"a"}, s.SavedNames(), "saved names are not open items")
}

func TestSession_SavedNamesAreCopied(t *testing.T) {
	t.Parallel()

	s := New()
	names := []string{"Plate Vest", "Iron Ring"}
	s.SetSavedNames(names)
	names[0] = "changed"

	got := s.SavedNames()
	assert.Equal(t, []string{"Plate Vest", "Iron Ring"}, got)
	got[1] = "changed"
	assert.Equal(t, "Iron Ring", s.SavedNames()[1])
}

func TestSession_Concurrent(t *testing.T) {
	t.Parallel()

	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				it := newItem("x")
				s.Add(it)
				s.Items()
				_ = s.Remove(it.ID)
			}
		}()
	}
	wg.Wait()

	assert.Zero(t, s.Len())
}
