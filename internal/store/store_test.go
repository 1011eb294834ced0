package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/marquee/internal/domain"
)

func samplePage() domain.Page[domain.ListItem] {
	return domain.Page[domain.ListItem]{
		Items: []domain.ListItem{
			&domain.Title{ID: 603, Kind: domain.KindMovie, Name: "The Matrix", Year: 1999},
			&domain.Person{ID: 6384, Name: "Keanu Reeves", KnownFor: []string{"The Matrix"}},
		},
		Page:         1,
		TotalPages:   4,
		TotalResults: 80,
	}
}

func TestPageRoundTripPreservesItemTypes(t *testing.T) {
	for _, dir := range []string{"", t.TempDir()} {
		s, err := NewCacheStore(dir)
		require.NoError(t, err)

		require.NoError(t, s.SavePage("en-US:movie/popular:1", samplePage()))
		page, ok := s.GetPage("en-US:movie/popular:1", time.Hour)
		require.True(t, ok)
		require.Len(t, page.Items, 2)
		assert.IsType(t, &domain.Title{}, page.Items[0])
		assert.IsType(t, &domain.Person{}, page.Items[1])
		assert.Equal(t, "The Matrix", page.Items[0].GetTitle())
		assert.Equal(t, 4, page.TotalPages)

		_, ok = s.GetPage("en-US:movie/popular:2", time.Hour)
		assert.False(t, ok)
		require.NoError(t, s.Close())
	}
}

func TestPagesPersistAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	s, err := NewCacheStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.SavePage("k", samplePage()))
	require.NoError(t, s.AddHistory("matrix"))
	require.NoError(t, s.Close())

	s, err = NewCacheStore(dir)
	require.NoError(t, err)
	defer s.Close()

	page, ok := s.GetPage("k", 0)
	require.True(t, ok)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, []string{"matrix"}, s.History())
}

func TestExpiredEntriesAreMisses(t *testing.T) {
	s, err := NewCacheStore("")
	require.NoError(t, err)

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	require.NoError(t, s.SaveDetails("movie:603", &domain.DetailBundle{Ref: domain.ItemRef{Kind: domain.KindMovie, ID: 603}}))

	now = now.Add(2 * time.Hour)
	_, ok := s.GetDetails("movie:603", time.Hour)
	assert.False(t, ok)

	bundle, ok := s.GetDetails("movie:603", 0)
	require.True(t, ok, "zero maxAge ignores age")
	assert.Equal(t, 603, bundle.Ref.ID)
}

func TestHistoryOrderingAndLimit(t *testing.T) {
	s, err := NewCacheStore("")
	require.NoError(t, err)

	require.NoError(t, s.AddHistory("matrix"))
	require.NoError(t, s.AddHistory("alien"))
	require.NoError(t, s.AddHistory("  Matrix "))
	require.NoError(t, s.AddHistory("   "))
	assert.Equal(t, []string{"Matrix", "alien"}, s.History())

	for i := range historyLimit + 5 {
		require.NoError(t, s.AddHistory(fmt.Sprintf("q%d", i)))
	}
	history := s.History()
	assert.Len(t, history, historyLimit)
	assert.Equal(t, fmt.Sprintf("q%d", historyLimit+4), history[0])

	require.NoError(t, s.ClearHistory())
	assert.Empty(t, s.History())
}

func TestInvalidation(t *testing.T) {
	s, err := NewCacheStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.SavePage("en-US:search:movie:matrix:1", samplePage()))
	require.NoError(t, s.SavePage("en-US:search:movie:matrix:2", samplePage()))
	require.NoError(t, s.SavePage("en-US:movie/popular:1", samplePage()))
	require.NoError(t, s.AddHistory("matrix"))

	s.InvalidatePrefix("en-US:search:")
	_, ok := s.GetPage("en-US:search:movie:matrix:1", 0)
	assert.False(t, ok)
	_, ok = s.GetPage("en-US:search:movie:matrix:2", 0)
	assert.False(t, ok)
	_, ok = s.GetPage("en-US:movie/popular:1", 0)
	assert.True(t, ok)

	s.InvalidateAll()
	_, ok = s.GetPage("en-US:movie/popular:1", 0)
	assert.False(t, ok)
	assert.Equal(t, []string{"matrix"}, s.History(), "history survives cache clears")
}
