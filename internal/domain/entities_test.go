package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseItemRef(t *testing.T) {
	ref, err := ParseItemRef("movie:603")
	require.NoError(t, err)
	assert.Equal(t, ItemRef{Kind: KindMovie, ID: 603}, ref)
	assert.Equal(t, "movie:603", ref.String())

	ref, err = ParseItemRef("show:1399")
	require.NoError(t, err)
	assert.Equal(t, KindTV, ref.Kind)

	for _, bad := range []string{"603", "film:1", "movie:abc", "movie:-4"} {
		_, err := ParseItemRef(bad)
		assert.Error(t, err, bad)
	}
}

func TestTitleListItem(t *testing.T) {
	title := &Title{ID: 603, Kind: KindMovie, Name: "The Matrix", Year: 1999, VoteAverage: 8.2, VoteCount: 25000}
	var item ListItem = title

	assert.Equal(t, "movie:603", item.GetID())
	assert.Equal(t, "Matrix", item.GetSortTitle())
	assert.Equal(t, "1999 · ★ 8.2", item.GetDescription())

	unrated := &Title{ID: 1, Kind: KindTV, Name: "New Show"}
	assert.Empty(t, unrated.GetDescription())
}

func TestPersonDescription(t *testing.T) {
	p := &Person{ID: 6384, Name: "Keanu Reeves", Department: "Acting", KnownFor: []string{"The Matrix", "John Wick", "Speed"}}
	assert.Equal(t, "Acting · The Matrix, John Wick", p.GetDescription())
	assert.Equal(t, "person:6384", p.GetID())
}

func TestPageHasMore(t *testing.T) {
	assert.True(t, Page[int]{Page: 1, TotalPages: 3}.HasMore())
	assert.False(t, Page[int]{Page: 3, TotalPages: 3}.HasMore())
	assert.False(t, Page[int]{Page: 1, TotalPages: 0}.HasMore())
	assert.False(t, Page[int]{Page: MaxPage, TotalPages: 9000}.HasMore())
}

func TestSearchFiltersKey(t *testing.T) {
	a := SearchFilters{Query: "  The   Matrix ", Kind: KindMovie}
	b := SearchFilters{Query: "the matrix"}
	assert.Equal(t, a.Key(), b.Key())

	withYear := SearchFilters{Query: "the matrix", Year: 1999}
	assert.NotEqual(t, a.Key(), withYear.Key())

	person := SearchFilters{Query: "keanu", Kind: KindPerson, Year: 1999}
	assert.Equal(t, "search:person:keanu", person.Key())
}
