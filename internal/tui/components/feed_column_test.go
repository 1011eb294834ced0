package components

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/feed"
	"github.com/mmcdole/marquee/internal/i18n"
	"github.com/mmcdole/marquee/internal/paging"
	"github.com/mmcdole/marquee/internal/scroll"
)

// jobQueue is a Runner that holds jobs until the test drains them
type jobQueue struct {
	jobs []feed.Job
}

func (q *jobQueue) run(job feed.Job) tea.Cmd {
	if job == nil {
		return nil
	}
	q.jobs = append(q.jobs, job)
	return func() tea.Msg { return nil }
}

// drain runs queued jobs one by one and feeds each result back to c
func (q *jobQueue) drain(c *FeedColumn) int {
	n := 0
	for len(q.jobs) > 0 {
		job := q.jobs[0]
		q.jobs = q.jobs[1:]
		c.Complete(job(context.Background()))
		n++
	}
	return n
}

func titles(prefix string, pages, size int, calls *[]int) paging.FetchFunc[domain.ListItem] {
	return func(ctx context.Context, page int) (paging.PageResult[domain.ListItem], error) {
		if calls != nil {
			*calls = append(*calls, page)
		}
		items := make([]domain.ListItem, size)
		for i := range items {
			items[i] = &domain.Title{
				ID:   page*1000 + i,
				Kind: domain.KindMovie,
				Name: fmt.Sprintf("%s %d-%d", prefix, page, i),
			}
		}
		return paging.PageResult[domain.ListItem]{Items: items, HasMore: page < pages, TotalPages: pages}, nil
	}
}

func named(names ...string) paging.FetchFunc[domain.ListItem] {
	return func(ctx context.Context, page int) (paging.PageResult[domain.ListItem], error) {
		items := make([]domain.ListItem, len(names))
		for i, name := range names {
			items[i] = &domain.Title{ID: i + 1, Kind: domain.KindMovie, Name: name}
		}
		return paging.PageResult[domain.ListItem]{Items: items, TotalPages: 1}, nil
	}
}

func newTestColumn(q *jobQueue) *FeedColumn {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := NewFeedColumn(ColumnTypeCatalog, "Popular", scroll.DefaultConfig(), q.run, i18n.New("en"), logger)
	c.SetFocused(true)
	// 14 rows leave 9 visible list rows
	c.SetSize(40, 14)
	return c
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestFeedColumnLoadsFirstPage(t *testing.T) {
	var calls []int
	q := &jobQueue{}
	c := newTestColumn(q)

	require.NotNil(t, c.Activate("movie/popular", titles("Film", 3, 20, &calls)))
	assert.Equal(t, feed.PhaseInitialLoading, c.State().Phase)

	assert.Equal(t, 1, q.drain(c))
	assert.Equal(t, []int{1}, calls, "sentinel below the viewport must not request page 2")
	assert.Equal(t, 20, c.ItemCount())
	assert.Equal(t, "Film 1-0", c.SelectedItem().GetTitle())
	assert.True(t, c.State().HasMore)
}

func TestFeedColumnScrollToBottomLoadsNextPage(t *testing.T) {
	var calls []int
	q := &jobQueue{}
	c := newTestColumn(q)

	c.Activate("movie/popular", titles("Film", 3, 20, &calls))
	q.drain(c)

	_, cmd := c.Update(keyRunes("G"))
	require.NotNil(t, cmd, "reaching the last item brings the sentinel into view")
	assert.Equal(t, 1, q.drain(c))

	assert.Equal(t, []int{1, 2}, calls)
	assert.Equal(t, 40, c.ItemCount())
	assert.Equal(t, 19, c.SelectedIndex(), "cursor stays on the item it was on")

	// Moving within the loaded items does not fetch again
	_, cmd = c.Update(keyRunes("k"))
	assert.Nil(t, cmd)
	assert.Equal(t, []int{1, 2}, calls)
}

func TestFeedColumnSameKeyKeepsPages(t *testing.T) {
	var calls []int
	q := &jobQueue{}
	c := newTestColumn(q)

	c.Activate("movie/popular", titles("Film", 3, 20, &calls))
	q.drain(c)
	c.SetSelectedIndex(5)

	assert.Nil(t, c.Activate("movie/popular", titles("Film", 3, 20, &calls)))
	assert.Equal(t, 20, c.ItemCount())
	assert.Equal(t, 5, c.SelectedIndex())
	assert.Equal(t, []int{1}, calls)
}

func TestFeedColumnDropsResultOfPreviousKey(t *testing.T) {
	q := &jobQueue{}
	c := newTestColumn(q)

	c.Activate("movie/popular", titles("Popular", 1, 5, nil))
	stale := q.jobs[0]
	q.jobs = nil

	c.Activate("movie/top_rated", titles("Top", 1, 5, nil))
	assert.Nil(t, c.Complete(stale(context.Background())))
	assert.Equal(t, 0, c.ItemCount())

	q.drain(c)
	require.Equal(t, 5, c.ItemCount())
	assert.Equal(t, "Top 1-0", c.SelectedItem().GetTitle())
}

func TestFeedColumnRetryAfterFailure(t *testing.T) {
	q := &jobQueue{}
	c := newTestColumn(q)

	fail := true
	fetch := func(ctx context.Context, page int) (paging.PageResult[domain.ListItem], error) {
		if fail {
			return paging.PageResult[domain.ListItem]{}, domain.ErrOffline
		}
		return named("Alien")(ctx, page)
	}

	c.Activate("movie/popular", fetch)
	q.drain(c)

	state := c.State()
	assert.Equal(t, feed.PhaseInitialError, state.Phase)
	assert.True(t, state.CanRetry)
	assert.Contains(t, c.View(), "Network unavailable")

	fail = false
	require.NotNil(t, c.Retry())
	q.drain(c)
	assert.Equal(t, 1, c.ItemCount())
	assert.False(t, c.State().CanRetry)
}

func TestFeedColumnReloadStartsOver(t *testing.T) {
	var calls []int
	q := &jobQueue{}
	c := newTestColumn(q)

	c.Activate("movie/popular", titles("Film", 3, 20, &calls))
	q.drain(c)
	c.SetSelectedIndex(7)

	require.NotNil(t, c.Reload())
	assert.Equal(t, "movie/popular", c.Key())
	assert.Equal(t, 0, c.SelectedIndex())
	q.drain(c)
	assert.Equal(t, []int{1, 1}, calls)
}

func TestFeedColumnFilter(t *testing.T) {
	q := &jobQueue{}
	c := newTestColumn(q)

	c.Activate("movie/popular", named("Alien", "Brazil", "Casablanca", "Dune"))
	q.drain(c)

	c.ToggleFilter()
	assert.True(t, c.IsFilterTyping())
	c.Update(keyRunes("c"))
	c.Update(keyRunes("a"))
	c.Update(keyRunes("s"))

	require.Equal(t, 1, c.ItemCount())
	assert.Equal(t, "Casablanca", c.SelectedItem().GetTitle())

	// Enter keeps the filter but returns keys to navigation
	c.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, c.IsFiltering())
	assert.False(t, c.IsFilterTyping())

	c.ClearFilter()
	assert.False(t, c.IsFiltering())
	assert.Equal(t, 4, c.ItemCount())
}

func TestErrorText(t *testing.T) {
	tr := i18n.New("en")

	assert.Equal(t, "Network unavailable", ErrorText(tr, fmt.Errorf("fetch: %w", domain.ErrOffline), ""))
	assert.Equal(t, "boom", ErrorText(tr, errors.New("boom"), ""))
	assert.Equal(t, "fallback", ErrorText(tr, errors.New("boom"), "fallback"))
	assert.Equal(t, "fallback", ErrorText(tr, nil, "fallback"))
}

func TestSearchBarFilters(t *testing.T) {
	s := NewSearchBar(i18n.New("en"))
	s.Show(domain.SearchFilters{Query: "  blade   runner ", Kind: domain.KindTV, Year: 1982})

	f := s.Filters()
	assert.Equal(t, "blade runner", f.Query)
	assert.Equal(t, domain.KindTV, f.Kind)
	assert.Equal(t, 1982, f.Year)

	// A highlighted suggestion replaces the typed query
	s.SetSuggestions([]string{"blade runner 2049", "blade"})
	s, _, _ = s.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "blade runner 2049", s.Filters().Query)

	s, _, action := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, SearchSubmit, action)
}

func TestSearchBarIgnoresEmptySubmit(t *testing.T) {
	s := NewSearchBar(i18n.New("en"))
	s.Show(domain.SearchFilters{})

	s, _, action := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, SearchNone, action)
	assert.True(t, s.IsVisible())

	s, _, _ = s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, s.IsVisible())
}

func TestFeedColumnOffersManualLoadWithoutObservation(t *testing.T) {
	disabled := scroll.DefaultConfig()
	disabled.Enabled = false
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	for name, c := range map[string]func(q *jobQueue) *FeedColumn{
		"disabled": func(q *jobQueue) *FeedColumn {
			return NewFeedColumn(ColumnTypeCatalog, "Popular", disabled, q.run, i18n.New("en"), logger)
		},
		"unavailable": func(q *jobQueue) *FeedColumn {
			return NewFeedColumn(ColumnTypeCatalog, "Popular", scroll.DefaultConfig(), q.run, i18n.New("en"), logger,
				feed.WithObserver(scroll.Unavailable{}))
		},
	} {
		t.Run(name, func(t *testing.T) {
			var calls []int
			q := &jobQueue{}
			col := c(q)
			col.SetFocused(true)
			col.SetSize(40, 14)

			col.Activate("movie/popular", titles("Film", 2, 3, &calls))
			q.drain(col)

			// The status row is on screen but nothing loads by itself
			assert.Equal(t, []int{1}, calls)
			assert.False(t, col.AutoLoad())
			assert.Contains(t, col.View(), "Press m to load more")

			require.NotNil(t, col.LoadMore())
			q.drain(col)
			assert.Equal(t, []int{1, 2}, calls)
			assert.Equal(t, 6, col.ItemCount())
		})
	}
}
