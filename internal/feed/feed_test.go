package feed

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/marquee/internal/paging"
	"github.com/mmcdole/marquee/internal/scroll"
)

// pagedSource builds a fetch func serving `pages` pages of `size` numbered items.
func pagedSource(prefix string, pages, size int, calls *[]int) paging.FetchFunc[string] {
	return func(ctx context.Context, page int) (paging.PageResult[string], error) {
		if calls != nil {
			*calls = append(*calls, page)
		}
		items := make([]string, size)
		for i := range items {
			items[i] = fmt.Sprintf("%s-%d-%d", prefix, page, i)
		}
		return paging.PageResult[string]{Items: items, HasMore: page < pages, TotalPages: pages}, nil
	}
}

func run(t *testing.T, job Job) Done {
	t.Helper()
	require.NotNil(t, job)
	return job(context.Background())
}

// settle moves the sentinel under the items, as the list view does after every
// update, then applies d.
func settle[T any](f *Feed[T], d Done) Job {
	if job := f.SetSentinel(&scroll.Sentinel{Row: len(f.View().Items), Height: 1}); job != nil {
		f.Complete(d)
		return job
	}
	return f.Complete(d)
}

func TestIdleFeed(t *testing.T) {
	f := New[string](scroll.DefaultConfig())
	v := f.View()
	assert.Equal(t, PhaseIdle, v.Phase)
	assert.Empty(t, v.Items)
	assert.Nil(t, f.LoadMore())
	assert.Nil(t, f.Retry())
}

func TestActivateStartsFirstPage(t *testing.T) {
	var calls []int
	f := New[string](scroll.DefaultConfig())

	job := f.Activate("popular", pagedSource("p", 3, 2, &calls))
	v := f.View()
	assert.Equal(t, PhaseInitialLoading, v.Phase)
	assert.True(t, v.Loading)

	d := run(t, job)
	assert.Equal(t, paging.Fetched, d.Outcome)
	assert.Equal(t, 1, d.Page)
	assert.Nil(t, f.Complete(d))

	v = f.View()
	assert.Equal(t, PhaseItems, v.Phase)
	assert.Equal(t, []string{"p-1-0", "p-1-1"}, v.Items)
	assert.Equal(t, []int{1}, calls)
}

func TestActivateSameKeyIsNoop(t *testing.T) {
	var calls []int
	f := New[string](scroll.DefaultConfig())
	f.Complete(run(t, f.Activate("popular", pagedSource("p", 3, 2, &calls))))

	assert.Nil(t, f.Activate("popular", pagedSource("p", 3, 2, &calls)))
	assert.Len(t, f.View().Items, 2)
	assert.Equal(t, []int{1}, calls)
}

func TestKeyChangeDiscardsStaleResult(t *testing.T) {
	f := New[string](scroll.DefaultConfig())

	oldJob := f.Activate("a", pagedSource("a", 3, 2, nil))
	newJob := f.Activate("b", pagedSource("b", 3, 1, nil))

	// The old fetch resolves after the switch.
	oldDone := run(t, oldJob)
	assert.Nil(t, f.Complete(oldDone))
	v := f.View()
	assert.Equal(t, "b", v.Key)
	assert.Empty(t, v.Items)
	assert.True(t, v.Loading)

	f.Complete(run(t, newJob))
	assert.Equal(t, []string{"b-1-0"}, f.View().Items)
}

func TestStaleResultDoesNotTriggerNextPage(t *testing.T) {
	f := New[string](scroll.DefaultConfig())
	f.Scrolled(scroll.Viewport{Top: 0, Height: 20})

	oldJob := f.Activate("a", pagedSource("a", 3, 2, nil))
	f.SetSentinel(&scroll.Sentinel{Row: 0, Height: 1})
	newJob := f.Activate("b", pagedSource("b", 3, 2, nil))
	assert.Nil(t, f.Complete(run(t, oldJob)))

	f.Complete(run(t, newJob))
	assert.Equal(t, 1, f.View().Page)
}

func TestPhases(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		f := New[string](scroll.DefaultConfig())
		f.Complete(run(t, f.Activate("q", func(ctx context.Context, page int) (paging.PageResult[string], error) {
			return paging.PageResult[string]{HasMore: false}, nil
		})))
		v := f.View()
		assert.Equal(t, PhaseEmpty, v.Phase)
		assert.False(t, v.CanRetry)
		assert.Empty(t, v.Error)
	})

	t.Run("initial error then retry", func(t *testing.T) {
		fail := true
		f := New[string](scroll.DefaultConfig())
		fetch := func(ctx context.Context, page int) (paging.PageResult[string], error) {
			if fail {
				return paging.PageResult[string]{}, errors.New("network error")
			}
			return paging.PageResult[string]{Items: []string{"x"}, HasMore: false}, nil
		}

		d := run(t, f.Activate("q", fetch))
		assert.Equal(t, paging.Failed, d.Outcome)
		f.Complete(d)
		v := f.View()
		assert.Equal(t, PhaseInitialError, v.Phase)
		assert.Equal(t, "network error", v.Error)
		assert.True(t, v.CanRetry)

		fail = false
		f.Complete(run(t, f.Retry()))
		v = f.View()
		assert.Equal(t, PhaseItems, v.Phase)
		assert.Empty(t, v.Error)
	})

	t.Run("later failure keeps items", func(t *testing.T) {
		f := New[string](scroll.DefaultConfig())
		fetch := func(ctx context.Context, page int) (paging.PageResult[string], error) {
			if page == 2 {
				return paging.PageResult[string]{}, errors.New("timeout")
			}
			return paging.PageResult[string]{Items: []string{"a", "b"}, HasMore: true}, nil
		}
		f.Complete(run(t, f.Activate("q", fetch)))
		f.Complete(run(t, f.LoadMore()))

		v := f.View()
		assert.Equal(t, PhaseItems, v.Phase)
		assert.Equal(t, []string{"a", "b"}, v.Items)
		assert.True(t, v.CanRetry)
		assert.Equal(t, "timeout", v.Error)
	})
}

func TestScrollingToSentinelLoadsNextPage(t *testing.T) {
	var calls []int
	f := New[string](scroll.DefaultConfig())
	f.Scrolled(scroll.Viewport{Top: 0, Height: 10})

	first := f.Activate("popular", pagedSource("p", 3, 20, &calls))
	assert.Nil(t, f.SetSentinel(&scroll.Sentinel{Row: 0, Height: 1}), "sentinel visible but first page in flight")
	assert.Nil(t, settle(f, run(t, first)), "sentinel at row 20 is below the viewport")

	assert.Nil(t, f.Scrolled(scroll.Viewport{Top: 5, Height: 10}))
	second := f.Scrolled(scroll.Viewport{Top: 10, Height: 10})
	require.NotNil(t, second)

	// A visible sentinel does not fire again while page 2 is in flight.
	assert.Nil(t, f.Scrolled(scroll.Viewport{Top: 11, Height: 10}))
	assert.Nil(t, f.LoadMore())

	assert.Nil(t, settle(f, run(t, second)))
	assert.Equal(t, []int{1, 2}, calls)
	assert.Len(t, f.View().Items, 40)
}

func TestTallViewportKeepsFilling(t *testing.T) {
	var calls []int
	f := New[string](scroll.DefaultConfig())
	f.Scrolled(scroll.Viewport{Top: 0, Height: 100})

	job := f.Activate("popular", pagedSource("p", 3, 5, &calls))
	f.SetSentinel(&scroll.Sentinel{Row: 0, Height: 1})
	for job != nil {
		job = settle(f, run(t, job))
	}

	assert.Equal(t, []int{1, 2, 3}, calls)
	v := f.View()
	assert.False(t, v.HasMore)
	assert.Len(t, v.Items, 15)
}

func TestFailureDoesNotAutoRetry(t *testing.T) {
	calls := 0
	f := New[string](scroll.DefaultConfig())
	f.Scrolled(scroll.Viewport{Top: 0, Height: 100})

	job := f.Activate("q", func(ctx context.Context, page int) (paging.PageResult[string], error) {
		calls++
		return paging.PageResult[string]{}, errors.New("boom")
	})
	f.SetSentinel(&scroll.Sentinel{Row: 0, Height: 1})
	assert.Nil(t, settle(f, run(t, job)))
	assert.Equal(t, 1, calls)
}

func TestUnavailableObserverFallsBackToManualLoading(t *testing.T) {
	f := New[string](scroll.DefaultConfig(), WithObserver(scroll.Unavailable{}))
	f.Complete(run(t, f.Activate("q", pagedSource("q", 2, 3, nil))))

	assert.Nil(t, f.SetSentinel(&scroll.Sentinel{Row: 3, Height: 1}))
	assert.Nil(t, f.Scrolled(scroll.Viewport{Top: 0, Height: 10}))
	assert.False(t, f.AutoLoad())

	f.Complete(run(t, f.LoadMore()))
	assert.Len(t, f.View().Items, 6)
}

func TestRenderVisitsItemsInOrder(t *testing.T) {
	f := New[string](scroll.DefaultConfig())
	f.Complete(run(t, f.Activate("q", pagedSource("q", 1, 3, nil))))

	var got []string
	f.Render(func(i int, item string) {
		got = append(got, fmt.Sprintf("%d:%s", i, item))
	})
	assert.Equal(t, []string{"0:q-1-0", "1:q-1-1", "2:q-1-2"}, got)
}

func TestCloseReleasesObservation(t *testing.T) {
	o := scroll.NewViewportObserver()
	f := New[string](scroll.DefaultConfig(), WithObserver(o))
	f.Complete(run(t, f.Activate("q", pagedSource("q", 2, 3, nil))))
	f.SetSentinel(&scroll.Sentinel{Row: 3})
	require.Equal(t, 1, o.Len())

	f.Close()
	assert.Equal(t, 0, o.Len())
	assert.Equal(t, PhaseIdle, f.View().Phase)
}

func TestDisabledObservationFallsBackToManualLoading(t *testing.T) {
	cfg := scroll.DefaultConfig()
	cfg.Enabled = false
	f := New[string](cfg)
	f.Scrolled(scroll.Viewport{Top: 0, Height: 20})
	f.Complete(run(t, f.Activate("q", pagedSource("q", 2, 3, nil))))

	assert.Nil(t, f.SetSentinel(&scroll.Sentinel{Row: 3, Height: 1}), "visible sentinel must not load by itself")
	assert.False(t, f.AutoLoad())
	v := f.View()
	assert.True(t, v.HasMore)
	assert.False(t, v.Loading)

	f.Complete(run(t, f.LoadMore()))
	assert.Len(t, f.View().Items, 6)
}

func TestFeedsSharingKeyIgnoreEachOthersResults(t *testing.T) {
	b := New[string](scroll.DefaultConfig())
	b.Scrolled(scroll.Viewport{Top: 0, Height: 100})
	second := settle(b, run(t, b.Activate("recommendations:movie:1", pagedSource("b", 3, 3, nil))))
	require.NotNil(t, second)
	doneB := run(t, second)

	a := New[string](scroll.DefaultConfig())
	doneA := run(t, a.Activate("recommendations:movie:1", pagedSource("a", 3, 3, nil)))
	assert.NotEqual(t, doneA.Gen, doneB.Gen)

	// Accepting a's result would recheck b's visible sentinel and start page 3
	assert.Nil(t, b.Complete(doneA))
	assert.NotNil(t, settle(b, doneB))
	assert.Len(t, b.View().Items, 6)
}
