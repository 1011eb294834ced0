package paging

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSource serves canned pages and records every page it was asked for.
type scriptedSource struct {
	mu     sync.Mutex
	pages  map[int]PageResult[string]
	errs   map[int]error
	calls  []int
	block  chan struct{} // when non-nil, fetches wait for it
	active atomic.Int32
	peak   atomic.Int32
}

func newScriptedSource() *scriptedSource {
	return &scriptedSource{
		pages: make(map[int]PageResult[string]),
		errs:  make(map[int]error),
	}
}

func (s *scriptedSource) fetch(ctx context.Context, page int) (PageResult[string], error) {
	n := s.active.Add(1)
	defer s.active.Add(-1)
	for {
		p := s.peak.Load()
		if n <= p || s.peak.CompareAndSwap(p, n) {
			break
		}
	}

	s.mu.Lock()
	s.calls = append(s.calls, page)
	block := s.block
	s.mu.Unlock()

	if block != nil {
		<-block
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.errs[page]; ok {
		delete(s.errs, page)
		return PageResult[string]{}, err
	}
	return s.pages[page], nil
}

func (s *scriptedSource) Calls() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.calls...)
}

func TestNewLoaderInitialState(t *testing.T) {
	l := New(newScriptedSource().fetch)
	st := l.State()

	assert.Empty(t, st.Items)
	assert.NotNil(t, st.Items)
	assert.Equal(t, 0, st.Page)
	assert.True(t, st.HasMore)
	assert.False(t, st.Loading)
	assert.Empty(t, st.Error)
}

func TestLoadNextAccumulatesUntilExhausted(t *testing.T) {
	src := newScriptedSource()
	src.pages[1] = PageResult[string]{Items: []string{"a", "b", "c"}, HasMore: true}
	src.pages[2] = PageResult[string]{Items: []string{"d", "e"}, HasMore: false, TotalPages: 2}
	l := New(src.fetch)
	ctx := context.Background()

	require.Equal(t, Fetched, l.LoadNext(ctx))
	assert.Equal(t, []string{"a", "b", "c"}, l.State().Items)

	require.Equal(t, Fetched, l.LoadNext(ctx))
	st := l.State()
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, st.Items)
	assert.False(t, st.HasMore)
	assert.Empty(t, st.Error)
	assert.Equal(t, 2, st.Page)
	assert.Equal(t, 2, st.TotalPages)

	assert.Equal(t, SkippedExhausted, l.LoadNext(ctx))
	assert.Equal(t, []int{1, 2}, src.Calls())
	assert.Equal(t, st, l.State())
}

func TestFailureLeavesStateUntouchedAndRetryTargetsSamePage(t *testing.T) {
	src := newScriptedSource()
	src.errs[1] = errors.New("network error")
	src.pages[1] = PageResult[string]{Items: []string{"a"}, HasMore: true}
	l := New(src.fetch)
	ctx := context.Background()

	require.Equal(t, Failed, l.LoadNext(ctx))
	st := l.State()
	assert.Empty(t, st.Items)
	assert.Equal(t, 0, st.Page)
	assert.True(t, st.HasMore)
	assert.False(t, st.Loading)
	assert.Equal(t, "network error", st.Error)
	assert.True(t, st.Failed())

	require.Equal(t, Fetched, l.Retry(ctx))
	assert.Equal(t, []int{1, 1}, src.Calls())
	assert.Equal(t, []string{"a"}, l.State().Items)
	assert.Empty(t, l.State().Error)
}

func TestLaterPageFailureKeepsEarlierItems(t *testing.T) {
	src := newScriptedSource()
	src.pages[1] = PageResult[string]{Items: []string{"a", "b"}, HasMore: true}
	src.errs[2] = errors.New("timeout")
	l := New(src.fetch)
	ctx := context.Background()

	l.LoadNext(ctx)
	before := l.State()
	require.Equal(t, Failed, l.LoadNext(ctx))
	after := l.State()

	assert.Equal(t, before.Items, after.Items)
	assert.Equal(t, before.Page, after.Page)
	assert.Equal(t, before.HasMore, after.HasMore)
	assert.Equal(t, "timeout", after.Error)
}

func TestRetryWithoutFailureIsSkipped(t *testing.T) {
	src := newScriptedSource()
	l := New(src.fetch)

	assert.Equal(t, SkippedNoError, l.Retry(context.Background()))
	assert.Empty(t, src.Calls())
}

func TestEmptyFirstPageIsNotAnError(t *testing.T) {
	src := newScriptedSource()
	src.pages[1] = PageResult[string]{Items: nil, HasMore: false}
	l := New(src.fetch)

	require.Equal(t, Fetched, l.LoadNext(context.Background()))
	st := l.State()
	assert.Empty(t, st.Items)
	assert.Empty(t, st.Error)
	assert.False(t, st.HasMore)
}

func TestOverlappingLoadsIssueSingleFetch(t *testing.T) {
	src := newScriptedSource()
	src.block = make(chan struct{})
	src.pages[1] = PageResult[string]{Items: []string{"a"}, HasMore: true}
	l := New(src.fetch)

	first, outcome := l.Start()
	require.NotNil(t, first)
	require.Equal(t, Started, outcome)

	second, outcome := l.Start()
	assert.Nil(t, second)
	assert.Equal(t, SkippedLoading, outcome)
	assert.True(t, l.State().Loading)

	done := make(chan Outcome)
	go func() { done <- first.Run(context.Background()) }()
	close(src.block)
	assert.Equal(t, Fetched, <-done)
	assert.Equal(t, []int{1}, src.Calls())
}

func TestConcurrentLoadNextNeverOverlaps(t *testing.T) {
	src := newScriptedSource()
	for p := 1; p <= 20; p++ {
		src.pages[p] = PageResult[string]{Items: []string{"x"}, HasMore: p < 20}
	}
	l := New(func(ctx context.Context, page int) (PageResult[string], error) {
		time.Sleep(time.Millisecond)
		return src.fetch(ctx, page)
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for l.State().HasMore {
				l.LoadNext(context.Background())
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), src.peak.Load())
	calls := src.Calls()
	require.Len(t, calls, 20)
	for i, page := range calls {
		assert.Equal(t, i+1, page)
	}
	assert.Len(t, l.State().Items, 20)
}

func TestResetClearsEverything(t *testing.T) {
	src := newScriptedSource()
	src.pages[1] = PageResult[string]{Items: []string{"a"}, HasMore: false}
	l := New(src.fetch)
	l.LoadNext(context.Background())

	l.Reset()

	assert.Equal(t, State[string]{Items: []string{}, HasMore: true}, l.State())
}

func TestResetDiscardsInFlightAttempt(t *testing.T) {
	src := newScriptedSource()
	src.block = make(chan struct{})
	src.pages[1] = PageResult[string]{Items: []string{"stale"}, HasMore: true}
	l := New(src.fetch)

	attempt, _ := l.Start()
	done := make(chan Outcome)
	go func() { done <- attempt.Run(context.Background()) }()

	l.Reset()
	close(src.block)

	assert.Equal(t, Discarded, <-done)
	assert.Empty(t, l.State().Items)
	assert.False(t, l.State().Loading)
}

func TestAttemptRunsOnce(t *testing.T) {
	src := newScriptedSource()
	src.pages[1] = PageResult[string]{Items: []string{"a"}, HasMore: true}
	l := New(src.fetch)

	attempt, _ := l.Start()
	assert.Equal(t, 1, attempt.Page())
	assert.Equal(t, Fetched, attempt.Run(context.Background()))
	assert.Equal(t, Discarded, attempt.Run(context.Background()))
	assert.Equal(t, []int{1}, src.Calls())
}

func TestPanickingFetchIsRecordedAsFailure(t *testing.T) {
	l := New(func(ctx context.Context, page int) (PageResult[string], error) {
		panic("boom")
	})

	assert.Equal(t, Failed, l.LoadNext(context.Background()))
	st := l.State()
	assert.False(t, st.Loading)
	assert.Contains(t, st.Error, "boom")
}

func TestSubscribeReceivesEveryTransition(t *testing.T) {
	src := newScriptedSource()
	src.pages[1] = PageResult[string]{Items: []string{"a"}, HasMore: true}
	l := New(src.fetch)

	var seen []State[string]
	unsubscribe := l.Subscribe(ObserverFunc[string](func(s State[string]) {
		seen = append(seen, s)
	}))

	l.LoadNext(context.Background())
	require.Len(t, seen, 2)
	assert.True(t, seen[0].Loading)
	assert.False(t, seen[1].Loading)
	assert.Equal(t, []string{"a"}, seen[1].Items)

	unsubscribe()
	l.Reset()
	assert.Len(t, seen, 2)
}

func TestSnapshotsDoNotAlias(t *testing.T) {
	src := newScriptedSource()
	src.pages[1] = PageResult[string]{Items: []string{"a"}, HasMore: true}
	src.pages[2] = PageResult[string]{Items: []string{"b"}, HasMore: false}
	l := New(src.fetch)
	ctx := context.Background()

	l.LoadNext(ctx)
	snap := l.State()
	snap.Items[0] = "mutated"
	l.LoadNext(ctx)

	assert.Equal(t, []string{"a", "b"}, l.State().Items)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "skipped-loading", SkippedLoading.String())
	assert.True(t, SkippedExhausted.Skipped())
	assert.False(t, Fetched.Skipped())
}
