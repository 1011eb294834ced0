// Package feed composes a paged loader with a scroll trigger for one list
// whose contents depend on a parameter key (a category, a search query).
//
// A Feed never does I/O itself. Operations that start a fetch return a Job
// that the event loop runs off-thread; the Job's Done is handed back through
// Complete. Results from a superseded key are dropped there.
package feed

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/mmcdole/marquee/internal/paging"
	"github.com/mmcdole/marquee/internal/scroll"
)

// Job runs one page fetch. It is safe to run on any goroutine.
type Job func(ctx context.Context) Done

// Done is the result of a Job.
type Done struct {
	Key     string
	Gen     uint64
	Page    int
	Outcome paging.Outcome
}

// Phase is the presentation state of a feed. Exactly one applies at a time.
type Phase int

const (
	PhaseIdle Phase = iota // nothing activated yet
	PhaseInitialLoading
	PhaseInitialError
	PhaseEmpty
	PhaseItems
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseInitialLoading:
		return "initial-loading"
	case PhaseInitialError:
		return "initial-error"
	case PhaseEmpty:
		return "empty"
	case PhaseItems:
		return "items"
	default:
		return "unknown"
	}
}

// View is what the presentation layer needs to draw a feed.
type View[T any] struct {
	Key        string
	Items      []T
	Page       int
	TotalPages int
	Loading    bool
	HasMore    bool
	Error      string
	Err        error
	Phase      Phase
	CanRetry   bool
}

// Option configures a Feed.
type Option func(*settings)

type settings struct {
	observer scroll.Observer
	logger   *slog.Logger
	name     string
}

// WithObserver replaces the default viewport observer.
func WithObserver(o scroll.Observer) Option {
	return func(s *settings) { s.observer = o }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

// WithName labels log lines.
func WithName(name string) Option {
	return func(s *settings) { s.name = name }
}

// generations is shared by all feeds so a Done is only ever accepted by the
// feed activation that produced it, even across feeds showing the same key.
var generations atomic.Uint64

type viewportSetter interface {
	SetViewport(scroll.Viewport)
}

// Feed owns one loader (replaced on every key change) and one trigger.
type Feed[T any] struct {
	observer scroll.Observer
	logger   *slog.Logger

	key     string
	gen     uint64
	loader  *paging.Loader[T]
	trigger *scroll.Trigger

	pending Job // set by the trigger's fire callback
}

// New creates an idle feed.
func New[T any](cfg scroll.Config, opts ...Option) *Feed[T] {
	s := settings{}
	for _, opt := range opts {
		opt(&s)
	}
	if s.observer == nil {
		s.observer = scroll.NewViewportObserver()
	}
	logger := s.logger
	if logger == nil {
		logger = slog.Default()
	}
	if s.name != "" {
		logger = logger.With("feed", s.name)
	}

	f := &Feed[T]{observer: s.observer, logger: logger}
	f.trigger = scroll.NewTrigger(s.observer, cfg, f.gate, f.fire, logger)
	return f
}

// Key returns the active parameter key.
func (f *Feed[T]) Key() string {
	return f.key
}

// Activate switches the feed to key. The same key returns nil. A new key
// discards the current loader and any outstanding result, creates a fresh
// loader for fetch and returns the Job for its first page.
func (f *Feed[T]) Activate(key string, fetch paging.FetchFunc[T]) Job {
	if f.loader != nil && key == f.key {
		return nil
	}

	if f.loader != nil {
		f.logger.Debug("switching feed", "from", f.key, "to", key)
		f.loader.Reset()
	}
	f.trigger.Close()
	f.pending = nil
	f.gen = generations.Add(1)
	f.key = key
	f.loader = paging.New(fetch, paging.WithLogger(f.logger), paging.WithName(key))
	return f.start(false)
}

// Close discards the loader and releases the sentinel observation.
func (f *Feed[T]) Close() {
	f.trigger.Close()
	if f.loader != nil {
		f.loader.Reset()
	}
	f.loader = nil
	f.key = ""
	f.gen = generations.Add(1)
	f.pending = nil
}

// LoadMore requests the next page explicitly.
func (f *Feed[T]) LoadMore() Job {
	return f.start(false)
}

// Retry re-requests the page that failed.
func (f *Feed[T]) Retry() Job {
	return f.start(true)
}

// SetSentinel moves the sentinel. Passing nil removes it.
func (f *Feed[T]) SetSentinel(s *scroll.Sentinel) Job {
	if f.loader == nil {
		s = nil
	}
	f.trigger.Bind(s)
	return f.takePending()
}

// Scrolled reports the rows currently on screen.
func (f *Feed[T]) Scrolled(v scroll.Viewport) Job {
	if vs, ok := f.observer.(viewportSetter); ok {
		vs.SetViewport(v)
	}
	return f.takePending()
}

// Complete applies a finished Job. Results from a previous key are ignored.
// When a page was appended and the sentinel is still visible the next page's
// Job is returned. Move the sentinel below the new items before calling it.
func (f *Feed[T]) Complete(d Done) Job {
	if d.Gen != f.gen || f.loader == nil {
		f.logger.Debug("dropping stale page result", "key", d.Key, "page", d.Page)
		return nil
	}
	if d.Outcome != paging.Fetched {
		return nil
	}
	f.trigger.Recheck()
	return f.takePending()
}

// View returns a snapshot for rendering.
func (f *Feed[T]) View() View[T] {
	if f.loader == nil {
		return View[T]{Items: []T{}, Phase: PhaseIdle}
	}
	st := f.loader.State()
	v := View[T]{
		Key:        f.key,
		Items:      st.Items,
		Page:       st.Page,
		TotalPages: st.TotalPages,
		Loading:    st.Loading,
		HasMore:    st.HasMore,
		Error:      st.Error,
		Err:        st.Err,
		CanRetry:   st.Failed() && !st.Loading,
	}
	v.Phase = phaseOf(len(st.Items), st.Loading, st.Failed())
	return v
}

// Render calls fn once per loaded item, in order.
func (f *Feed[T]) Render(fn func(i int, item T)) {
	for i, item := range f.View().Items {
		fn(i, item)
	}
}

// AutoLoad reports whether scroll-driven loading is active. When false the
// presentation layer must offer a manual affordance.
func (f *Feed[T]) AutoLoad() bool {
	return f.trigger.Available()
}

func phaseOf(n int, loading, failed bool) Phase {
	switch {
	case n > 0:
		return PhaseItems
	case loading:
		return PhaseInitialLoading
	case failed:
		return PhaseInitialError
	default:
		return PhaseEmpty
	}
}

func (f *Feed[T]) start(retry bool) Job {
	if f.loader == nil {
		return nil
	}

	var (
		attempt *paging.Attempt[T]
		outcome paging.Outcome
	)
	if retry {
		attempt, outcome = f.loader.StartRetry()
	} else {
		attempt, outcome = f.loader.Start()
	}
	if attempt == nil {
		f.logger.Debug("load skipped", "key", f.key, "reason", outcome)
		return nil
	}

	key, gen, page := f.key, f.gen, attempt.Page()
	return func(ctx context.Context) Done {
		return Done{Key: key, Gen: gen, Page: page, Outcome: attempt.Run(ctx)}
	}
}

func (f *Feed[T]) gate() (loading, hasMore bool) {
	if f.loader == nil {
		return false, false
	}
	return f.loader.Status()
}

func (f *Feed[T]) fire() {
	if f.pending != nil {
		return
	}
	f.pending = f.start(false)
}

func (f *Feed[T]) takePending() Job {
	job := f.pending
	f.pending = nil
	return job
}
