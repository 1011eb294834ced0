// Package paging accumulates successive pages from a paginated source.
//
// A Loader owns the state of one incremental list: the items fetched so far,
// the last page number, whether more pages exist and the last failure. It
// guarantees that at most one fetch is in flight at a time and that a failed
// page never mutates what was already loaded.
package paging

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
)

// PageResult is the outcome of fetching one page.
type PageResult[T any] struct {
	Items      []T
	HasMore    bool
	TotalPages int // 0 if the source does not report it
}

// FetchFunc fetches a single 1-based page.
type FetchFunc[T any] func(ctx context.Context, page int) (PageResult[T], error)

// Outcome reports what a load call actually did.
type Outcome int

const (
	// Started means the loader was marked busy and an Attempt was handed out.
	Started Outcome = iota
	// Fetched means a page was fetched and appended.
	Fetched
	// Failed means the fetch returned an error; the error is recorded in State.
	Failed
	// SkippedLoading means another fetch was already in flight.
	SkippedLoading
	// SkippedExhausted means the source reported no more pages.
	SkippedExhausted
	// SkippedNoError means Retry was called while no failure was recorded.
	SkippedNoError
	// Discarded means the attempt finished after a Reset and was ignored.
	Discarded
)

func (o Outcome) String() string {
	switch o {
	case Started:
		return "started"
	case Fetched:
		return "fetched"
	case Failed:
		return "failed"
	case SkippedLoading:
		return "skipped-loading"
	case SkippedExhausted:
		return "skipped-exhausted"
	case SkippedNoError:
		return "skipped-no-error"
	case Discarded:
		return "discarded"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Skipped returns true if no fetch was issued.
func (o Outcome) Skipped() bool {
	return o == SkippedLoading || o == SkippedExhausted || o == SkippedNoError
}

// State is a snapshot of a loader. Items is a copy and may be retained.
type State[T any] struct {
	Items      []T
	Page       int // last successfully fetched page, 0 = none
	TotalPages int
	Loading    bool
	HasMore    bool
	Error      string // message of the last failure, empty if none
	Err        error  // the last failure itself, for errors.Is
}

// Failed returns true if the last attempt failed.
func (s State[T]) Failed() bool {
	return s.Error != ""
}

// Observer receives a snapshot after every state transition.
type Observer[T any] interface {
	OnState(state State[T])
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc[T any] func(State[T])

func (f ObserverFunc[T]) OnState(state State[T]) { f(state) }

// Option configures a Loader.
type Option func(*options)

type options struct {
	logger *slog.Logger
	name   string
}

// WithLogger sets the logger used for debug tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithName labels log lines with the list being loaded.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// Loader fetches pages from a FetchFunc and accumulates their items.
type Loader[T any] struct {
	fetch  FetchFunc[T]
	logger *slog.Logger

	mu        sync.Mutex
	state     State[T]
	epoch     uint64 // bumped by Reset; attempts from older epochs are discarded
	observers map[int]Observer[T]
	nextObsID int
}

// New creates a loader in its initial state: no items, page 0, more pages
// assumed, not loading and no error.
func New[T any](fetch FetchFunc[T], opts ...Option) *Loader[T] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}
	if o.name != "" {
		logger = logger.With("list", o.name)
	}
	return &Loader[T]{
		fetch:     fetch,
		logger:    logger,
		state:     initialState[T](),
		observers: make(map[int]Observer[T]),
	}
}

func initialState[T any]() State[T] {
	return State[T]{Items: []T{}, HasMore: true}
}

// State returns a snapshot of the current state.
func (l *Loader[T]) State() State[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

// Status reports whether a fetch is in flight and whether more pages exist,
// without copying the items.
func (l *Loader[T]) Status() (loading, hasMore bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Loading, l.state.HasMore
}

// Subscribe registers an observer and returns a function that removes it.
func (l *Loader[T]) Subscribe(obs Observer[T]) (unsubscribe func()) {
	l.mu.Lock()
	id := l.nextObsID
	l.nextObsID++
	l.observers[id] = obs
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		delete(l.observers, id)
		l.mu.Unlock()
	}
}

// LoadNext fetches the next page unless a fetch is already in flight or the
// source is exhausted. Failures are recorded in State and never returned.
func (l *Loader[T]) LoadNext(ctx context.Context) Outcome {
	attempt, outcome := l.Start()
	if attempt == nil {
		return outcome
	}
	return attempt.Run(ctx)
}

// Retry re-attempts the page that last failed. It does nothing when no
// failure is recorded.
func (l *Loader[T]) Retry(ctx context.Context) Outcome {
	attempt, outcome := l.StartRetry()
	if attempt == nil {
		return outcome
	}
	return attempt.Run(ctx)
}

// Start performs the precondition checks of LoadNext and, if they pass,
// marks the loader busy and returns an Attempt for the next page. The
// returned Outcome is Started or the reason nothing was started.
func (l *Loader[T]) Start() (*Attempt[T], Outcome) {
	return l.start(false)
}

// StartRetry is Start restricted to a loader whose last attempt failed.
func (l *Loader[T]) StartRetry() (*Attempt[T], Outcome) {
	return l.start(true)
}

func (l *Loader[T]) start(retry bool) (*Attempt[T], Outcome) {
	l.mu.Lock()
	switch {
	case l.state.Loading:
		l.mu.Unlock()
		return nil, SkippedLoading
	case retry && l.state.Error == "":
		l.mu.Unlock()
		return nil, SkippedNoError
	case !l.state.HasMore:
		l.mu.Unlock()
		return nil, SkippedExhausted
	}

	l.state.Loading = true
	l.state.Error = ""
	l.state.Err = nil
	attempt := &Attempt[T]{loader: l, page: l.state.Page + 1, epoch: l.epoch}
	snap, obs := l.snapshotLocked(), l.observersLocked()
	l.mu.Unlock()

	l.logger.Debug("loading page", "page", attempt.page, "retry", retry)
	notify(obs, snap)
	return attempt, Started
}

// Reset returns the loader to its initial state. An attempt that is still
// running is discarded when it completes.
func (l *Loader[T]) Reset() {
	l.mu.Lock()
	l.epoch++
	l.state = initialState[T]()
	snap, obs := l.snapshotLocked(), l.observersLocked()
	l.mu.Unlock()

	notify(obs, snap)
}

func (l *Loader[T]) finish(a *Attempt[T], res PageResult[T], err error) Outcome {
	l.mu.Lock()
	if a.epoch != l.epoch {
		l.mu.Unlock()
		l.logger.Debug("discarding page from before reset", "page", a.page)
		return Discarded
	}

	l.state.Loading = false
	outcome := Fetched
	if err != nil {
		outcome = Failed
		l.state.Error = errorMessage(err)
		l.state.Err = err
	} else {
		l.state.Items = append(l.state.Items, res.Items...)
		l.state.Page = a.page
		l.state.HasMore = res.HasMore
		if res.TotalPages > 0 {
			l.state.TotalPages = res.TotalPages
		}
	}
	snap, obs := l.snapshotLocked(), l.observersLocked()
	l.mu.Unlock()

	if err != nil {
		l.logger.Warn("page load failed", "page", a.page, "error", err)
	} else {
		l.logger.Debug("page loaded", "page", a.page, "items", len(res.Items), "hasMore", res.HasMore)
	}
	notify(obs, snap)
	return outcome
}

func (l *Loader[T]) snapshotLocked() State[T] {
	s := l.state
	s.Items = slices.Clone(l.state.Items)
	if s.Items == nil {
		s.Items = []T{}
	}
	return s
}

func (l *Loader[T]) observersLocked() []Observer[T] {
	if len(l.observers) == 0 {
		return nil
	}
	ids := make([]int, 0, len(l.observers))
	for id := range l.observers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	obs := make([]Observer[T], len(ids))
	for i, id := range ids {
		obs[i] = l.observers[id]
	}
	return obs
}

func notify[T any](obs []Observer[T], state State[T]) {
	for _, o := range obs {
		o.OnState(state)
	}
}

func errorMessage(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "unknown error"
}

// Attempt is one in-flight page fetch handed out by Start.
type Attempt[T any] struct {
	loader *Loader[T]
	page   int
	epoch  uint64
	ran    atomic.Bool
}

// Page returns the page number this attempt fetches.
func (a *Attempt[T]) Page() int {
	return a.page
}

// Run performs the fetch and applies its result. It must be called exactly
// once; later calls return Discarded. A panicking fetch is recorded as a
// failure so the loader never stays busy.
func (a *Attempt[T]) Run(ctx context.Context) Outcome {
	if !a.ran.CompareAndSwap(false, true) {
		return Discarded
	}

	var (
		res PageResult[T]
		err error
	)
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("fetch page %d panicked: %v", a.page, r)
			}
		}()
		res, err = a.loader.fetch(ctx, a.page)
	}()

	return a.loader.finish(a, res, err)
}
