package scroll

import (
	"errors"
	"slices"
	"sync"
)

// ErrObservationUnavailable is returned when sentinel visibility cannot be
// observed in the current environment.
var ErrObservationUnavailable = errors.New("scroll observation unavailable")

// Observer watches sentinels and reports their visibility changes.
type Observer interface {
	// Observe starts watching s. The callback is invoked whenever the
	// sentinel's visibility changes, and once with the initial visibility as
	// soon as it is known.
	Observe(s Sentinel, cfg Config, cb func(Entry)) (Subscription, error)
}

// Subscription is one active observation.
type Subscription interface {
	Unsubscribe()
}

// Unavailable is an Observer for environments that cannot report scroll
// position. Every Observe call fails.
type Unavailable struct{}

func (Unavailable) Observe(Sentinel, Config, func(Entry)) (Subscription, error) {
	return nil, ErrObservationUnavailable
}

// ViewportObserver re-evaluates its subscriptions each time the owning list
// reports the rows it shows.
type ViewportObserver struct {
	mu       sync.Mutex
	viewport Viewport
	known    bool
	subs     map[int]*viewportSub
	nextID   int
}

type viewportSub struct {
	sentinel Sentinel
	cfg      Config
	cb       func(Entry)
	last     *bool // nil until the first evaluation
}

// NewViewportObserver creates an observer with no viewport reported yet.
func NewViewportObserver() *ViewportObserver {
	return &ViewportObserver{subs: make(map[int]*viewportSub)}
}

// Observe implements Observer. If a viewport is already known the callback
// fires before Observe returns.
func (o *ViewportObserver) Observe(s Sentinel, cfg Config, cb func(Entry)) (Subscription, error) {
	if o == nil {
		return nil, ErrObservationUnavailable
	}

	o.mu.Lock()
	id := o.nextID
	o.nextID++
	sub := &viewportSub{sentinel: s, cfg: cfg, cb: cb}
	o.subs[id] = sub

	var pending []func()
	if o.known {
		pending = append(pending, o.evaluateLocked(sub))
	}
	o.mu.Unlock()

	run(pending)
	return &viewportSubscription{observer: o, id: id}, nil
}

// SetViewport records the visible rows and notifies every subscription whose
// visibility changed.
func (o *ViewportObserver) SetViewport(v Viewport) {
	o.mu.Lock()
	o.viewport = v
	o.known = true

	ids := make([]int, 0, len(o.subs))
	for id := range o.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	var pending []func()
	for _, id := range ids {
		if fn := o.evaluateLocked(o.subs[id]); fn != nil {
			pending = append(pending, fn)
		}
	}
	o.mu.Unlock()

	run(pending)
}

// Viewport returns the last reported viewport and whether one was reported.
func (o *ViewportObserver) Viewport() (Viewport, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.viewport, o.known
}

// Len returns the number of active subscriptions.
func (o *ViewportObserver) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.subs)
}

// evaluateLocked returns the callback invocation to run after unlocking, or
// nil when visibility did not change.
func (o *ViewportObserver) evaluateLocked(sub *viewportSub) func() {
	entry := Intersect(sub.sentinel, o.viewport, sub.cfg)
	if sub.last != nil && *sub.last == entry.Visible {
		return nil
	}
	visible := entry.Visible
	sub.last = &visible
	cb := sub.cb
	return func() { cb(entry) }
}

func (o *ViewportObserver) remove(id int) {
	o.mu.Lock()
	delete(o.subs, id)
	o.mu.Unlock()
}

type viewportSubscription struct {
	observer *ViewportObserver
	id       int
	once     sync.Once
}

func (s *viewportSubscription) Unsubscribe() {
	s.once.Do(func() { s.observer.remove(s.id) })
}

func run(fns []func()) {
	for _, fn := range fns {
		fn()
	}
}
