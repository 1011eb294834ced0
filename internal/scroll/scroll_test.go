package scroll

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntersect(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name     string
		sentinel Sentinel
		viewport Viewport
		visible  bool
	}{
		{"inside viewport", Sentinel{Row: 5, Height: 1}, Viewport{Top: 0, Height: 10}, true},
		{"first row below viewport, within margin", Sentinel{Row: 10, Height: 1}, Viewport{Top: 0, Height: 10}, true},
		{"last row of margin", Sentinel{Row: 12, Height: 1}, Viewport{Top: 0, Height: 10}, true},
		{"beyond margin", Sentinel{Row: 13, Height: 1}, Viewport{Top: 0, Height: 10}, false},
		{"above viewport beyond margin", Sentinel{Row: 2, Height: 1}, Viewport{Top: 20, Height: 10}, false},
		{"zero height viewport", Sentinel{Row: 0, Height: 1}, Viewport{Top: 0, Height: 0}, false},
		{"zero height sentinel counts as one row", Sentinel{Row: 3}, Viewport{Top: 0, Height: 5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Intersect(tt.sentinel, tt.viewport, cfg)
			assert.Equal(t, tt.visible, e.Visible)
		})
	}
}

func TestIntersectThreshold(t *testing.T) {
	cfg := Config{Threshold: 0.5, Margin: 0, Enabled: true}
	s := Sentinel{Row: 8, Height: 4}

	e := Intersect(s, Viewport{Top: 0, Height: 9}, cfg)
	assert.InDelta(t, 0.25, e.Ratio, 1e-9)
	assert.False(t, e.Visible)

	e = Intersect(s, Viewport{Top: 0, Height: 10}, cfg)
	assert.InDelta(t, 0.5, e.Ratio, 1e-9)
	assert.True(t, e.Visible)
}

func TestViewportObserverNotifiesOnChangeOnly(t *testing.T) {
	o := NewViewportObserver()
	var entries []Entry
	sub, err := o.Observe(Sentinel{Row: 20, Height: 1}, Config{Threshold: 0.1, Enabled: true}, func(e Entry) {
		entries = append(entries, e)
	})
	require.NoError(t, err)
	assert.Empty(t, entries, "no viewport reported yet")

	o.SetViewport(Viewport{Top: 0, Height: 10})
	require.Len(t, entries, 1)
	assert.False(t, entries[0].Visible)

	o.SetViewport(Viewport{Top: 1, Height: 10})
	assert.Len(t, entries, 1)

	o.SetViewport(Viewport{Top: 15, Height: 10})
	require.Len(t, entries, 2)
	assert.True(t, entries[1].Visible)

	o.SetViewport(Viewport{Top: 16, Height: 10})
	assert.Len(t, entries, 2)

	sub.Unsubscribe()
	sub.Unsubscribe()
	assert.Equal(t, 0, o.Len())
	o.SetViewport(Viewport{Top: 0, Height: 10})
	assert.Len(t, entries, 2)
}

func TestViewportObserverInitialCallbackWhenViewportKnown(t *testing.T) {
	o := NewViewportObserver()
	o.SetViewport(Viewport{Top: 0, Height: 10})

	var got []Entry
	_, err := o.Observe(Sentinel{Row: 4, Height: 1}, DefaultConfig(), func(e Entry) { got = append(got, e) })
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Visible)
}

func TestNilViewportObserverIsUnavailable(t *testing.T) {
	var o *ViewportObserver
	_, err := o.Observe(Sentinel{}, DefaultConfig(), func(Entry) {})
	assert.ErrorIs(t, err, ErrObservationUnavailable)
}

// loaderStub stands in for the paged loader behind a trigger's gate.
type loaderStub struct {
	loading bool
	hasMore bool
	fired   int
}

func (l *loaderStub) gate() (bool, bool) { return l.loading, l.hasMore }

func (l *loaderStub) fire() {
	l.fired++
	l.loading = true
}

func newTestTrigger(o Observer, l *loaderStub) *Trigger {
	return NewTrigger(o, DefaultConfig(), l.gate, l.fire, nil)
}

func TestTriggerFiresOncePerTransition(t *testing.T) {
	o := NewViewportObserver()
	l := &loaderStub{hasMore: true}
	tr := newTestTrigger(o, l)
	o.SetViewport(Viewport{Top: 0, Height: 10})

	tr.Bind(&Sentinel{Row: 30, Height: 1})
	assert.Equal(t, 0, l.fired)

	o.SetViewport(Viewport{Top: 25, Height: 10})
	assert.Equal(t, 1, l.fired)

	// Still visible, fetch done: scrolling inside the visible range does not re-fire.
	l.loading = false
	o.SetViewport(Viewport{Top: 26, Height: 10})
	assert.Equal(t, 1, l.fired)

	// Leave and re-enter.
	o.SetViewport(Viewport{Top: 0, Height: 10})
	o.SetViewport(Viewport{Top: 25, Height: 10})
	assert.Equal(t, 2, l.fired)
}

func TestTriggerGatedWhileLoadingThenRecheck(t *testing.T) {
	o := NewViewportObserver()
	l := &loaderStub{loading: true, hasMore: true}
	tr := newTestTrigger(o, l)
	tr.Bind(&Sentinel{Row: 5, Height: 1})

	o.SetViewport(Viewport{Top: 0, Height: 10})
	assert.True(t, tr.Visible())
	assert.Equal(t, 0, l.fired, "no load while one is in flight")

	o.SetViewport(Viewport{Top: 1, Height: 10})
	assert.Equal(t, 0, l.fired)

	l.loading = false
	assert.True(t, tr.Recheck())
	assert.Equal(t, 1, l.fired)

	// Loading again: recheck is gated.
	assert.False(t, tr.Recheck())
	assert.Equal(t, 1, l.fired)
}

func TestTriggerGatedWhenExhausted(t *testing.T) {
	o := NewViewportObserver()
	l := &loaderStub{hasMore: false}
	tr := newTestTrigger(o, l)
	o.SetViewport(Viewport{Top: 0, Height: 10})

	tr.Bind(&Sentinel{Row: 2, Height: 1})
	assert.False(t, tr.Recheck())
	assert.Equal(t, 0, l.fired)
}

func TestTriggerRebindReleasesPreviousObservation(t *testing.T) {
	o := NewViewportObserver()
	l := &loaderStub{hasMore: true}
	tr := newTestTrigger(o, l)

	tr.Bind(&Sentinel{Row: 50, Height: 1})
	require.Equal(t, 1, o.Len())

	tr.Bind(&Sentinel{Row: 60, Height: 1})
	assert.Equal(t, 1, o.Len())
	assert.Equal(t, 60, tr.Bound().Row)

	// The old sentinel's position no longer fires.
	o.SetViewport(Viewport{Top: 45, Height: 10})
	assert.Equal(t, 0, l.fired)

	o.SetViewport(Viewport{Top: 55, Height: 10})
	assert.Equal(t, 1, l.fired)

	tr.Bind(nil)
	assert.Equal(t, 0, o.Len())
	assert.Nil(t, tr.Bound())
}

func TestTriggerSameSentinelIsNoop(t *testing.T) {
	o := NewViewportObserver()
	o.SetViewport(Viewport{Top: 0, Height: 10})
	l := &loaderStub{hasMore: true}
	tr := newTestTrigger(o, l)

	tr.Bind(&Sentinel{Row: 3, Height: 1})
	require.Equal(t, 1, l.fired)
	l.loading = false

	tr.Bind(&Sentinel{Row: 3, Height: 1})
	assert.Equal(t, 1, l.fired)
	assert.Equal(t, 1, o.Len())
}

func TestTriggerCloseLeavesNoObservers(t *testing.T) {
	o := NewViewportObserver()
	tr := newTestTrigger(o, &loaderStub{hasMore: true})
	tr.Bind(&Sentinel{Row: 1})
	tr.Close()

	assert.Equal(t, 0, o.Len())
	assert.False(t, tr.Recheck())
}

func TestTriggerDisabledNeverObserves(t *testing.T) {
	o := NewViewportObserver()
	o.SetViewport(Viewport{Top: 0, Height: 10})
	l := &loaderStub{hasMore: true}
	cfg := DefaultConfig()
	cfg.Enabled = false
	tr := NewTrigger(o, cfg, l.gate, l.fire, nil)

	tr.Bind(&Sentinel{Row: 1})
	assert.Equal(t, 0, o.Len())
	assert.Equal(t, 0, l.fired)
	assert.NotNil(t, tr.Bound())
	assert.False(t, tr.Available())
}

type failingObserver struct{ err error }

func (f failingObserver) Observe(Sentinel, Config, func(Entry)) (Subscription, error) {
	return nil, f.err
}

func TestTriggerDegradesWhenUnavailable(t *testing.T) {
	for name, o := range map[string]Observer{
		"unavailable": Unavailable{},
		"nil":         nil,
		"failing":     failingObserver{err: errors.New("no tty")},
	} {
		t.Run(name, func(t *testing.T) {
			l := &loaderStub{hasMore: true}
			tr := newTestTrigger(o, l)

			assert.NotPanics(t, func() { tr.Bind(&Sentinel{Row: 0}) })
			assert.False(t, tr.Available())
			assert.False(t, tr.Recheck())
			assert.Equal(t, 0, l.fired)
		})
	}
}
