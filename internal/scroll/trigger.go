package scroll

import (
	"errors"
	"log/slog"
)

// Gate reports the state of the loader a Trigger drives.
type Gate func() (loading, hasMore bool)

// Trigger fires a callback when its bound sentinel becomes visible and the
// gate allows a load. It fires at most once per visibility transition.
//
// A Trigger is not safe for concurrent use; drive it from the event loop.
type Trigger struct {
	observer Observer
	cfg      Config
	gate     Gate
	fire     func()
	logger   *slog.Logger

	sentinel *Sentinel
	sub      Subscription
	bindID   uint64 // identifies the current binding; callbacks from older ones are ignored
	visible  bool

	unavailable bool
}

// NewTrigger creates an unbound trigger. A nil observer behaves like
// Unavailable.
func NewTrigger(observer Observer, cfg Config, gate Gate, fire func(), logger *slog.Logger) *Trigger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Trigger{
		observer: observer,
		cfg:      cfg.normalized(),
		gate:     gate,
		fire:     fire,
		logger:   logger,
	}
}

// Bind observes s, releasing any previous observation first. Binding nil only
// unbinds. Binding a sentinel equal to the current one does nothing.
func (t *Trigger) Bind(s *Sentinel) {
	if s != nil && t.sentinel != nil && *s == *t.sentinel {
		return
	}
	t.unbind()
	if s == nil {
		return
	}

	sentinel := *s
	t.sentinel = &sentinel
	if !t.cfg.Enabled {
		return
	}
	if t.observer == nil {
		t.degrade(ErrObservationUnavailable)
		return
	}

	id := t.bindID
	sub, err := t.observer.Observe(sentinel, t.cfg, func(e Entry) {
		if id != t.bindID {
			return
		}
		t.onEntry(e)
	})
	if err != nil {
		t.degrade(err)
		return
	}
	if id != t.bindID {
		// The callback rebound the trigger while Observe was running.
		sub.Unsubscribe()
		return
	}
	t.sub = sub
}

// Bound returns the current sentinel, or nil.
func (t *Trigger) Bound() *Sentinel {
	if t.sentinel == nil {
		return nil
	}
	s := *t.sentinel
	return &s
}

// Visible returns whether the bound sentinel was last observed visible.
func (t *Trigger) Visible() bool {
	return t.visible
}

// Available reports whether the trigger can fire by itself. It is false when
// observation is disabled in the config or has failed.
func (t *Trigger) Available() bool {
	return t.cfg.Enabled && !t.unavailable
}

// Recheck treats a still-visible sentinel as a fresh transition. Call it after
// a load completes so a screen taller than the loaded items keeps filling.
func (t *Trigger) Recheck() bool {
	if t.sub == nil || !t.visible {
		return false
	}
	return t.tryFire()
}

// Close releases the observation. The trigger may be bound again later.
func (t *Trigger) Close() {
	t.unbind()
}

func (t *Trigger) unbind() {
	t.bindID++
	if t.sub != nil {
		t.sub.Unsubscribe()
		t.sub = nil
	}
	t.sentinel = nil
	t.visible = false
}

func (t *Trigger) onEntry(e Entry) {
	was := t.visible
	t.visible = e.Visible
	if e.Visible && !was {
		t.tryFire()
	}
}

func (t *Trigger) tryFire() bool {
	loading, hasMore := t.gate()
	if loading || !hasMore {
		t.logger.Debug("sentinel visible, load gated", "loading", loading, "hasMore", hasMore)
		return false
	}
	t.fire()
	return true
}

func (t *Trigger) degrade(err error) {
	if t.unavailable {
		return
	}
	t.unavailable = true
	if errors.Is(err, ErrObservationUnavailable) {
		t.logger.Info("scroll observation unavailable, automatic loading disabled")
		return
	}
	t.logger.Warn("scroll observation failed, automatic loading disabled", "error", err)
}
