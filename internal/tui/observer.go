package tui

import "github.com/mmcdole/marquee/internal/domain"

// exportEvent is one update from a running export. Exactly one of progress
// and the final result is meaningful: final is set on the last event.
type exportEvent struct {
	done   int
	total  int
	final  bool
	result domain.ExportResult
	err    error
}

// ChannelObserver adapts export progress callbacks to a channel for Bubble Tea.
type ChannelObserver struct {
	ch chan<- exportEvent
}

// NewChannelObserver creates a new channel-based observer.
func NewChannelObserver(ch chan<- exportEvent) *ChannelObserver {
	return &ChannelObserver{ch: ch}
}

// OnProgress sends progress to the channel (non-blocking if full).
func (o *ChannelObserver) OnProgress(done, total int) {
	select {
	case o.ch <- exportEvent{done: done, total: total}:
	default: // Drop intermediate progress rather than stall downloads
	}
}

// Finish delivers the final result. It blocks until the UI reads it.
func (o *ChannelObserver) Finish(result domain.ExportResult, err error) {
	o.ch <- exportEvent{final: true, result: result, err: err}
	close(o.ch)
}
