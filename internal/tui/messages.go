package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/feed"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// PageLoadedMsg carries a finished page job back to the column that owns it
type PageLoadedMsg struct {
	Done feed.Done
}

// DetailLoadedMsg signals that the inspector bundle for Ref has loaded
type DetailLoadedMsg struct {
	Ref    domain.ItemRef
	Bundle *domain.DetailBundle
	Err    error
}

// detailDebounceMsg fires once the cursor has rested on Ref
type detailDebounceMsg struct {
	seq int
	ref domain.ItemRef
}

// ExportProgressMsg is sent for each finished image download
type ExportProgressMsg struct {
	Ref   domain.ItemRef
	Done  int
	Total int
	Next  tea.Cmd // Continuation that reads the next event
}

// ExportDoneMsg signals the end of an image export
type ExportDoneMsg struct {
	Result domain.ExportResult
	Err    error
}

// OpenedMsg signals that a link was handed to the browser
type OpenedMsg struct {
	URL string
}

// CacheClearedMsg signals that the local cache was dropped
type CacheClearedMsg struct{}

// HistoryClearedMsg signals that the search history was dropped
type HistoryClearedMsg struct {
	Err error
}

// ThemeSavedMsg signals that the selected theme was written to the config file
type ThemeSavedMsg struct {
	Err error
}

// LogoutCompleteMsg signals logout completion
type LogoutCompleteMsg struct {
	Error error
}

// TickMsg is a general tick message for animations
type TickMsg struct{}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}
