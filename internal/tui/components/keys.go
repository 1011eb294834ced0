package components

import "github.com/charmbracelet/bubbles/key"

// FeedColumnKeyMap defines key bindings for feed column navigation
type FeedColumnKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Home     key.Binding
	End      key.Binding
	HalfUp   key.Binding
	HalfDown key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Escape   key.Binding
	Enter    key.Binding
	Filter   key.Binding
}

// DefaultFeedColumnKeyMap returns the default feed column key bindings
func DefaultFeedColumnKeyMap() FeedColumnKeyMap {
	return FeedColumnKeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Home: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "go to top"),
		),
		End: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "go to bottom"),
		),
		HalfUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("C-u", "half page up"),
		),
		HalfDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("C-d", "half page down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "page down"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear filter"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "accept filter"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
	}
}

// SearchBarKeyMap defines key bindings for the search bar
type SearchBarKeyMap struct {
	Escape      key.Binding
	Enter       key.Binding
	NextKind    key.Binding
	PrevKind    key.Binding
	Year        key.Binding
	Adult       key.Binding
	Up          key.Binding
	Down        key.Binding
	ClearRecent key.Binding
}

// DefaultSearchBarKeyMap returns the default search bar key bindings
func DefaultSearchBarKeyMap() SearchBarKeyMap {
	return SearchBarKeyMap{
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search"),
		),
		NextKind: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next type"),
		),
		PrevKind: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "previous type"),
		),
		Year: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("C-y", "year"),
		),
		Adult: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("C-a", "adult"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑/C-p", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓/C-n", "next"),
		),
		ClearRecent: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("C-x", "clear history"),
		),
	}
}

// Package-level key map instances
var (
	FeedColumnKeys = DefaultFeedColumnKeyMap()
	SearchBarKeys  = DefaultSearchBarKeyMap()
)
