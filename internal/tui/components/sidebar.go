package components

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/i18n"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// SidebarEntry implements list.Item for a category or the search entry
type SidebarEntry struct {
	Category *domain.Category // nil for the search entry
	Label    string
}

func (e SidebarEntry) FilterValue() string { return e.Label }
func (e SidebarEntry) Description() string { return "" }

func (e SidebarEntry) Title() string {
	if e.Category == nil {
		return "/ " + e.Label
	}
	glyph, _ := KindIndicator(e.Category.Kind)
	return glyph + " " + e.Label
}

// IsSearch reports whether the entry opens the search bar
func (e SidebarEntry) IsSearch() bool {
	return e.Category == nil
}

// Border overhead for the sidebar panel
const BorderSize = 2

// Sidebar is the category selection sidebar component
type Sidebar struct {
	list    list.Model
	focused bool
	width   int
	height  int
}

// NewSidebar creates a sidebar listing categories followed by the search entry
func NewSidebar(categories []domain.Category, tr *i18n.Translator) Sidebar {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)

	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Foreground(styles.White).
		Background(styles.Selection).
		Padding(0, 1)
	delegate.Styles.NormalTitle = lipgloss.NewStyle().
		Foreground(styles.LightGray).
		Padding(0, 1)

	items := make([]list.Item, 0, len(categories)+1)
	for i := range categories {
		items = append(items, SidebarEntry{Category: &categories[i], Label: tr.T(categories[i].LabelKey)})
	}
	items = append(items, SidebarEntry{Label: tr.T("sidebar.search")})

	l := list.New(items, delegate, 0, 0)
	l.Title = tr.T("sidebar.title")
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)
	l.Styles.Title = lipgloss.NewStyle().
		Foreground(styles.Accent).
		Bold(true).
		Padding(0, 1)

	return Sidebar{list: l}
}

// SetSize updates the component dimensions
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.list.SetSize(width-BorderSize, height-BorderSize)
}

// SetFocused sets the focus state
func (s *Sidebar) SetFocused(focused bool) {
	s.focused = focused
}

// IsFocused returns the focus state
func (s Sidebar) IsFocused() bool {
	return s.focused
}

// Selected returns the entry under the cursor
func (s Sidebar) Selected() (SidebarEntry, bool) {
	item, ok := s.list.SelectedItem().(SidebarEntry)
	return item, ok
}

// SelectedIndex returns the selected index
func (s Sidebar) SelectedIndex() int {
	return s.list.Index()
}

// SetSelectedIndex sets the selected index
func (s *Sidebar) SetSelectedIndex(index int) {
	s.list.Select(index)
}

// Update handles cursor movement
func (s Sidebar) Update(msg tea.Msg) (Sidebar, tea.Cmd) {
	if !s.focused {
		return s, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, FeedColumnKeys.Down):
			s.list.CursorDown()
		case key.Matches(msg, FeedColumnKeys.Up):
			s.list.CursorUp()
		case key.Matches(msg, FeedColumnKeys.Home):
			s.list.Select(0)
		case key.Matches(msg, FeedColumnKeys.End):
			s.list.Select(len(s.list.Items()) - 1)
		}
	}

	return s, nil
}

// View renders the component
func (s Sidebar) View() string {
	style := styles.InactiveBorder
	if s.focused {
		style = styles.ActiveBorder
	}

	// Subtract frame (border) size so total rendered size equals s.width x s.height
	frameW, frameH := style.GetFrameSize()

	return style.
		Width(s.width - frameW).
		Height(s.height - frameH).
		Render(s.list.View())
}
