package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/i18n"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// SearchAction is what the search bar asks the app to do after a key
type SearchAction int

const (
	SearchNone SearchAction = iota
	SearchSubmit
	SearchClearHistory
)

// searchKinds is the tab order of the type selector
var searchKinds = []domain.MediaKind{domain.KindMovie, domain.KindTV, domain.KindPerson}

const maxSuggestions = 8

// SearchBar is the search modal: query, type tabs, year, adult toggle and
// suggestions from earlier queries
type SearchBar struct {
	query     textinput.Model
	year      textinput.Model
	yearFocus bool
	kindIdx   int
	adult     bool

	suggestions []string
	cursor      int // -1 while the query itself is selected

	visible   bool
	width     int
	height    int
	prevQuery string
	tr        *i18n.Translator
}

// NewSearchBar creates a hidden search bar
func NewSearchBar(tr *i18n.Translator) SearchBar {
	q := textinput.New()
	q.Placeholder = tr.T("search.placeholder")
	q.CharLimit = 100
	q.Width = 40
	q.Prompt = "/ "
	q.PromptStyle = styles.AccentStyle
	q.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	q.PlaceholderStyle = styles.DimStyle

	y := textinput.New()
	y.Placeholder = tr.T("search.any_year")
	y.CharLimit = 4
	y.Width = 6
	y.Prompt = tr.T("search.year") + " "
	y.PromptStyle = styles.DimStyle
	y.Validate = func(s string) error {
		for _, r := range s {
			if r < '0' || r > '9' {
				return strconv.ErrSyntax
			}
		}
		return nil
	}

	return SearchBar{query: q, year: y, cursor: -1, tr: tr}
}

// Show opens the bar prefilled with filters
func (s *SearchBar) Show(filters domain.SearchFilters) {
	s.visible = true
	s.query.SetValue(filters.Query)
	s.query.CursorEnd()
	s.year.SetValue("")
	if filters.Year > 0 {
		s.year.SetValue(strconv.Itoa(filters.Year))
	}
	s.kindIdx = 0
	for i, k := range searchKinds {
		if k == filters.Kind {
			s.kindIdx = i
		}
	}
	s.adult = filters.IncludeAdult
	s.cursor = -1
	s.prevQuery = ""
	s.focusQuery()
}

// Hide hides the search bar
func (s *SearchBar) Hide() {
	s.visible = false
	s.query.Blur()
	s.year.Blur()
}

// IsVisible returns true if the search bar is visible
func (s SearchBar) IsVisible() bool {
	return s.visible
}

// SetSize updates the component dimensions
func (s *SearchBar) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.query.Width = max(min(width*2/3, 80)-14, 10)
}

// Query returns the text typed so far
func (s SearchBar) Query() string {
	return s.query.Value()
}

// QueryChanged returns true if the query changed since last check and updates prevQuery
func (s *SearchBar) QueryChanged() bool {
	current := s.query.Value()
	if current != s.prevQuery {
		s.prevQuery = current
		return true
	}
	return false
}

// SetSuggestions replaces the suggestion list
func (s *SearchBar) SetSuggestions(suggestions []string) {
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	s.suggestions = suggestions
	s.cursor = -1
}

// Filters returns the search the bar describes. A highlighted suggestion
// replaces the typed query.
func (s SearchBar) Filters() domain.SearchFilters {
	q := s.query.Value()
	if s.cursor >= 0 && s.cursor < len(s.suggestions) {
		q = s.suggestions[s.cursor]
	}
	year, _ := strconv.Atoi(s.year.Value())
	return domain.SearchFilters{
		Query:        q,
		Kind:         searchKinds[s.kindIdx],
		Year:         year,
		IncludeAdult: s.adult,
	}.Normalize()
}

// Init initializes the component
func (s SearchBar) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (s SearchBar) Update(msg tea.Msg) (SearchBar, tea.Cmd, SearchAction) {
	if !s.visible {
		return s, nil, SearchNone
	}

	var cmd tea.Cmd
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, SearchBarKeys.Escape):
			s.Hide()
			return s, nil, SearchNone

		case key.Matches(msg, SearchBarKeys.Enter):
			if strings.TrimSpace(s.Filters().Query) == "" {
				return s, nil, SearchNone
			}
			return s, nil, SearchSubmit

		case key.Matches(msg, SearchBarKeys.NextKind):
			s.kindIdx = (s.kindIdx + 1) % len(searchKinds)
			return s, nil, SearchNone

		case key.Matches(msg, SearchBarKeys.PrevKind):
			s.kindIdx = (s.kindIdx + len(searchKinds) - 1) % len(searchKinds)
			return s, nil, SearchNone

		case key.Matches(msg, SearchBarKeys.Year):
			if s.yearFocus {
				s.focusQuery()
			} else {
				s.yearFocus = true
				s.query.Blur()
				cmd = s.year.Focus()
			}
			return s, cmd, SearchNone

		case key.Matches(msg, SearchBarKeys.Adult):
			s.adult = !s.adult
			return s, nil, SearchNone

		case key.Matches(msg, SearchBarKeys.Down):
			if s.cursor < len(s.suggestions)-1 {
				s.cursor++
			}
			return s, nil, SearchNone

		case key.Matches(msg, SearchBarKeys.Up):
			if s.cursor >= 0 {
				s.cursor--
			}
			return s, nil, SearchNone

		case key.Matches(msg, SearchBarKeys.ClearRecent):
			s.suggestions = nil
			s.cursor = -1
			return s, nil, SearchClearHistory
		}
	}

	if s.yearFocus {
		s.year, cmd = s.year.Update(msg)
	} else {
		s.query, cmd = s.query.Update(msg)
	}
	return s, cmd, SearchNone
}

func (s *SearchBar) focusQuery() {
	s.yearFocus = false
	s.year.Blur()
	s.query.Focus()
}

// View renders the component
func (s SearchBar) View() string {
	if !s.visible {
		return ""
	}

	modalWidth := max(min(s.width*2/3, 80), 40)

	var b strings.Builder
	b.WriteString(styles.ModalTitleStyle.Render(s.tr.T("search.title")))
	b.WriteString("\n")

	// Type tabs
	tabs := make([]string, len(searchKinds))
	for i, k := range searchKinds {
		label := s.tr.T("kind." + string(k))
		if i == s.kindIdx {
			tabs[i] = styles.BadgeStyle.Render(label)
		} else {
			tabs[i] = styles.DimBadgeStyle.Render(label)
		}
	}
	b.WriteString(strings.Join(tabs, " "))
	b.WriteString("\n\n")

	b.WriteString(s.query.View())
	b.WriteString("\n")

	adult := s.tr.T("search.adult_off")
	if s.adult {
		adult = s.tr.T("search.adult_on")
	}
	b.WriteString(s.year.View())
	b.WriteString(styles.DimStyle.Render("  " + adult))
	b.WriteString("\n\n")

	if len(s.suggestions) > 0 {
		b.WriteString(styles.DimStyle.Render(s.tr.T("search.recent")))
		b.WriteString("\n")
		for i, suggestion := range s.suggestions {
			row := []styles.RowPart{{Text: styles.Truncate(suggestion, modalWidth-10)}}
			b.WriteString(styles.RenderListRow(row, i == s.cursor, modalWidth-6))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(styles.HelpDescStyle.Render(s.tr.T("search.hint")))

	content := lipgloss.NewStyle().
		Width(modalWidth - 4).
		Render(b.String())

	modal := styles.ModalStyle.
		Width(modalWidth).
		Render(content)

	// Center horizontally and vertically
	return lipgloss.Place(
		s.width,
		s.height,
		lipgloss.Center,
		lipgloss.Center,
		modal,
	)
}
