package styles

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Theme is a named color palette
type Theme struct {
	Name      string
	Accent    lipgloss.Color
	Surface   lipgloss.Color // modal background
	Selection lipgloss.Color // selected row background
	Dim       lipgloss.Color
	Muted     lipgloss.Color
	Text      lipgloss.Color
	Success   lipgloss.Color
	Error     lipgloss.Color
	Info      lipgloss.Color
}

var themes = map[string]Theme{
	"default": {
		Name:      "default",
		Accent:    lipgloss.Color("#01B4E4"),
		Surface:   lipgloss.Color("#0D253F"),
		Selection: lipgloss.Color("#1E3A5F"),
		Dim:       lipgloss.Color("#6B7280"),
		Muted:     lipgloss.Color("#9CA3AF"),
		Text:      lipgloss.Color("#F9FAFB"),
		Success:   lipgloss.Color("#90CEA1"),
		Error:     lipgloss.Color("#EF4444"),
		Info:      lipgloss.Color("#3B82F6"),
	},
	"ocean": {
		Name:      "ocean",
		Accent:    lipgloss.Color("#2DD4BF"),
		Surface:   lipgloss.Color("#0F172A"),
		Selection: lipgloss.Color("#134E4A"),
		Dim:       lipgloss.Color("#64748B"),
		Muted:     lipgloss.Color("#94A3B8"),
		Text:      lipgloss.Color("#F1F5F9"),
		Success:   lipgloss.Color("#4ADE80"),
		Error:     lipgloss.Color("#F87171"),
		Info:      lipgloss.Color("#38BDF8"),
	},
	"mono": {
		Name:      "mono",
		Accent:    lipgloss.Color("#FFFFFF"),
		Surface:   lipgloss.Color("#111111"),
		Selection: lipgloss.Color("#3A3A3A"),
		Dim:       lipgloss.Color("#6B6B6B"),
		Muted:     lipgloss.Color("#A0A0A0"),
		Text:      lipgloss.Color("#EEEEEE"),
		Success:   lipgloss.Color("#CCCCCC"),
		Error:     lipgloss.Color("#FFFFFF"),
		Info:      lipgloss.Color("#BBBBBB"),
	},
}

// Color palette of the active theme
var (
	Accent    lipgloss.Color
	Surface   lipgloss.Color
	Selection lipgloss.Color
	DimGray   lipgloss.Color
	LightGray lipgloss.Color
	White     lipgloss.Color
	Green     lipgloss.Color
	Red       lipgloss.Color
	Blue      lipgloss.Color
)

// Borders
var (
	ActiveBorder   lipgloss.Style
	InactiveBorder lipgloss.Style
	NoBorder       lipgloss.Style
)

// Text styles
var (
	TitleStyle     lipgloss.Style
	SubtitleStyle  lipgloss.Style
	DimStyle       lipgloss.Style
	AccentStyle    lipgloss.Style
	ErrorStyle     lipgloss.Style
	SuccessStyle   lipgloss.Style
	HighlightStyle lipgloss.Style
)

// Panel, modal and help styles
var (
	InspectorStyle     lipgloss.Style
	ModalStyle         lipgloss.Style
	ModalTitleStyle    lipgloss.Style
	HelpKeyStyle       lipgloss.Style
	HelpDescStyle      lipgloss.Style
	ProgressFullStyle  lipgloss.Style
	ProgressEmptyStyle lipgloss.Style
	BadgeStyle         lipgloss.Style
	DimBadgeStyle      lipgloss.Style
	FilterStyle        lipgloss.Style
	FilterPromptStyle  lipgloss.Style
	StatusBarStyle     lipgloss.Style
)

var current = themes["default"]

func init() {
	build(current)
}

// ThemeNames returns the available theme names in a stable order
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Current returns the active theme's name
func Current() string {
	return current.Name
}

// Apply switches to the named theme. Unknown names leave the theme unchanged.
func Apply(name string) bool {
	t, ok := themes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return false
	}
	current = t
	build(t)
	return true
}

// Next returns the theme after the active one, wrapping around
func Next() string {
	names := ThemeNames()
	for i, name := range names {
		if name == current.Name {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}

func build(t Theme) {
	Accent, Surface, Selection = t.Accent, t.Surface, t.Selection
	DimGray, LightGray, White = t.Dim, t.Muted, t.Text
	Green, Red, Blue = t.Success, t.Error, t.Info

	ActiveBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Accent)
	InactiveBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(DimGray)
	NoBorder = lipgloss.NewStyle().
		Border(lipgloss.HiddenBorder())

	TitleStyle = lipgloss.NewStyle().Foreground(White).Bold(true)
	SubtitleStyle = lipgloss.NewStyle().Foreground(LightGray)
	DimStyle = lipgloss.NewStyle().Foreground(DimGray)
	AccentStyle = lipgloss.NewStyle().Foreground(Accent)
	ErrorStyle = lipgloss.NewStyle().Foreground(Red)
	SuccessStyle = lipgloss.NewStyle().Foreground(Green)
	HighlightStyle = lipgloss.NewStyle().
		Foreground(Surface).
		Background(Accent).
		Padding(0, 1)

	InspectorStyle = lipgloss.NewStyle().Padding(0, 1)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Accent).
		Padding(1, 2).
		Background(Surface)
	ModalTitleStyle = lipgloss.NewStyle().
		Foreground(White).
		Bold(true).
		MarginBottom(1)

	HelpKeyStyle = lipgloss.NewStyle().Foreground(Accent)
	HelpDescStyle = lipgloss.NewStyle().Foreground(DimGray)

	ProgressFullStyle = lipgloss.NewStyle().Foreground(Accent)
	ProgressEmptyStyle = lipgloss.NewStyle().Foreground(DimGray)

	BadgeStyle = lipgloss.NewStyle().
		Foreground(Surface).
		Background(Accent).
		Padding(0, 1)
	DimBadgeStyle = lipgloss.NewStyle().
		Foreground(LightGray).
		Background(Selection).
		Padding(0, 1)

	FilterStyle = lipgloss.NewStyle().Foreground(Accent)
	FilterPromptStyle = lipgloss.NewStyle().Foreground(Accent).Bold(true)

	StatusBarStyle = lipgloss.NewStyle().Foreground(LightGray).Padding(0, 1)
}

// Helper functions

// Truncate truncates a string to the given display width with an ellipsis.
// Wide (CJK) characters count as two cells.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= width {
		return s
	}
	if width == 1 {
		return ansi.Truncate(s, width, "")
	}
	return ansi.Truncate(s, width, "…")
}

// Pad pads a string with spaces to the given display width
func Pad(s string, width int) string {
	s = Truncate(s, width)
	return s + strings.Repeat(" ", max(0, width-ansi.StringWidth(s)))
}

// RenderProgressBar renders a progress bar for percent in [0, 100]
func RenderProgressBar(percent float64, width int) string {
	if width < 3 {
		return ""
	}
	filled := min(max(int(float64(width)*percent/100), 0), width)
	return ProgressFullStyle.Render(strings.Repeat("█", filled)) +
		ProgressEmptyStyle.Render(strings.Repeat("░", width-filled))
}

// RenderListRow renders a complete list row with uniform background when selected.
// This function styles each part explicitly to avoid ANSI reset code issues.
// parts is a slice of {text, fgColor} pairs. Use nil for default foreground.
func RenderListRow(parts []RowPart, selected bool, width int) string {
	var b strings.Builder
	visibleLen := 0

	for _, part := range parts {
		style := lipgloss.NewStyle()
		switch {
		case part.Foreground != nil:
			style = style.Foreground(*part.Foreground)
		case selected:
			style = style.Foreground(White)
		default:
			style = style.Foreground(LightGray)
		}
		if selected {
			style = style.Background(Selection)
		}
		b.WriteString(style.Render(part.Text))
		visibleLen += lipgloss.Width(part.Text)
	}

	// Pad to fill width (2 for left/right margin)
	marginStyle := lipgloss.NewStyle()
	if selected {
		marginStyle = marginStyle.Background(Selection)
	}
	if pad := width - visibleLen - 2; pad > 0 {
		b.WriteString(marginStyle.Render(strings.Repeat(" ", pad)))
	}
	margin := marginStyle.Render(" ")
	return margin + b.String() + margin
}

// RowPart represents a part of a row with optional foreground color
type RowPart struct {
	Text       string
	Foreground *lipgloss.Color
}
