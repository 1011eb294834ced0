package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Raw kind indicator characters (unstyled)
const (
	MovieChar  = "●"
	TVChar     = "◆"
	PersonChar = "◉"
)

// KindIndicator returns the glyph and color used for a media kind
func KindIndicator(kind domain.MediaKind) (string, lipgloss.Color) {
	switch kind {
	case domain.KindTV:
		return TVChar, styles.Blue
	case domain.KindPerson:
		return PersonChar, styles.Green
	default:
		return MovieChar, styles.Accent
	}
}

// ItemLabel returns the display title of an item, with the year when known
func ItemLabel(item domain.ListItem) string {
	if year := item.GetYear(); year > 0 {
		return fmt.Sprintf("%s (%d)", item.GetTitle(), year)
	}
	return item.GetTitle()
}

// itemDetail returns the right-aligned secondary text of a row
func itemDetail(item domain.ListItem) string {
	switch v := item.(type) {
	case *domain.Title:
		if r := v.FormattedRating(); r != "" {
			return "★ " + r
		}
	case *domain.Person:
		return v.Department
	}
	return ""
}

// RenderItemRow renders one list row: kind indicator, title and rating.
func RenderItemRow(item domain.ListItem, selected bool, width int) string {
	glyph, glyphFg := KindIndicator(item.GetKind())
	dimFg := styles.DimGray

	detail := itemDetail(item)
	// Available space: width - indicator(1) - space(1) - margins(2)
	available := width - 4
	if detail != "" {
		available -= ansi.StringWidth(detail) + 1
	}
	if available < 5 {
		available = 5
		detail = ""
	}
	title := styles.Pad(ItemLabel(item), available)

	parts := []styles.RowPart{
		{Text: glyph, Foreground: &glyphFg},
		{Text: " " + title, Foreground: nil},
	}
	if detail != "" {
		parts = append(parts, styles.RowPart{Text: " " + detail, Foreground: &dimFg})
	}
	return styles.RenderListRow(parts, selected, width)
}

// wrapText word-wraps text to width display cells
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	return ansi.Wrap(strings.TrimSpace(text), width, "")
}

// splitLines splits rendered content into lines, returning nil for ""
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
