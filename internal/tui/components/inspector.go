package components

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/i18n"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Layout constants for inspector
const (
	InspectorBorderHeight     = 2
	InspectorScrollIndicators = 2
)

// How many entries of each list section the inspector shows
const (
	inspectorCast    = 8
	inspectorVideos  = 5
	inspectorReviews = 2
	inspectorRelated = 6
)

// inspectorContent holds the three-zone layout content
type inspectorContent struct {
	header string // fixed top
	body   string // scrollable middle
	footer string // fixed bottom
}

// Inspector displays the selected item and, once loaded, its detail bundle
type Inspector struct {
	item    domain.ListItem
	bundle  *domain.DetailBundle
	loading bool
	err     error

	width      int
	height     int
	offset     int // scroll offset
	maxVisible int // max visible lines
	tr         *i18n.Translator
}

// NewInspector creates a new inspector component
func NewInspector(tr *i18n.Translator) Inspector {
	return Inspector{tr: tr}
}

// SetItem shows item. The detail bundle is kept only if it belongs to item.
func (i *Inspector) SetItem(item domain.ListItem) {
	if item == nil {
		i.item, i.bundle, i.loading, i.err = nil, nil, false, nil
		i.offset = 0
		return
	}
	if i.item != nil && i.item.GetRef() == item.GetRef() {
		i.item = item
		return
	}
	i.item = item
	i.bundle = nil
	i.loading = false
	i.err = nil
	i.offset = 0 // Reset scroll on item change
}

// Ref returns the reference of the displayed item
func (i Inspector) Ref() (domain.ItemRef, bool) {
	if i.item == nil {
		return domain.ItemRef{}, false
	}
	return i.item.GetRef(), true
}

// SetLoading marks the bundle for ref as being fetched
func (i *Inspector) SetLoading(ref domain.ItemRef) {
	if r, ok := i.Ref(); ok && r == ref && i.bundle == nil {
		i.loading = true
		i.err = nil
	}
}

// SetBundle shows bundle if it belongs to the displayed item
func (i *Inspector) SetBundle(bundle *domain.DetailBundle) {
	if r, ok := i.Ref(); ok && bundle != nil && r == bundle.Ref {
		i.bundle = bundle
		i.loading = false
		i.err = nil
	}
}

// SetError records a failed bundle load for ref
func (i *Inspector) SetError(ref domain.ItemRef, err error) {
	if r, ok := i.Ref(); ok && r == ref {
		i.loading = false
		i.err = err
	}
}

// Bundle returns the loaded bundle of the displayed item, or nil
func (i Inspector) Bundle() *domain.DetailBundle {
	return i.bundle
}

// Loading reports whether the bundle of the displayed item is being fetched
func (i Inspector) Loading() bool {
	return i.loading
}

// Failed reports whether the last bundle load of the displayed item failed
func (i Inspector) Failed() bool {
	return i.err != nil
}

// ScrollDown scrolls the body by n lines
func (i *Inspector) ScrollDown(n int) {
	i.offset += n
}

// ScrollUp scrolls the body by n lines
func (i *Inspector) ScrollUp(n int) {
	i.offset = max(i.offset-n, 0)
}

// SetSize updates the component dimensions
func (i *Inspector) SetSize(width, height int) {
	i.width = width
	i.height = height
	// Reserve space for border, scroll indicators, title and blank line
	i.maxVisible = max(height-InspectorBorderHeight-InspectorScrollIndicators-2, 1)
}

// View renders the component
func (i Inspector) View() string {
	style := styles.InactiveBorder

	// Border takes 2 chars (1 each side), leave 1 char safety margin
	contentWidth := max(i.width-3, 10)
	content := i.renderInspector(contentWidth)

	titleLine := styles.AccentStyle.Render(styles.Truncate(i.tr.T("inspector.title"), contentWidth))

	// Three-zone layout: header is fixed, body scrolls, footer is fixed
	headerLines := splitLines(content.header)
	footerLines := splitLines(content.footer)
	bodyLines := splitLines(content.body)

	availableForBody := max(i.maxVisible-len(headerLines)-len(footerLines), 1)

	// Clamp body scroll offset
	maxOffset := max(len(bodyLines)-availableForBody, 0)
	offset := min(i.offset, maxOffset)
	end := min(offset+availableForBody, len(bodyLines))
	visibleBody := bodyLines[offset:end]

	up := " "
	if offset > 0 {
		up = styles.DimStyle.Render("↑ " + i.tr.T("feed.more"))
	}
	down := " "
	if end < len(bodyLines) {
		down = styles.DimStyle.Render("↓ " + i.tr.T("feed.more"))
	}

	parts := []string{titleLine, ""}
	if len(headerLines) > 0 {
		parts = append(parts, headerLines...)
	}
	parts = append(parts, up)
	parts = append(parts, visibleBody...)
	for j := len(visibleBody); j < availableForBody; j++ {
		parts = append(parts, "")
	}
	parts = append(parts, down)
	if len(footerLines) > 0 {
		parts = append(parts, footerLines...)
	}

	// Subtract frame (border) size so total rendered size equals i.width x i.height
	frameW, frameH := style.GetFrameSize()

	return style.
		Width(i.width - frameW).
		Height(i.height - frameH).
		Render(strings.Join(parts, "\n"))
}

// renderInspector renders the inspector panel content as three zones
func (i Inspector) renderInspector(width int) inspectorContent {
	if i.item == nil {
		return inspectorContent{body: styles.DimStyle.Render(i.tr.T("inspector.empty"))}
	}

	var content inspectorContent
	switch {
	case i.bundle != nil && i.bundle.Person != nil:
		content = i.renderPerson(i.bundle, width)
	case i.bundle != nil && i.bundle.Details != nil:
		content = i.renderTitle(i.bundle, width)
	default:
		content = i.renderSummary(width)
	}
	content.footer = i.renderFooter(width)
	return content
}

// renderSummary renders what the list already knows while details load
func (i Inspector) renderSummary(width int) inspectorContent {
	header := renderHeader(i.item.GetTitle(), i.item.GetKind(), i.item.GetYear(), i.item.GetRating(), width, i.tr)

	var body strings.Builder
	switch v := i.item.(type) {
	case *domain.Title:
		if v.Overview != "" {
			body.WriteString(styles.SubtitleStyle.Render(wrapText(v.Overview, bodyWidth(width))))
			body.WriteString("\n")
		}
	case *domain.Person:
		if desc := v.GetDescription(); desc != "" {
			body.WriteString(styles.SubtitleStyle.Render(wrapText(desc, bodyWidth(width))))
			body.WriteString("\n")
		}
	}

	body.WriteString("\n")
	switch {
	case i.loading:
		body.WriteString(styles.DimStyle.Render(i.tr.T("inspector.loading")))
	case i.err != nil:
		body.WriteString(styles.ErrorStyle.Render(wrapText(ErrorText(i.tr, i.err, ""), bodyWidth(width))))
	}

	return inspectorContent{header: header, body: strings.TrimRight(body.String(), "\n")}
}

func (i Inspector) renderTitle(b *domain.DetailBundle, width int) inspectorContent {
	d := b.Details
	var header strings.Builder
	header.WriteString(renderHeader(d.Name, d.Kind, d.Year, d.VoteAverage, width, i.tr))
	if d.Tagline != "" {
		header.WriteString("\n")
		header.WriteString(styles.SubtitleStyle.Italic(true).Render(styles.Truncate(d.Tagline, width)))
	}

	bw := bodyWidth(width)
	var body strings.Builder
	field := func(labelKey, value string) {
		if value == "" {
			return
		}
		body.WriteString(styles.DimStyle.Render(i.tr.T(labelKey) + ": "))
		body.WriteString(wrapText(value, bw-ansi.StringWidth(i.tr.T(labelKey))-2))
		body.WriteString("\n")
	}

	field("inspector.genres", d.GenreNames())
	if d.Kind == domain.KindTV {
		if d.Seasons > 0 {
			body.WriteString(styles.DimStyle.Render(i.tr.T("inspector.seasons", d.Seasons, d.Episodes)))
			body.WriteString("\n")
		}
		field("inspector.created_by", strings.Join(d.CreatedBy, ", "))
		field("inspector.networks", strings.Join(d.Networks, ", "))
	} else {
		field("inspector.runtime", d.FormattedRuntime())
		field("inspector.directors", strings.Join(b.Directors(), ", "))
	}

	if d.Overview != "" {
		section(&body, i.tr.T("inspector.overview"))
		body.WriteString(styles.SubtitleStyle.Render(wrapText(d.Overview, bw)))
		body.WriteString("\n")
	}

	if len(b.Cast) > 0 {
		section(&body, i.tr.T("inspector.cast"))
		for _, c := range b.Cast[:min(len(b.Cast), inspectorCast)] {
			line := c.Name
			if c.Character != "" {
				line += styles.DimStyle.Render(" · " + c.Character)
			}
			body.WriteString(styles.Truncate(line, bw))
			body.WriteString("\n")
		}
	}

	if len(b.Videos) > 0 {
		section(&body, i.tr.T("inspector.videos"))
		for _, v := range b.Videos[:min(len(b.Videos), inspectorVideos)] {
			body.WriteString(styles.Truncate(styles.DimStyle.Render(v.Type+" · ")+v.Name, bw))
			body.WriteString("\n")
		}
	}

	if len(b.Reviews) > 0 {
		section(&body, i.tr.T("inspector.reviews"))
		for _, r := range b.Reviews[:min(len(b.Reviews), inspectorReviews)] {
			author := r.Author
			if r.Rating > 0 {
				author += fmt.Sprintf(" ★ %.0f", r.Rating)
			}
			body.WriteString(styles.AccentStyle.Render(author))
			body.WriteString("\n")
			body.WriteString(styles.SubtitleStyle.Render(wrapText(excerpt(r.Content, 280), bw)))
			body.WriteString("\n")
		}
	}

	if len(b.Recommendations) > 0 {
		section(&body, i.tr.T("inspector.recommendations"))
		for _, t := range b.Recommendations[:min(len(b.Recommendations), inspectorRelated)] {
			body.WriteString(styles.Truncate(ItemLabel(&t), bw))
			body.WriteString("\n")
		}
	}

	i.renderExtras(&body, b, bw)
	return inspectorContent{header: header.String(), body: strings.TrimRight(body.String(), "\n")}
}

func (i Inspector) renderPerson(b *domain.DetailBundle, width int) inspectorContent {
	p := b.Person
	header := renderHeader(p.Name, domain.KindPerson, 0, 0, width, i.tr)
	if p.Department != "" {
		header += "\n" + styles.DimStyle.Render(p.Department)
	}

	bw := bodyWidth(width)
	var body strings.Builder
	if p.Birthday != "" {
		born := p.Birthday
		if p.PlaceOfBirth != "" {
			born += " · " + p.PlaceOfBirth
		}
		body.WriteString(styles.DimStyle.Render(i.tr.T("inspector.born") + ": "))
		body.WriteString(wrapText(born, bw))
		body.WriteString("\n")
	}
	if p.Deathday != "" {
		body.WriteString(styles.DimStyle.Render(i.tr.T("inspector.died") + ": "))
		body.WriteString(p.Deathday)
		body.WriteString("\n")
	}

	if p.Biography != "" {
		section(&body, i.tr.T("inspector.biography"))
		body.WriteString(styles.SubtitleStyle.Render(wrapText(p.Biography, bw)))
		body.WriteString("\n")
	}

	if len(p.Credits) > 0 {
		section(&body, i.tr.T("inspector.known_for"))
		for _, t := range p.Credits[:min(len(p.Credits), inspectorCast)] {
			glyph, fg := KindIndicator(t.Kind)
			body.WriteString(lipgloss.NewStyle().Foreground(fg).Render(glyph) + " ")
			body.WriteString(styles.Truncate(ItemLabel(&t), bw-2))
			body.WriteString("\n")
		}
	}

	i.renderExtras(&body, b, bw)
	return inspectorContent{header: header, body: strings.TrimRight(body.String(), "\n")}
}

// renderExtras renders the image count and any sections that failed
func (i Inspector) renderExtras(body *strings.Builder, b *domain.DetailBundle, width int) {
	if len(b.Images) > 0 {
		body.WriteString("\n")
		body.WriteString(styles.DimStyle.Render(i.tr.T("inspector.images", len(b.Images))))
		body.WriteString("\n")
	}
	if len(b.Failed) > 0 {
		sections := make([]string, 0, len(b.Failed))
		for s := range b.Failed {
			sections = append(sections, s)
		}
		sort.Strings(sections)
		body.WriteString("\n")
		body.WriteString(styles.ErrorStyle.Render(wrapText(i.tr.T("inspector.section_failed", strings.Join(sections, ", ")), width)))
		body.WriteString("\n")
	}
}

func (i Inspector) renderFooter(width int) string {
	separator := styles.DimStyle.Render(strings.Repeat("─", width))
	return separator + "\n" + styles.HelpDescStyle.Render(styles.Truncate(i.tr.T("inspector.hint"), width))
}

// renderHeader renders the title, kind, year and a colored rating
func renderHeader(title string, kind domain.MediaKind, year int, rating float64, width int, tr *i18n.Translator) string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(styles.Truncate(title, width)))
	b.WriteString("\n")

	glyph, fg := KindIndicator(kind)
	meta := []string{lipgloss.NewStyle().Foreground(fg).Render(glyph) + styles.DimStyle.Render(" "+tr.T("kind."+string(kind)))}
	if year > 0 {
		meta = append(meta, styles.DimStyle.Render(fmt.Sprintf("%d", year)))
	}
	if rating > 0 {
		var ratingStyle lipgloss.Style
		switch {
		case rating >= 7:
			ratingStyle = lipgloss.NewStyle().Foreground(styles.Green)
		case rating >= 5:
			ratingStyle = lipgloss.NewStyle().Foreground(styles.Accent)
		default:
			ratingStyle = lipgloss.NewStyle().Foreground(styles.Red)
		}
		meta = append(meta, ratingStyle.Render(fmt.Sprintf("★ %.1f", rating)))
	}
	b.WriteString(strings.Join(meta, styles.DimStyle.Render(" · ")))
	return b.String()
}

func section(b *strings.Builder, title string) {
	b.WriteString("\n")
	b.WriteString(styles.AccentStyle.Bold(true).Render(title))
	b.WriteString("\n")
}

func bodyWidth(width int) int {
	return min(width-2, 80)
}

// excerpt shortens s to at most n runes at a word boundary
func excerpt(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	cut := string(runes[:n])
	if idx := strings.LastIndex(cut, " "); idx > n/2 {
		cut = cut[:idx]
	}
	return cut + "…"
}
