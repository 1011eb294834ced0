package components

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/feed"
	"github.com/mmcdole/marquee/internal/i18n"
	"github.com/mmcdole/marquee/internal/paging"
	"github.com/mmcdole/marquee/internal/scroll"
	"github.com/mmcdole/marquee/internal/tui/styles"
	"github.com/sahilm/fuzzy"
)

// Spinner frames for loading animation
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Layout constants for feed columns
const (
	// Border adds 1 char on each side (left+right for width, top+bottom for height)
	BorderWidth  = 2
	BorderHeight = 2

	// Scroll indicators ("↑ more" and "↓ more") each take 1 line
	ScrollIndicatorLines = 2
)

// Runner turns a feed job into a command. Nil jobs must yield nil.
type Runner func(feed.Job) tea.Cmd

// FeedColumn is a scrollable column over one paged feed. The row after the
// last item is the feed's sentinel; it shows the loading, error, end-of-list
// or load-more state.
type FeedColumn struct {
	feed  *feed.Feed[domain.ListItem]
	fetch paging.FetchFunc[domain.ListItem]
	run   Runner
	tr    *i18n.Translator

	columnType ColumnType
	title      string
	source     *domain.ItemRef // item whose related list this column shows

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width   int
	height  int
	focused bool

	spinnerFrame int

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	filteredIdx  []int // indices into the loaded items
}

// NewFeedColumn creates an idle column. Call Activate to load it. opts are
// passed on to the column's feed.
func NewFeedColumn(colType ColumnType, title string, cfg scroll.Config, run Runner, tr *i18n.Translator, logger *slog.Logger, opts ...feed.Option) *FeedColumn {
	ti := textinput.New()
	ti.Placeholder = tr.T("feed.filter_placeholder")
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return &FeedColumn{
		feed:        feed.New[domain.ListItem](cfg, append([]feed.Option{feed.WithLogger(logger), feed.WithName(title)}, opts...)...),
		run:         run,
		tr:          tr,
		columnType:  colType,
		title:       title,
		filterInput: ti,
	}
}

// Activate points the column at key. A different key discards everything
// loaded so far and requests the first page; the same key does nothing.
func (c *FeedColumn) Activate(key string, fetch paging.FetchFunc[domain.ListItem]) tea.Cmd {
	job := c.feed.Activate(key, fetch)
	if job == nil {
		return nil
	}
	c.fetch = fetch
	c.cursor = 0
	c.offset = 0
	c.clearFilter()
	return c.run(job)
}

// Reload drops the loaded pages and starts again from page 1
func (c *FeedColumn) Reload() tea.Cmd {
	key, fetch := c.feed.Key(), c.fetch
	if fetch == nil {
		return nil
	}
	c.feed.Close()
	return c.Activate(key, fetch)
}

// Close releases the feed. Results still in flight are dropped.
func (c *FeedColumn) Close() {
	c.feed.Close()
}

// Key returns the parameter identity the column shows
func (c *FeedColumn) Key() string {
	return c.feed.Key()
}

// Complete applies a finished page job. The sentinel moves below the new
// items first so that a still-visible sentinel requests the next page.
func (c *FeedColumn) Complete(done feed.Done) tea.Cmd {
	if done.Key != c.feed.Key() {
		return nil
	}
	cmds := []tea.Cmd{c.syncSentinel()}
	cmds = append(cmds, c.run(c.feed.Complete(done)))
	if c.filterActive {
		c.applyFilter()
	}
	c.clampCursor()
	return tea.Batch(cmds...)
}

// Retry re-requests the page that failed
func (c *FeedColumn) Retry() tea.Cmd {
	return c.run(c.feed.Retry())
}

// LoadMore requests the next page without waiting for the sentinel
func (c *FeedColumn) LoadMore() tea.Cmd {
	return c.run(c.feed.LoadMore())
}

// State returns the feed's presentation snapshot
func (c *FeedColumn) State() feed.View[domain.ListItem] {
	return c.feed.View()
}

// AutoLoad reports whether scrolling loads pages by itself
func (c *FeedColumn) AutoLoad() bool {
	return c.feed.AutoLoad()
}

// Update handles key input. Navigation that scrolls the column may return
// the command for the next page.
func (c *FeedColumn) Update(msg tea.Msg) (*FeedColumn, tea.Cmd) {
	if !c.focused {
		return c, nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	// Handle filter input when active AND focused (typing mode)
	if c.filterActive && c.filterInput.Focused() {
		switch {
		case key.Matches(keyMsg, FeedColumnKeys.Escape):
			return c, c.ClearFilter()
		case key.Matches(keyMsg, FeedColumnKeys.Enter):
			// Accept filter, blur input to allow navigation
			c.filterInput.Blur()
			return c, nil
		case keyMsg.String() == "backspace" && c.filterInput.Value() == "":
			return c, c.ClearFilter()
		}

		var cmd tea.Cmd
		c.filterInput, cmd = c.filterInput.Update(msg)
		c.applyFilter()
		return c, cmd
	}

	// Filter active but blurred (navigation mode with filter results)
	if c.filterActive {
		switch {
		case key.Matches(keyMsg, FeedColumnKeys.Escape):
			return c, c.ClearFilter()
		case key.Matches(keyMsg, FeedColumnKeys.Filter):
			c.filterInput.Focus()
			return c, nil
		}
	}

	count := c.ItemCount()
	if count == 0 {
		return c, nil
	}

	switch {
	case key.Matches(keyMsg, FeedColumnKeys.Down):
		c.cursor = min(c.cursor+1, count-1)
	case key.Matches(keyMsg, FeedColumnKeys.Up):
		c.cursor = max(c.cursor-1, 0)
	case key.Matches(keyMsg, FeedColumnKeys.Home):
		c.cursor = 0
	case key.Matches(keyMsg, FeedColumnKeys.End):
		c.cursor = count - 1
	case key.Matches(keyMsg, FeedColumnKeys.HalfDown):
		c.cursor = min(c.cursor+c.maxVisible/2, count-1)
	case key.Matches(keyMsg, FeedColumnKeys.HalfUp):
		c.cursor = max(c.cursor-c.maxVisible/2, 0)
	case key.Matches(keyMsg, FeedColumnKeys.PageDown):
		c.cursor = min(c.cursor+c.maxVisible, count-1)
	case key.Matches(keyMsg, FeedColumnKeys.PageUp):
		c.cursor = max(c.cursor-c.maxVisible, 0)
	default:
		return c, nil
	}
	return c, c.ensureVisible()
}

// View renders the column
func (c *FeedColumn) View() string {
	style := styles.InactiveBorder
	if c.focused {
		style = styles.ActiveBorder
	}

	content := c.renderContent()

	// Subtract frame (border) size so total rendered size equals c.width x c.height
	frameW, frameH := style.GetFrameSize()

	return style.
		Width(c.width - frameW).
		Height(c.height - frameH).
		Render(content)
}

// SetSize updates the dimensions and reports the new viewport to the feed
func (c *FeedColumn) SetSize(width, height int) tea.Cmd {
	c.width = width
	c.height = height
	c.recalcMaxVisible()
	return c.ensureVisible()
}

func (c *FeedColumn) Width() int  { return c.width }
func (c *FeedColumn) Height() int { return c.height }

func (c *FeedColumn) SetFocused(focused bool) { c.focused = focused }
func (c *FeedColumn) IsFocused() bool         { return c.focused }

func (c *FeedColumn) Title() string             { return c.title }
func (c *FeedColumn) SetTitle(title string)     { c.title = title }
func (c *FeedColumn) ColumnType() ColumnType    { return c.columnType }

// SetColumnType changes what the column lists. The root column switches
// between catalog and search results.
func (c *FeedColumn) SetColumnType(t ColumnType) { c.columnType = t }
func (c *FeedColumn) SetSpinnerFrame(frame int) { c.spinnerFrame = frame }

// Source returns the item whose related list this column shows, if any
func (c *FeedColumn) Source() *domain.ItemRef {
	return c.source
}

// SetSource records the item whose related list this column shows
func (c *FeedColumn) SetSource(ref domain.ItemRef) {
	c.source = &ref
}

// SelectedItem returns the item under the cursor, or nil
func (c *FeedColumn) SelectedItem() domain.ListItem {
	items := c.feed.View().Items
	if c.cursor >= c.ItemCount() {
		return nil
	}
	idx := c.mapIndex(c.cursor)
	if idx >= len(items) {
		return nil
	}
	return items[idx]
}

func (c *FeedColumn) SelectedIndex() int {
	return c.cursor
}

// SetSelectedIndex moves the cursor, clamped to the loaded items
func (c *FeedColumn) SetSelectedIndex(idx int) tea.Cmd {
	c.cursor = idx
	c.clampCursor()
	return c.ensureVisible()
}

// ItemCount returns the number of selectable rows
func (c *FeedColumn) ItemCount() int {
	if c.filteredIdx != nil {
		return len(c.filteredIdx)
	}
	return len(c.feed.View().Items)
}

func (c *FeedColumn) IsEmpty() bool {
	return c.ItemCount() == 0
}

// ToggleFilter activates the filter input. The sentinel is detached while a
// filter is active so filtering never pulls in more pages.
func (c *FeedColumn) ToggleFilter() tea.Cmd {
	c.filterActive = true
	c.filterInput.Focus()
	c.recalcMaxVisible()
	return c.syncSentinel()
}

func (c *FeedColumn) IsFiltering() bool {
	return c.filterActive
}

// IsFilterTyping returns true if filter is active AND input is focused
func (c *FeedColumn) IsFilterTyping() bool {
	return c.filterActive && c.filterInput.Focused()
}

// ClearFilter shows all items again and re-attaches the sentinel
func (c *FeedColumn) ClearFilter() tea.Cmd {
	c.clearFilter()
	return tea.Batch(c.syncSentinel(), c.ensureVisible())
}

// Internal methods

func (c *FeedColumn) recalcMaxVisible() {
	// Interior height minus title line and scroll indicators
	c.maxVisible = c.height - BorderHeight - ScrollIndicatorLines - 1
	if c.filterActive {
		c.maxVisible--
	}
	if c.maxVisible < 1 {
		c.maxVisible = 1
	}
}

// hasStatusRow reports whether the sentinel row follows the items
func (c *FeedColumn) hasStatusRow() bool {
	return !c.filterActive && c.feed.View().Phase == feed.PhaseItems
}

// syncSentinel places the sentinel on the row after the last item, or
// removes it when there is no such row.
func (c *FeedColumn) syncSentinel() tea.Cmd {
	if !c.hasStatusRow() {
		return c.run(c.feed.SetSentinel(nil))
	}
	row := len(c.feed.View().Items)
	return c.run(c.feed.SetSentinel(&scroll.Sentinel{Row: row, Height: 1}))
}

// ensureVisible scrolls so the cursor is on screen, keeping the status row in
// view when the cursor is on the last item, and reports the viewport.
func (c *FeedColumn) ensureVisible() tea.Cmd {
	// Don't adjust offset if size hasn't been set yet
	if c.maxVisible <= 0 {
		return nil
	}
	last := c.cursor
	if c.hasStatusRow() && c.cursor == c.ItemCount()-1 {
		last++
	}
	if c.cursor < c.offset {
		c.offset = c.cursor
	}
	if last >= c.offset+c.maxVisible {
		c.offset = last - c.maxVisible + 1
	}
	if c.offset < 0 {
		c.offset = 0
	}
	return c.run(c.feed.Scrolled(scroll.Viewport{Top: c.offset, Height: c.maxVisible}))
}

func (c *FeedColumn) clampCursor() {
	count := c.ItemCount()
	if c.cursor >= count {
		c.cursor = count - 1
	}
	if c.cursor < 0 {
		c.cursor = 0
	}
}

func (c *FeedColumn) clearFilter() {
	c.filterActive = false
	c.filterQuery = ""
	c.filteredIdx = nil
	c.filterInput.SetValue("")
	c.filterInput.Blur()
	c.recalcMaxVisible()
}

func (c *FeedColumn) applyFilter() {
	query := c.filterInput.Value()
	c.filterQuery = query

	if query == "" {
		c.filteredIdx = nil
		return
	}

	items := c.feed.View().Items
	titles := make([]string, len(items))
	for i, item := range items {
		titles[i] = strings.ToLower(item.GetTitle())
	}

	matches := fuzzy.Find(strings.ToLower(query), titles)
	c.filteredIdx = make([]int, len(matches))
	for i, match := range matches {
		c.filteredIdx[i] = match.Index
	}

	// Reset cursor to first match
	c.cursor = 0
	c.offset = 0
}

func (c *FeedColumn) mapIndex(i int) int {
	if c.filteredIdx != nil && i < len(c.filteredIdx) {
		return c.filteredIdx[i]
	}
	return i
}

// Rendering

func (c *FeedColumn) spinner() string {
	return spinnerFrames[c.spinnerFrame%len(spinnerFrames)]
}

func (c *FeedColumn) renderContent() string {
	// Content width = column width - border (2 chars for left+right border)
	itemWidth := max(c.width-BorderWidth, 10)

	titleLine := styles.AccentStyle.Render(styles.Truncate(c.title, itemWidth))
	state := c.feed.View()

	// Full-size states take the whole column
	switch state.Phase {
	case feed.PhaseIdle:
		return titleLine
	case feed.PhaseInitialLoading:
		return titleLine + "\n \n" + styles.DimStyle.Render(c.spinner()+" "+c.tr.T("feed.loading"))
	case feed.PhaseInitialError:
		msg := wrapText(c.tr.T("feed.error", ErrorText(c.tr, state.Err, state.Error)), itemWidth)
		return titleLine + "\n \n" + styles.ErrorStyle.Render(msg) + "\n\n" +
			styles.AccentStyle.Render(c.tr.T("feed.retry"))
	case feed.PhaseEmpty:
		return titleLine + "\n \n" + styles.DimStyle.Render(c.tr.T("feed.empty"))
	}

	count := c.ItemCount()
	rows := count
	if c.hasStatusRow() {
		rows++
	}

	var lines []string
	end := min(c.offset+c.maxVisible, rows)
	for i := c.offset; i < end; i++ {
		if i == count {
			lines = append(lines, c.renderStatusRow(state, itemWidth))
			continue
		}
		lines = append(lines, RenderItemRow(c.feed.View().Items[c.mapIndex(i)], i == c.cursor, itemWidth))
	}

	if count == 0 && c.filterActive {
		lines = append(lines, styles.DimStyle.Render(c.tr.T("feed.no_matches")))
	}

	// ALWAYS reserve space for header and footer to prevent layout shifts
	header := " "
	if c.offset > 0 {
		header = styles.DimStyle.Render("↑ " + c.tr.T("feed.more"))
	}
	footer := " "
	if end < rows {
		footer = styles.DimStyle.Render("↓ " + c.tr.T("feed.more"))
	}

	content := titleLine + "\n" + header + "\n" + strings.Join(lines, "\n") + "\n" + footer
	if c.filterActive {
		content += "\n" + c.renderFilterBar(len(state.Items))
	}
	return content
}

// renderStatusRow renders the sentinel row
func (c *FeedColumn) renderStatusRow(state feed.View[domain.ListItem], width int) string {
	var line string
	switch {
	case state.Loading:
		line = styles.DimStyle.Render(c.spinner() + " " + c.tr.T("feed.loading_more"))
	case state.CanRetry:
		hint := " · " + c.tr.T("feed.retry")
		msg := c.tr.T("feed.error", ErrorText(c.tr, state.Err, state.Error))
		msg = styles.Truncate(msg, max(width-3-ansi.StringWidth(hint), 5))
		line = styles.ErrorStyle.Render(msg) + styles.AccentStyle.Render(hint)
	case !state.HasMore:
		line = styles.DimStyle.Render(c.tr.T("feed.end", len(state.Items)))
	case !c.feed.AutoLoad():
		line = styles.AccentStyle.Render(c.tr.T("feed.load_more"))
	default:
		line = styles.DimStyle.Render("…")
	}
	return " " + line
}

func (c *FeedColumn) renderFilterBar(total int) string {
	input := c.filterInput.View()
	if c.filterQuery == "" {
		return input
	}
	return input + styles.DimStyle.Render(" ["+c.tr.T("feed.filtered", c.ItemCount(), total)+"]")
}

// ErrorText returns the user-facing text for a failure. Known domain errors
// are translated; anything else falls back to fallback or the error text.
func ErrorText(tr *i18n.Translator, err error, fallback string) string {
	switch {
	case err == nil:
		return fallback
	case errors.Is(err, domain.ErrOffline):
		return tr.T("error.offline")
	case errors.Is(err, domain.ErrUnauthorized):
		return tr.T("error.unauthorized")
	case errors.Is(err, domain.ErrRateLimited):
		return tr.T("error.rate_limited")
	case errors.Is(err, domain.ErrNotFound):
		return tr.T("error.not_found")
	case errors.Is(err, domain.ErrNotConfigured):
		return tr.T("error.not_configured")
	case fallback != "":
		return fallback
	default:
		return fmt.Sprint(err)
	}
}
