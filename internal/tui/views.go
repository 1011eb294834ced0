package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Spinner frames for the footer
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// RenderSpinner renders the spinner at the given frame
func RenderSpinner(frame int) string {
	return styles.AccentStyle.Render(spinnerFrames[frame%len(spinnerFrames)])
}

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return m.tr.T("feed.loading")
	}

	// Handle modal states
	if m.State == StateHelp {
		return m.renderHelp()
	}

	if m.State == StateConfirmLogout {
		return m.renderLogoutConfirmation()
	}

	layout := m.calculateColumnLayout(m.Width)

	panels := []string{m.Sidebar.View()}
	for _, idx := range m.visibleColumns(layout) {
		panels = append(panels, m.ColumnStack.Get(idx).View())
	}
	if m.ShowInspector {
		panels = append(panels, m.Inspector.View())
	}

	content := lipgloss.JoinHorizontal(lipgloss.Top, panels...)

	view := lipgloss.JoinVertical(
		lipgloss.Left,
		content,
		m.renderFooter(),
	)

	// Overlay search bar if visible; it centers itself
	if m.SearchBar.IsVisible() {
		view = m.SearchBar.View()
	}

	// Overlay export prompt if visible
	if m.ExportPrompt.IsVisible() {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.ExportPrompt.View())
	}

	return view
}

// renderFooter renders a single-line minimal footer
func (m Model) renderFooter() string {
	// Left side: export progress, status message or page activity
	var left string
	switch {
	case m.Exporting:
		left = RenderSpinner(m.SpinnerFrame) + " " + styles.DimStyle.Render(m.tr.T("status.exporting", m.ExportDone, m.ExportTotal))
	case m.StatusMsg != "":
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.SuccessStyle.Render(m.StatusMsg)
		}
	case m.ColumnStack.Loading():
		left = RenderSpinner(m.SpinnerFrame) + " " + styles.DimStyle.Render(m.tr.T("feed.loading"))
	}

	// Center section: hints for the state of the focused column
	var center string
	if top := m.ColumnStack.Top(); top != nil && !m.SidebarFocused {
		state := top.State()
		switch {
		case state.CanRetry:
			center = hint(Keys.Retry, m.tr.T("help.retry"))
		case state.HasMore && !state.Loading && !top.AutoLoad():
			center = hint(Keys.LoadMore, m.tr.T("help.load_more"))
		case top.IsFiltering():
			center = hint(Keys.Escape, m.tr.T("help.clear_filter"))
		}
	}

	// Right side: "? help" hint
	right := hint(Keys.Help, m.tr.T("help.help"))

	// Layout: left + centered hints + right
	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	totalContent := leftWidth + centerWidth + rightWidth
	if totalContent >= m.Width {
		// Not enough space - just left + right
		left = styles.Truncate(left, max(m.Width-rightWidth-1, 0))
		gap := max(m.Width-lipgloss.Width(left)-rightWidth, 0)
		return left + strings.Repeat(" ", gap) + right
	}

	// Center the hints in available space
	available := m.Width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad

	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}

// hint renders "key description" for a binding
func hint(b key.Binding, desc string) string {
	return styles.HelpKeyStyle.Render(b.Help().Key) + styles.HelpDescStyle.Render(" "+desc)
}

// helpEntry is one row of the help screen
type helpEntry struct {
	binding key.Binding
	descKey string
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	sections := []struct {
		titleKey string
		entries  []helpEntry
	}{
		{"help.section_browse", []helpEntry{
			{Keys.Down, "help.navigate"},
			{Keys.Right, "help.open"},
			{Keys.Back, "help.back"},
			{Keys.Filter, "help.filter"},
			{Keys.Search, "help.search"},
			{Keys.Retry, "help.retry"},
			{Keys.LoadMore, "help.load_more"},
			{Keys.Refresh, "help.refresh"},
		}},
		{"help.section_item", []helpEntry{
			{Keys.ToggleInspector, "help.inspect"},
			{Keys.InspectorDown, "help.scroll_details"},
			{Keys.OpenTrailer, "help.trailer"},
			{Keys.OpenTMDB, "help.tmdb"},
			{Keys.Export, "help.export"},
		}},
		{"help.section_app", []helpEntry{
			{Keys.Theme, "help.theme"},
			{Keys.ClearCache, "help.cache"},
			{Keys.Logout, "help.logout"},
			{Keys.Help, "help.help"},
			{Keys.Quit, "help.quit"},
		}},
	}

	const keyWidth = 8
	var b strings.Builder
	b.WriteString(styles.ModalTitleStyle.Render(m.tr.T("help.title")))
	b.WriteString("\n")
	for _, section := range sections {
		b.WriteString("\n")
		b.WriteString(styles.AccentStyle.Bold(true).Render(m.tr.T(section.titleKey)))
		b.WriteString("\n")
		for _, e := range section.entries {
			b.WriteString("  ")
			b.WriteString(styles.HelpKeyStyle.Render(styles.Pad(e.binding.Help().Key, keyWidth)))
			b.WriteString(styles.HelpDescStyle.Render(m.tr.T(e.descKey)))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render(m.tr.T("help.close")))

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(b.String()))
}

// renderLogoutConfirmation renders the logout confirmation modal
func (m Model) renderLogoutConfirmation() string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		styles.ModalTitleStyle.Render(m.tr.T("logout.title")),
		"",
		styles.SubtitleStyle.Render(m.tr.T("logout.body")),
		"",
		hint(Keys.Confirm, m.tr.T("logout.yes"))+"      "+hint(Keys.Deny, m.tr.T("logout.no")),
	)

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(content))
}
