package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/components"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// inspectorScrollLines is how far J/K move the inspector body
const inspectorScrollLines = 3

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle state-specific keys
	switch m.State {
	case StateHelp:
		// Any key closes help
		m.State = StateBrowsing
		return m, nil

	case StateConfirmLogout:
		switch {
		case key.Matches(msg, Keys.Confirm):
			return m, LogoutCmd(m.SessionSvc)
		case key.Matches(msg, Keys.Deny):
			m.State = StateBrowsing
		}
		return m, nil
	}

	// Route to active modal if any
	if handled, newModel, cmd := m.routeToModal(msg); handled {
		return newModel, cmd
	}

	top := m.ColumnStack.Top()

	// A focused filter input takes every key
	if !m.SidebarFocused && top != nil && top.IsFilterTyping() {
		_, cmd := top.Update(msg)
		return m, tea.Batch(cmd, m.updateInspector())
	}

	// Global keys
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.Search):
		return m, m.openSearch()

	case key.Matches(msg, Keys.ToggleInspector):
		m.ShowInspector = !m.ShowInspector
		return m, tea.Batch(m.updateLayout(), m.updateInspector())

	case key.Matches(msg, Keys.Theme):
		name := styles.Next()
		m.rebuildSidebar()
		cmd := m.setStatus(m.tr.T("status.theme", name), false)
		return m, tea.Batch(cmd, m.updateLayout(), SaveThemeCmd(m.cfg, name))

	case key.Matches(msg, Keys.ClearCache):
		return m, ClearCacheCmd(m.SessionSvc)

	case key.Matches(msg, Keys.Logout):
		m.State = StateConfirmLogout
		return m, nil

	case key.Matches(msg, Keys.InspectorDown):
		m.Inspector.ScrollDown(inspectorScrollLines)
		return m, nil

	case key.Matches(msg, Keys.InspectorUp):
		m.Inspector.ScrollUp(inspectorScrollLines)
		return m, nil
	}

	if m.SidebarFocused {
		return m.handleSidebarKey(msg)
	}
	if top == nil {
		return m, nil
	}

	// Column keys
	switch {
	case key.Matches(msg, Keys.Escape):
		if top.IsFiltering() {
			return m, tea.Batch(top.ClearFilter(), m.updateInspector())
		}
		return m, nil

	case key.Matches(msg, Keys.Filter):
		if top.IsFiltering() {
			// Refocus the filter input
			_, cmd := top.Update(msg)
			return m, cmd
		}
		return m, top.ToggleFilter()

	case key.Matches(msg, Keys.Back):
		return m, m.handleBack()

	case key.Matches(msg, Keys.Right), key.Matches(msg, Keys.Enter):
		return m, m.drillIn()

	case key.Matches(msg, Keys.Retry):
		if top.State().CanRetry {
			return m, top.Retry()
		}
		if m.Inspector.Failed() {
			return m, m.reloadDetails()
		}
		return m, nil

	case key.Matches(msg, Keys.LoadMore):
		return m, top.LoadMore()

	case key.Matches(msg, Keys.Refresh):
		return m, m.refresh()

	case key.Matches(msg, Keys.Export):
		return m, m.promptExport()

	case key.Matches(msg, Keys.OpenTrailer):
		return m, m.openTrailer()

	case key.Matches(msg, Keys.OpenTMDB):
		ref, ok := m.Inspector.Ref()
		if !ok {
			return m, nil
		}
		return m, OpenURLCmd(m.Launcher, adapter.TMDBPage(string(ref.Kind), ref.ID))
	}

	// Let the focused column handle remaining keys (j/k/g/G navigation)
	_, cmd := top.Update(msg)
	return m, tea.Batch(cmd, m.updateInspector())
}

// handleSidebarKey handles keys while the sidebar has focus
func (m Model) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Right), key.Matches(msg, Keys.Enter):
		return m, m.selectSidebarEntry()
	case key.Matches(msg, Keys.Escape):
		m.focusColumns()
		return m, nil
	}

	var cmd tea.Cmd
	m.Sidebar, cmd = m.Sidebar.Update(msg)
	return m, cmd
}

// routeToModal routes key input to active modals
// Returns (handled, model, cmd) where handled is true if a modal consumed the input
func (m Model) routeToModal(msg tea.KeyMsg) (bool, Model, tea.Cmd) {
	if m.SearchBar.IsVisible() {
		var (
			cmd    tea.Cmd
			action components.SearchAction
		)
		m.SearchBar, cmd, action = m.SearchBar.Update(msg)

		switch action {
		case components.SearchSubmit:
			filters := m.SearchBar.Filters()
			m.SearchBar.Hide()
			return true, m, tea.Batch(cmd, m.submitSearch(filters))
		case components.SearchClearHistory:
			return true, m, tea.Batch(cmd, ClearHistoryCmd(m.SearchSvc))
		}

		if m.SearchBar.IsVisible() && m.SearchBar.QueryChanged() {
			m.SearchBar.SetSuggestions(m.SearchSvc.Suggestions(m.SearchBar.Query()))
		}
		return true, m, cmd
	}

	if m.ExportPrompt.IsVisible() {
		var (
			cmd       tea.Cmd
			submitted bool
		)
		m.ExportPrompt, cmd, submitted = m.ExportPrompt.Update(msg)
		if submitted {
			return true, m, tea.Batch(cmd, m.startExport(m.ExportPrompt.Value()))
		}
		return true, m, cmd
	}

	return false, m, nil
}

// refresh drops the cached pages of the top column and loads it again
func (m *Model) refresh() tea.Cmd {
	top := m.ColumnStack.Top()
	if top == nil {
		return nil
	}
	if top == m.ColumnStack.Root() && top.ColumnType() == components.ColumnTypeCatalog && m.Category != "" {
		m.CatalogSvc.Refresh(m.Category)
	}
	status := m.setStatus(m.tr.T("status.refreshed", top.Title()), false)
	return tea.Batch(status, top.Reload(), m.reloadDetails())
}

// promptExport asks where to save the images of the selected item
func (m *Model) promptExport() tea.Cmd {
	if m.Exporting {
		return m.setStatus(m.tr.T("status.export_busy"), true)
	}
	ref, ok := m.Inspector.Ref()
	if !ok {
		return nil
	}
	top := m.ColumnStack.Top()
	name := ref.String()
	if item := top.SelectedItem(); item != nil {
		name = item.GetTitle()
	}

	m.exportRef = ref
	m.exportName = name
	m.ExportPrompt.Show(m.tr.T("export.title", name), m.tr.T("export.hint"), m.exportDir)
	return nil
}

// startExport runs the export into dir
func (m *Model) startExport(dir string) tea.Cmd {
	m.exportDir = dir
	m.Exporting = true
	m.ExportDone = 0
	m.ExportTotal = 0
	m.logger.Info("exporting images", "ref", m.exportRef.String(), "dir", dir)
	return ExportImagesCmd(m.ImageSvc, m.exportRef, dir)
}

// openTrailer opens the best video of the selected item
func (m *Model) openTrailer() tea.Cmd {
	bundle := m.Inspector.Bundle()
	if bundle == nil {
		return m.setStatus(m.tr.T("status.no_trailer"), false)
	}
	if link := trailerURL(bundle.Videos); link != "" {
		return OpenURLCmd(m.Launcher, link)
	}
	return m.setStatus(m.tr.T("status.no_trailer"), false)
}

// trailerURL prefers official trailers, then any trailer, then any playable video
func trailerURL(videos []domain.Video) string {
	var trailer, fallback string
	for _, v := range videos {
		link := v.URL()
		if link == "" {
			continue
		}
		if v.Type == "Trailer" {
			if v.Official {
				return link
			}
			if trailer == "" {
				trailer = link
			}
		}
		if fallback == "" {
			fallback = link
		}
	}
	if trailer != "" {
		return trailer
	}
	return fallback
}

// rebuildSidebar recreates the sidebar so its list delegate picks up the
// current theme
func (m *Model) rebuildSidebar() {
	idx := m.Sidebar.SelectedIndex()
	m.Sidebar = components.NewSidebar(m.CatalogSvc.Categories(), m.tr)
	m.Sidebar.SetSelectedIndex(idx)
	m.Sidebar.SetFocused(m.SidebarFocused)
}
