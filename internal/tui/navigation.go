package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/components"
)

// Feed keys of drill-down columns. Root columns use the category ID or
// "search:" plus the filters' key.
const (
	keyPrefixSearch          = "search:"
	keyPrefixRecommendations = "recommendations:"
	keyPrefixKnownFor        = "known_for:"
)

// activateCategory shows category in the root column, dropping any
// drill-down columns. Selecting the category already shown keeps its pages.
func (m *Model) activateCategory(category domain.Category) tea.Cmd {
	root := m.ColumnStack.Root()
	m.ColumnStack.Truncate()
	m.Category = category.ID
	root.SetColumnType(components.ColumnTypeCatalog)
	root.SetTitle(m.tr.T(category.LabelKey))
	m.focusColumns()

	cmd := root.Activate(string(category.ID), m.CatalogSvc.Fetcher(category.ID))
	return tea.Batch(cmd, m.updateLayout(), m.updateInspector())
}

// submitSearch records the query and shows its results in the root column
func (m *Model) submitSearch(filters domain.SearchFilters) tea.Cmd {
	m.SearchSvc.Record(filters.Query)
	m.LastSearch = filters

	root := m.ColumnStack.Root()
	m.ColumnStack.Truncate()
	m.Category = ""
	root.SetColumnType(components.ColumnTypeSearch)
	root.SetTitle(m.tr.T("search.results", filters.Query))
	m.focusColumns()

	cmd := root.Activate(keyPrefixSearch+filters.Key(), m.SearchSvc.Fetcher(filters))
	return tea.Batch(cmd, m.updateLayout(), m.updateInspector())
}

// drillIn pushes the related list of the selected item: recommendations for
// a title, credits for a person
func (m *Model) drillIn() tea.Cmd {
	top := m.ColumnStack.Top()
	if top == nil {
		return nil
	}
	item := top.SelectedItem()
	if item == nil || !item.CanDrillDown() {
		return nil
	}
	ref := item.GetRef()

	var col *components.FeedColumn
	var cmd tea.Cmd
	if ref.Kind == domain.KindPerson {
		col = m.newColumn(components.ColumnTypeKnownFor, m.tr.T("column.known_for", item.GetTitle()))
		cmd = col.Activate(keyPrefixKnownFor+ref.String(), m.DetailSvc.KnownForFetcher(ref.ID))
	} else {
		col = m.newColumn(components.ColumnTypeRecommendations, m.tr.T("column.recommendations", item.GetTitle()))
		cmd = col.Activate(keyPrefixRecommendations+ref.String(), m.DetailSvc.RecommendationsFetcher(ref))
	}
	col.SetSource(ref)
	m.ColumnStack.Push(col, top.SelectedIndex())

	return tea.Batch(cmd, m.updateLayout(), m.updateInspector())
}

// handleBack pops the top column, or moves focus to the sidebar at the root
func (m *Model) handleBack() tea.Cmd {
	if !m.ColumnStack.CanGoBack() {
		m.focusSidebar()
		return nil
	}

	_, savedCursor := m.ColumnStack.Pop()

	var cmds []tea.Cmd
	if top := m.ColumnStack.Top(); top != nil {
		cmds = append(cmds, top.SetSelectedIndex(savedCursor))
	}
	cmds = append(cmds, m.updateLayout(), m.updateInspector())
	return tea.Batch(cmds...)
}

// selectSidebarEntry acts on the sidebar entry under the cursor
func (m *Model) selectSidebarEntry() tea.Cmd {
	entry, ok := m.Sidebar.Selected()
	if !ok {
		return nil
	}
	if entry.IsSearch() {
		return m.openSearch()
	}
	return m.activateCategory(*entry.Category)
}

// openSearch shows the search bar prefilled with the last search
func (m *Model) openSearch() tea.Cmd {
	m.SearchBar.Show(m.LastSearch)
	m.SearchBar.SetSize(m.Width, m.Height)
	m.SearchBar.SetSuggestions(m.SearchSvc.Suggestions(m.LastSearch.Query))
	m.SearchBar.QueryChanged()
	return m.SearchBar.Init()
}

func (m *Model) focusSidebar() {
	m.SidebarFocused = true
	m.Sidebar.SetFocused(true)
	m.ColumnStack.SetFocused(false)
}

func (m *Model) focusColumns() {
	m.SidebarFocused = false
	m.Sidebar.SetFocused(false)
	m.ColumnStack.SetFocused(true)
}

// updateInspector points the inspector at the selection of the top column.
// Details load once the cursor has rested on an item for a moment.
func (m *Model) updateInspector() tea.Cmd {
	var item domain.ListItem
	if top := m.ColumnStack.Top(); top != nil {
		item = top.SelectedItem()
	}

	prev, hadPrev := m.Inspector.Ref()
	m.Inspector.SetItem(item)
	if item == nil || !m.ShowInspector {
		return nil
	}

	ref := item.GetRef()
	if hadPrev && prev == ref && (m.Inspector.Bundle() != nil || m.Inspector.Loading() || m.Inspector.Failed()) {
		return nil
	}
	m.detailSeq++
	return DebounceDetailCmd(m.detailSeq, ref)
}

// reloadDetails drops the cached bundle of the selected item and fetches it again
func (m *Model) reloadDetails() tea.Cmd {
	ref, ok := m.Inspector.Ref()
	if !ok {
		return nil
	}
	m.DetailSvc.Invalidate(ref)
	m.Inspector.SetItem(nil)
	return m.updateInspector()
}
