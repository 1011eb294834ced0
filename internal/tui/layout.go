package tui

import tea "github.com/charmbracelet/bubbletea"

// Layout proportions for Miller Columns
const (
	// 3-Column Smart Ratios (Inspector visible)
	ParentColumnPercent3   = 25 // Parent context
	InspectorColumnPercent = 35 // Inspector (details)

	// 3-Column Focus Mode (Inspector hidden) - show more navigation context
	GrandparentColumnPercent = 25 // Grandparent context
	ParentColumnPercent2     = 30 // Parent context

	// Root level (single column + inspector)
	RootColumnPercent = 50

	MinColumnWidth = 15

	// Sidebar is a fixed-width panel on the left
	SidebarWidth    = 26
	MinSidebarWidth = 16

	// Vertical layout: single footer line
	ChromeHeight = 1
)

// columnLayout holds calculated column widths for the View
type columnLayout struct {
	sidebarWidth     int
	grandparentWidth int // 0 if not shown
	parentWidth      int // 0 if not shown
	activeWidth      int
	inspectorWidth   int // 0 if not shown
}

// calculateColumnLayout computes column widths based on stack depth and inspector visibility
func (m Model) calculateColumnLayout(totalWidth int) columnLayout {
	stackLen := m.ColumnStack.Len()
	layout := columnLayout{
		sidebarWidth: max(min(SidebarWidth, totalWidth/5), MinSidebarWidth),
	}
	availableWidth := totalWidth - layout.sidebarWidth

	// Helper to apply minimum width
	applyMin := func(width int) int {
		return max(width, MinColumnWidth)
	}

	switch stackLen {
	case 0:
		layout.activeWidth = availableWidth

	case 1:
		if m.ShowInspector {
			// [Root | Inspector]
			layout.activeWidth = applyMin(availableWidth * RootColumnPercent / 100)
			layout.inspectorWidth = availableWidth - layout.activeWidth
		} else {
			layout.activeWidth = availableWidth
		}

	case 2:
		if m.ShowInspector {
			// [Parent | Active | Inspector]
			layout.parentWidth = applyMin(availableWidth * ParentColumnPercent3 / 100)
			layout.inspectorWidth = applyMin(availableWidth * InspectorColumnPercent / 100)
			layout.activeWidth = applyMin(availableWidth - layout.parentWidth - layout.inspectorWidth)
		} else {
			// [Parent | Active]
			layout.parentWidth = applyMin(availableWidth * ParentColumnPercent2 / 100)
			layout.activeWidth = applyMin(availableWidth - layout.parentWidth)
		}

	default:
		if m.ShowInspector {
			// [Parent | Active | Inspector]
			layout.parentWidth = applyMin(availableWidth * ParentColumnPercent3 / 100)
			layout.inspectorWidth = applyMin(availableWidth * InspectorColumnPercent / 100)
			layout.activeWidth = applyMin(availableWidth - layout.parentWidth - layout.inspectorWidth)
		} else {
			// [Grandparent | Parent | Active]
			layout.grandparentWidth = applyMin(availableWidth * GrandparentColumnPercent / 100)
			layout.parentWidth = applyMin(availableWidth * ParentColumnPercent2 / 100)
			layout.activeWidth = applyMin(availableWidth - layout.grandparentWidth - layout.parentWidth)
		}
	}

	return layout
}

// updateLayout updates component sizes based on window size. Resizing a
// column reports its new viewport, which may request the next page.
func (m *Model) updateLayout() tea.Cmd {
	if m.Width == 0 || m.Height == 0 {
		return nil
	}

	contentHeight := m.Height - ChromeHeight
	m.SearchBar.SetSize(m.Width, m.Height)

	layout := m.calculateColumnLayout(m.Width)
	m.Sidebar.SetSize(layout.sidebarWidth, contentHeight)
	if m.ShowInspector {
		m.Inspector.SetSize(layout.inspectorWidth, contentHeight)
	}

	stackLen := m.ColumnStack.Len()
	if stackLen == 0 {
		return nil
	}
	topIdx := stackLen - 1

	var cmds []tea.Cmd
	cmds = append(cmds, m.ColumnStack.Get(topIdx).SetSize(layout.activeWidth, contentHeight))
	if layout.parentWidth > 0 {
		cmds = append(cmds, m.ColumnStack.Get(topIdx-1).SetSize(layout.parentWidth, contentHeight))
	}
	if layout.grandparentWidth > 0 {
		cmds = append(cmds, m.ColumnStack.Get(topIdx-2).SetSize(layout.grandparentWidth, contentHeight))
	}
	return tea.Batch(cmds...)
}

// visibleColumns returns the columns drawn left to right
func (m Model) visibleColumns(layout columnLayout) []int {
	topIdx := m.ColumnStack.Len() - 1
	if topIdx < 0 {
		return nil
	}
	idx := []int{topIdx}
	if layout.parentWidth > 0 {
		idx = append([]int{topIdx - 1}, idx...)
	}
	if layout.grandparentWidth > 0 {
		idx = append([]int{topIdx - 2}, idx...)
	}
	return idx
}
