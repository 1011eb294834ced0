package tui

import (
	"github.com/mmcdole/marquee/internal/tui/components"
)

// ColumnStack manages the stack of navigable feed columns in Miller Columns layout.
// The stack contains feed columns only; the sidebar and the Inspector are
// separate panels.
//
// Visual representation:
//   Category:  [Sidebar | Popular Movies | Inspector]
//   Drill:     [Sidebar | Popular Movies | More like The Matrix | Inspector]
//   Person:    [Sidebar | More like The Matrix | Keanu Reeves | Inspector]
//
// The top of the stack is focused unless the sidebar is.
type ColumnStack struct {
	columns     []*components.FeedColumn
	cursorStack []int // Saved cursor positions for back navigation
}

// NewColumnStack creates a new empty column stack
func NewColumnStack() *ColumnStack {
	return &ColumnStack{
		columns:     make([]*components.FeedColumn, 0),
		cursorStack: make([]int, 0),
	}
}

// Len returns the number of columns in the stack
func (cs *ColumnStack) Len() int {
	return len(cs.columns)
}

// Get returns the column at the given index (0 = bottom/oldest)
func (cs *ColumnStack) Get(idx int) *components.FeedColumn {
	if idx < 0 || idx >= len(cs.columns) {
		return nil
	}
	return cs.columns[idx]
}

// Top returns the topmost (current/focused) column
func (cs *ColumnStack) Top() *components.FeedColumn {
	if len(cs.columns) == 0 {
		return nil
	}
	return cs.columns[len(cs.columns)-1]
}

// Root returns the bottom column, which shows the selected category or search
func (cs *ColumnStack) Root() *components.FeedColumn {
	return cs.Get(0)
}

// Push adds a new column to the stack, saving the current cursor position
func (cs *ColumnStack) Push(col *components.FeedColumn, saveCursor int) {
	cs.cursorStack = append(cs.cursorStack, saveCursor)

	if top := cs.Top(); top != nil {
		top.SetFocused(false)
	}

	col.SetFocused(true)
	cs.columns = append(cs.columns, col)
}

// Pop removes the top column, closes its feed and returns the saved cursor
// position. The root column is never popped.
func (cs *ColumnStack) Pop() (*components.FeedColumn, int) {
	if len(cs.columns) <= 1 {
		return nil, 0
	}

	popped := cs.columns[len(cs.columns)-1]
	popped.SetFocused(false)
	popped.Close()
	cs.columns = cs.columns[:len(cs.columns)-1]

	savedCursor := 0
	if len(cs.cursorStack) > 0 {
		savedCursor = cs.cursorStack[len(cs.cursorStack)-1]
		cs.cursorStack = cs.cursorStack[:len(cs.cursorStack)-1]
	}

	if top := cs.Top(); top != nil {
		top.SetFocused(true)
	}

	return popped, savedCursor
}

// Truncate pops every column above the root
func (cs *ColumnStack) Truncate() {
	for cs.CanGoBack() {
		cs.Pop()
	}
}

// Reset replaces the whole stack with col
func (cs *ColumnStack) Reset(col *components.FeedColumn) {
	for _, c := range cs.columns {
		c.SetFocused(false)
		c.Close()
	}
	col.SetFocused(true)
	cs.columns = []*components.FeedColumn{col}
	cs.cursorStack = nil
}

// Matching returns every column showing key. Keys can repeat when the same
// item is opened twice along one path.
func (cs *ColumnStack) Matching(key string) []*components.FeedColumn {
	var out []*components.FeedColumn
	for _, col := range cs.columns {
		if col.Key() == key {
			out = append(out, col)
		}
	}
	return out
}

// CanGoBack returns true if we can navigate back (not at root)
func (cs *ColumnStack) CanGoBack() bool {
	return len(cs.columns) > 1
}

// SetFocused focuses or unfocuses the top column
func (cs *ColumnStack) SetFocused(focused bool) {
	if top := cs.Top(); top != nil {
		top.SetFocused(focused)
	}
}

// UpdateSpinnerFrame updates the spinner frame for all columns
func (cs *ColumnStack) UpdateSpinnerFrame(frame int) {
	for _, col := range cs.columns {
		col.SetSpinnerFrame(frame)
	}
}

// Loading reports whether any column has a page in flight
func (cs *ColumnStack) Loading() bool {
	for _, col := range cs.columns {
		if col.State().Loading {
			return true
		}
	}
	return false
}
