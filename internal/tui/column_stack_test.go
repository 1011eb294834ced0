package tui

import (
	"io"
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/feed"
	"github.com/mmcdole/marquee/internal/i18n"
	"github.com/mmcdole/marquee/internal/scroll"
	"github.com/mmcdole/marquee/internal/tui/components"
)

func testColumn(title string) *components.FeedColumn {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	noop := func(feed.Job) tea.Cmd { return nil }
	return components.NewFeedColumn(components.ColumnTypeCatalog, title, scroll.DefaultConfig(), noop, i18n.New("en"), logger)
}

func TestColumnStackPushPop(t *testing.T) {
	cs := NewColumnStack()
	root := testColumn("root")
	cs.Reset(root)

	assert.Equal(t, 1, cs.Len())
	assert.True(t, root.IsFocused())
	assert.False(t, cs.CanGoBack())

	child := testColumn("child")
	cs.Push(child, 4)
	assert.Equal(t, child, cs.Top())
	assert.Equal(t, root, cs.Root())
	assert.False(t, root.IsFocused())
	assert.True(t, child.IsFocused())

	popped, cursor := cs.Pop()
	assert.Equal(t, child, popped)
	assert.Equal(t, 4, cursor)
	assert.True(t, root.IsFocused())

	// The root column stays
	popped, _ = cs.Pop()
	assert.Nil(t, popped)
	assert.Equal(t, 1, cs.Len())
}

func TestColumnStackTruncateKeepsRoot(t *testing.T) {
	cs := NewColumnStack()
	root := testColumn("root")
	cs.Reset(root)
	cs.Push(testColumn("a"), 0)
	cs.Push(testColumn("b"), 1)

	cs.Truncate()
	require.Equal(t, 1, cs.Len())
	assert.Equal(t, root, cs.Top())
	assert.Nil(t, cs.Get(1))
}

func TestTrailerURL(t *testing.T) {
	videos := []domain.Video{
		{Key: "clip", Site: "YouTube", Type: "Clip"},
		{Key: "fan", Site: "YouTube", Type: "Trailer"},
		{Key: "unknown", Site: "Dailymotion", Type: "Trailer", Official: true},
		{Key: "official", Site: "YouTube", Type: "Trailer", Official: true},
	}
	assert.Equal(t, "https://www.youtube.com/watch?v=official", trailerURL(videos))
	assert.Equal(t, "https://www.youtube.com/watch?v=fan", trailerURL(videos[:3]))
	assert.Equal(t, "https://www.youtube.com/watch?v=clip", trailerURL(videos[:1]))
	assert.Empty(t, trailerURL(nil))
}

func TestCalculateColumnLayout(t *testing.T) {
	m := Model{ColumnStack: NewColumnStack(), ShowInspector: true}
	m.ColumnStack.Reset(testColumn("root"))

	layout := m.calculateColumnLayout(200)
	assert.Equal(t, SidebarWidth, layout.sidebarWidth)
	assert.Equal(t, 200-SidebarWidth, layout.activeWidth+layout.inspectorWidth)
	assert.Zero(t, layout.parentWidth)

	m.ColumnStack.Push(testColumn("child"), 0)
	layout = m.calculateColumnLayout(200)
	assert.Positive(t, layout.parentWidth)
	assert.Positive(t, layout.inspectorWidth)
	assert.Equal(t, []int{0, 1}, m.visibleColumns(layout))

	m.ShowInspector = false
	m.ColumnStack.Push(testColumn("grandchild"), 0)
	layout = m.calculateColumnLayout(200)
	assert.Zero(t, layout.inspectorWidth)
	assert.Equal(t, []int{0, 1, 2}, m.visibleColumns(layout))
}
