package tui

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/feed"
	"github.com/mmcdole/marquee/internal/i18n"
	"github.com/mmcdole/marquee/internal/scroll"
	"github.com/mmcdole/marquee/internal/service"
	"github.com/mmcdole/marquee/internal/tui/components"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateHelp
	StateConfirmLogout
)

// Deps holds everything the TUI needs from the outside
type Deps struct {
	Catalog  *service.CatalogService
	Search   *service.SearchService
	Detail   *service.DetailService
	Images   *service.ImageService
	Session  *service.SessionService
	Launcher *adapter.Launcher

	Translator *i18n.Translator
	Config     *adapter.Config
	Logger     *slog.Logger

	ExportDir string // Initial directory offered for image exports

	// ScrollUnavailable is set when the terminal cannot report its size.
	// Lists then load further pages only on request.
	ScrollUnavailable bool
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool

	// Services
	CatalogSvc *service.CatalogService
	SearchSvc  *service.SearchService
	DetailSvc  *service.DetailService
	ImageSvc   *service.ImageService
	SessionSvc *service.SessionService
	Launcher   *adapter.Launcher

	tr        *i18n.Translator
	cfg       *adapter.Config
	logger    *slog.Logger
	scrollCfg scroll.Config
	feedOpts  []feed.Option
	run       components.Runner

	// UI Components - sidebar plus Miller Columns
	Sidebar        components.Sidebar
	SidebarFocused bool
	ColumnStack    *ColumnStack          // Stack of navigable feed columns
	Inspector      components.Inspector  // Details for the selection in the top column
	SearchBar      components.SearchBar  // Search modal
	ExportPrompt   components.InputModal // Export directory prompt

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg     string
	StatusIsErr   bool
	SpinnerFrame  int
	ShowInspector bool

	// Browsing state
	Category   domain.CategoryID    // Category shown in the root column, empty for search
	LastSearch domain.SearchFilters // Prefills the search bar
	detailSeq  int                  // Bumped on every selection change to debounce detail loads

	// Export state
	Exporting   bool
	ExportDone  int
	ExportTotal int
	exportRef   domain.ItemRef
	exportName  string
	exportDir   string

	// LoggedOut is set when the user logged out; the caller prints a farewell
	LoggedOut bool
}

// NewModel creates a new application model
func NewModel(deps Deps) Model {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config
	if cfg == nil {
		cfg = adapter.DefaultConfig()
	}
	tr := deps.Translator
	if tr == nil {
		tr = i18n.New("")
	}

	m := Model{
		State:         StateBrowsing,
		CatalogSvc:    deps.Catalog,
		SearchSvc:     deps.Search,
		DetailSvc:     deps.Detail,
		ImageSvc:      deps.Images,
		SessionSvc:    deps.Session,
		Launcher:      deps.Launcher,
		tr:            tr,
		cfg:           cfg,
		logger:        logger,
		scrollCfg:     cfg.Scroll,
		run:           RunJob(pageTimeout),
		Sidebar:       components.NewSidebar(deps.Catalog.Categories(), tr),
		ColumnStack:   NewColumnStack(),
		Inspector:     components.NewInspector(tr),
		SearchBar:     components.NewSearchBar(tr),
		ExportPrompt:  components.NewInputModal(),
		ShowInspector: cfg.UI.ShowInspector,
		exportDir:     deps.ExportDir,
	}
	if deps.ScrollUnavailable {
		m.feedOpts = append(m.feedOpts, feed.WithObserver(scroll.Unavailable{}))
	}
	root := m.newColumn(components.ColumnTypeCatalog, "")
	if categories := deps.Catalog.Categories(); len(categories) > 0 {
		m.Category = categories[0].ID
		root.SetTitle(tr.T(categories[0].LabelKey))
	}
	m.ColumnStack.Reset(root)
	return m
}

// newColumn creates an idle feed column wired to the model's runner
func (m Model) newColumn(colType components.ColumnType, title string) *components.FeedColumn {
	return components.NewFeedColumn(colType, title, m.scrollCfg, m.run, m.tr, m.logger, m.feedOpts...)
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.Category != "" {
		cmds = append(cmds, m.ColumnStack.Root().Activate(string(m.Category), m.CatalogSvc.Fetcher(m.Category)))
	}
	cmds = append(cmds, TickCmd(100*time.Millisecond))
	return tea.Batch(cmds...)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		return m, m.updateLayout()

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		m.ColumnStack.UpdateSpinnerFrame(m.SpinnerFrame)
		return m, TickCmd(100 * time.Millisecond)

	case PageLoadedMsg:
		// Route to every column showing the key; each drops stale generations
		for _, col := range m.ColumnStack.Matching(msg.Done.Key) {
			cmds = append(cmds, col.Complete(msg.Done))
		}
		cmds = append(cmds, m.updateInspector())
		return m, tea.Batch(cmds...)

	case detailDebounceMsg:
		if msg.seq != m.detailSeq {
			return m, nil
		}
		if ref, ok := m.Inspector.Ref(); !ok || ref != msg.ref {
			return m, nil
		}
		m.Inspector.SetLoading(msg.ref)
		return m, LoadDetailCmd(m.DetailSvc, msg.ref)

	case DetailLoadedMsg:
		if msg.Err != nil {
			m.logger.Warn("failed to load details", "ref", msg.Ref.String(), "error", msg.Err)
			m.Inspector.SetError(msg.Ref, msg.Err)
			return m, nil
		}
		m.Inspector.SetBundle(msg.Bundle)
		return m, nil

	case ExportProgressMsg:
		m.ExportDone = msg.Done
		m.ExportTotal = msg.Total
		return m, msg.Next

	case ExportDoneMsg:
		m.Exporting = false
		m.StatusIsErr = false
		res := msg.Result
		switch {
		case msg.Err != nil:
			m.logger.Error("image export failed", "ref", m.exportRef.String(), "error", msg.Err)
			m.StatusMsg = m.tr.T("status.export_failed", components.ErrorText(m.tr, msg.Err, ""))
			m.StatusIsErr = true
		case res.Skipped:
			m.StatusMsg = m.tr.T("status.export_none", m.exportName)
		case res.Failed > 0:
			m.StatusMsg = m.tr.T("status.export_partial", res.Images, res.Path, res.Failed)
		default:
			m.StatusMsg = m.tr.T("status.exported", res.Images, res.Path)
		}
		return m, ClearStatusCmd(6 * time.Second)

	case OpenedMsg:
		m.StatusMsg = m.tr.T("status.opened", msg.URL)
		m.StatusIsErr = false
		return m, ClearStatusCmd(3 * time.Second)

	case CacheClearedMsg:
		m.StatusMsg = m.tr.T("status.cache_cleared")
		m.StatusIsErr = false
		return m, ClearStatusCmd(3 * time.Second)

	case HistoryClearedMsg:
		if msg.Err != nil {
			return m, func() tea.Msg { return ErrMsg{Err: msg.Err, Context: "clearing search history"} }
		}
		m.StatusMsg = m.tr.T("status.history_cleared")
		m.StatusIsErr = false
		return m, ClearStatusCmd(3 * time.Second)

	case ThemeSavedMsg:
		if msg.Err != nil {
			m.logger.Warn("failed to save theme", "error", msg.Err)
		}
		return m, nil

	case LogoutCompleteMsg:
		if msg.Error != nil {
			m.StatusMsg = m.tr.T("status.logout_failed", msg.Error.Error())
			m.StatusIsErr = true
			m.State = StateBrowsing
			return m, ClearStatusCmd(5 * time.Second)
		}
		// Logout successful - quit the application
		m.LoggedOut = true
		return m, tea.Quit

	case ErrMsg:
		m.logger.Error("command failed", "context", msg.Context, "error", msg.Err)
		m.StatusMsg = msg.Error()
		m.StatusIsErr = true
		return m, ClearStatusCmd(5 * time.Second)

	case StatusMsg:
		m.StatusMsg = msg.Message
		m.StatusIsErr = msg.IsError
		return m, ClearStatusCmd(3 * time.Second)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	// Cursor blink and other component messages
	if m.SearchBar.IsVisible() {
		var cmd tea.Cmd
		m.SearchBar, cmd, _ = m.SearchBar.Update(msg)
		return m, cmd
	}
	if m.ExportPrompt.IsVisible() {
		var cmd tea.Cmd
		m.ExportPrompt, cmd, _ = m.ExportPrompt.Update(msg)
		return m, cmd
	}

	return m, nil
}

// setStatus shows a transient message in the footer
func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.StatusMsg = text
	m.StatusIsErr = isErr
	delay := 3 * time.Second
	if isErr {
		delay = 5 * time.Second
	}
	return ClearStatusCmd(delay)
}
