package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/feed"
	"github.com/mmcdole/marquee/internal/service"
	"github.com/mmcdole/marquee/internal/tui/components"
)

// Timeouts for async operations
const (
	pageTimeout   = 30 * time.Second
	detailTimeout = 30 * time.Second
	exportTimeout = 10 * time.Minute

	// detailDebounce is how long the cursor must rest before details load
	detailDebounce = 250 * time.Millisecond
)

// Command factories for async operations

// RunJob returns the Runner every feed column uses: the job runs off the
// event loop and its result comes back as a PageLoadedMsg.
func RunJob(timeout time.Duration) components.Runner {
	return func(job feed.Job) tea.Cmd {
		if job == nil {
			return nil
		}
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			return PageLoadedMsg{Done: job(ctx)}
		}
	}
}

// DebounceDetailCmd fires a detailDebounceMsg after the debounce delay
func DebounceDetailCmd(seq int, ref domain.ItemRef) tea.Cmd {
	return tea.Tick(detailDebounce, func(time.Time) tea.Msg {
		return detailDebounceMsg{seq: seq, ref: ref}
	})
}

// LoadDetailCmd loads the inspector bundle for ref
func LoadDetailCmd(svc *service.DetailService, ref domain.ItemRef) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), detailTimeout)
		defer cancel()

		bundle, err := svc.Load(ctx, ref)
		return DetailLoadedMsg{Ref: ref, Bundle: bundle, Err: err}
	}
}

// ExportImagesCmd exports the images of ref into dir with streaming progress.
// Uses a continuation pattern to pump every progress message to the UI.
func ExportImagesCmd(svc *service.ImageService, ref domain.ItemRef, dir string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)

		// Buffered so downloads rarely drop progress while the UI redraws
		ch := make(chan exportEvent, 16)
		observer := NewChannelObserver(ch)

		go func() {
			defer cancel()
			result, err := svc.Export(ctx, ref, dir, observer.OnProgress)
			observer.Finish(result, err)
		}()

		return readExportProgress(ref, ch)
	}
}

// readExportProgress reads one event from the channel and turns it into a
// message, attaching the continuation while the export is still running
func readExportProgress(ref domain.ItemRef, ch <-chan exportEvent) tea.Msg {
	ev, ok := <-ch
	if !ok {
		return ExportDoneMsg{Result: domain.ExportResult{Ref: ref}, Err: errors.New("export cancelled")}
	}
	if ev.final {
		return ExportDoneMsg{Result: ev.result, Err: ev.err}
	}
	return ExportProgressMsg{
		Ref:   ref,
		Done:  ev.done,
		Total: ev.total,
		Next:  listenToExportCmd(ref, ch),
	}
}

// listenToExportCmd returns a command that reads the next export event
func listenToExportCmd(ref domain.ItemRef, ch <-chan exportEvent) tea.Cmd {
	return func() tea.Msg {
		return readExportProgress(ref, ch)
	}
}

// OpenURLCmd opens link in the browser
func OpenURLCmd(launcher *adapter.Launcher, link string) tea.Cmd {
	return func() tea.Msg {
		if err := launcher.Open(link); err != nil {
			return ErrMsg{Err: err, Context: "opening link"}
		}
		return OpenedMsg{URL: link}
	}
}

// ClearCacheCmd drops every cached page and detail bundle
func ClearCacheCmd(svc *service.SessionService) tea.Cmd {
	return func() tea.Msg {
		svc.ClearCache()
		return CacheClearedMsg{}
	}
}

// ClearHistoryCmd forgets every past search
func ClearHistoryCmd(svc *service.SearchService) tea.Cmd {
	return func() tea.Msg {
		return HistoryClearedMsg{Err: svc.ClearHistory()}
	}
}

// SaveThemeCmd persists the selected theme
func SaveThemeCmd(cfg *adapter.Config, theme string) tea.Cmd {
	if cfg == nil {
		return nil
	}
	cfg.UI.Theme = theme
	snapshot := *cfg
	return func() tea.Msg {
		return ThemeSavedMsg{Err: adapter.SaveConfig(&snapshot)}
	}
}

// LogoutCmd clears the credentials and cache, then signals completion
func LogoutCmd(svc *service.SessionService) tea.Cmd {
	return func() tea.Msg {
		return LogoutCompleteMsg{Error: svc.Logout()}
	}
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
