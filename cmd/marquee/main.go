package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/adapter/source"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/i18n"
	"github.com/mmcdole/marquee/internal/service"
	"github.com/mmcdole/marquee/internal/store"
	"github.com/mmcdole/marquee/internal/tui"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Version is set at build time via -ldflags
var Version = "dev"

// clearProgressLine clears the export progress line from the terminal
const clearProgressLine = "\r                                        \r"

// flags holds the command line options
type flags struct {
	showVersion  bool
	exportImages string // kind:id, exports without starting the TUI
	out          string
	logout       bool
	clearCache   bool
}

func main() {
	var f flags
	flag.BoolVar(&f.showVersion, "v", false, "print version")
	flag.BoolVar(&f.showVersion, "version", false, "print version")
	flag.StringVar(&f.exportImages, "export-images", "", "export the images of `kind:id` (e.g. movie:603) and exit")
	flag.StringVar(&f.out, "out", ".", "directory for -export-images")
	flag.BoolVar(&f.logout, "logout", false, "remove the stored API key and cache, then exit")
	flag.BoolVar(&f.clearCache, "clear-cache", false, "remove cached pages and details, then exit")
	flag.Parse()

	if f.showVersion {
		fmt.Printf("marquee %s\n", Version)
		return
	}

	if err := run(f); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(f flags) error {
	// Load configuration
	cfg, err := adapter.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, closer, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	} else {
		defer closer.Close()
	}
	slog.SetDefault(logger)

	logger.Info("starting marquee", "version", Version)

	lang := cfg.UI.Language
	if lang == "" {
		lang = os.Getenv("LANG")
	}
	tr := i18n.New(lang)

	cache, err := store.NewCacheStore(cfg.Cache.Dir)
	if err != nil {
		// A locked or corrupt cache file should not keep the app from starting
		logger.Warn("falling back to memory cache", "dir", cfg.Cache.Dir, "error", err)
		cache, _ = store.NewCacheStore("")
	}
	defer cache.Close()

	session := service.NewSessionService(cache)

	switch {
	case f.logout:
		if err := session.Logout(); err != nil {
			return fmt.Errorf("logout failed: %w", err)
		}
		fmt.Println("✓ API key and cache removed")
		return nil
	case f.clearCache:
		session.ClearCache()
		fmt.Println("✓ " + tr.T("status.cache_cleared"))
		return nil
	}

	// First run: ask for an API key
	if !cfg.IsConfigured() {
		if err := runSetupFlow(cfg, logger); err != nil {
			return err
		}
	}

	client, err := source.NewClientFromConfig(cfg, tr.TMDBLanguage(), logger)
	if err != nil {
		return fmt.Errorf("failed to create TMDB client: %w", err)
	}

	ttl := time.Duration(cfg.Cache.TTLMinutes) * time.Minute
	lng := tr.TMDBLanguage()
	catalogSvc := service.NewCatalogService(client, cache, lng, ttl, logger)
	searchSvc := service.NewSearchService(client, cache, lng, ttl, logger)
	detailSvc := service.NewDetailService(client, cache, lng, ttl, logger)
	imageSvc := service.NewImageService(client, client, 0, logger)

	if f.exportImages != "" {
		return runExport(imageSvc, f.exportImages, f.out)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("marquee needs an interactive terminal; use -export-images for scripted use")
	}

	_, _, sizeErr := term.GetSize(int(os.Stdout.Fd()))
	if sizeErr != nil {
		logger.Warn("terminal size unavailable, pages load on request", "error", sizeErr)
	}

	if !styles.Apply(cfg.UI.Theme) {
		logger.Warn("unknown theme, using default", "theme", cfg.UI.Theme)
	}

	model := tui.NewModel(tui.Deps{
		Catalog:    catalogSvc,
		Search:     searchSvc,
		Detail:     detailSvc,
		Images:     imageSvc,
		Session:    session,
		Launcher:   adapter.NewLauncher(cfg.UI.Browser, logger),
		Translator: tr,
		Config:     cfg,
		Logger:     logger,
		ExportDir:  f.out,

		ScrollUnavailable: sizeErr != nil,
	})

	// Run the TUI
	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI")

	final, err := p.Run()
	if err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	if m, ok := final.(tui.Model); ok && m.LoggedOut {
		fmt.Println("Logged out. Run marquee again to enter a new API key.")
	}

	logger.Info("shutting down")
	return nil
}

// runSetupFlow asks for a TMDB API key, checks it and saves it
func runSetupFlow(cfg *adapter.Config, logger *slog.Logger) error {
	fmt.Println()
	fmt.Println("Welcome to Marquee!")
	fmt.Println()
	fmt.Println("Marquee needs a TMDB API key (https://www.themoviedb.org/settings/api).")

	for {
		key, err := readAPIKey()
		if err != nil {
			return fmt.Errorf("failed to read API key: %w", err)
		}
		if key == "" {
			fmt.Println("API key cannot be empty. Please try again.")
			continue
		}

		fmt.Println("Checking key...")
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		err = source.VerifyAPIKey(ctx, &cfg.TMDB, key, logger)
		cancel()

		switch {
		case errors.Is(err, domain.ErrUnauthorized):
			fmt.Println("✗ TMDB rejected the key. Please try again.")
			fmt.Println()
			continue
		case err != nil:
			return fmt.Errorf("could not verify API key: %w", err)
		}

		if err := adapter.SaveAPIKey(key); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		cfg.TMDB.APIKey = key

		fmt.Println("✓ Configuration saved!")
		fmt.Println()
		return nil
	}
}

// readAPIKey reads the key without echo when stdin is a terminal
func readAPIKey() (string, error) {
	fmt.Print("API key: ")
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Println() // Add newline after hidden input
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// runExport exports the images of one item from the command line
func runExport(svc *service.ImageService, refText, dir string) error {
	ref, err := domain.ParseItemRef(refText)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := svc.Export(ctx, ref, dir, func(done, total int) {
		fmt.Printf("\rExporting images %d/%d", done, total)
	})
	fmt.Print(clearProgressLine)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	switch {
	case res.Skipped:
		fmt.Printf("No images for %s\n", ref)
	case res.Failed > 0:
		fmt.Printf("✓ Saved %d images to %s (%d failed)\n", res.Images, res.Path, res.Failed)
	default:
		fmt.Printf("✓ Saved %d images to %s\n", res.Images, res.Path)
	}
	return nil
}
