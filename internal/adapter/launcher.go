package adapter

import (
	"fmt"
	"log/slog"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
)

// Launcher opens links (trailers, TMDB and IMDb pages) in a browser
type Launcher struct {
	command string   // configured browser command, empty for system default
	args    []string // additional arguments placed before the URL
	logger  *slog.Logger

	start func(name string, args ...string) error
}

// NewLauncher creates a Launcher. command may contain arguments, e.g.
// "firefox --new-tab".
func NewLauncher(command string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	fields := strings.Fields(command)
	l := &Launcher{logger: logger, start: startCommand}
	if len(fields) > 0 {
		l.command = fields[0]
		l.args = fields[1:]
	}
	return l
}

// startCommand starts name without waiting for it to exit
func startCommand(name string, args ...string) error {
	if _, err := exec.LookPath(name); err != nil {
		return err
	}
	return exec.Command(name, args...).Start()
}

// Open launches link in the configured browser or the system default
func (l *Launcher) Open(link string) error {
	u, err := url.Parse(link)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("refusing to open %q: not a web link", link)
	}

	name, args := l.commandFor(link)
	l.logger.Info("opening link", "command", name, "url", link)
	if err := l.start(name, args...); err != nil {
		return fmt.Errorf("failed to open %s: %w", link, err)
	}
	return nil
}

// commandFor returns the command and arguments that open link
func (l *Launcher) commandFor(link string) (string, []string) {
	// Tier 1: User configured a specific browser
	if l.command != "" {
		args := append(append([]string{}, l.args...), link)
		return l.command, args
	}

	// Tier 2: System default handler (open/xdg-open/start)
	switch runtime.GOOS {
	case "darwin":
		return "open", []string{link}
	case "windows":
		return "cmd", []string{"/c", "start", "", link}
	default:
		// Linux and other Unix-like systems
		return "xdg-open", []string{link}
	}
}

// TMDBPage returns the public web page of a title or person
func TMDBPage(kind string, id int) string {
	return fmt.Sprintf("https://www.themoviedb.org/%s/%d", kind, id)
}
