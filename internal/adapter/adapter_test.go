package adapter

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	prev := configDir
	configDir = func() string { return dir }
	t.Cleanup(func() { configDir = prev })
	t.Chdir(t.TempDir()) // keep "." free of stray config files
	return dir
}

func TestLoadConfigDefaults(t *testing.T) {
	withConfigDir(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.False(t, cfg.IsConfigured())
	assert.Equal(t, "default", cfg.UI.Theme)
	assert.True(t, cfg.UI.ShowInspector)
	assert.Equal(t, 0.1, cfg.Scroll.Threshold)
	assert.Equal(t, 3, cfg.Scroll.Margin)
	assert.True(t, cfg.Scroll.Enabled)
	assert.Equal(t, 360, cfg.Cache.TTLMinutes)
	assert.Equal(t, "https://api.themoviedb.org/3", cfg.TMDB.BaseURL)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := withConfigDir(t)
	yaml := []byte(`
tmdb:
  api_key: from-file
  region: GB
ui:
  theme: ocean
scroll:
  margin_rows: 8
  enabled: false
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0600))
	t.Setenv("MARQUEE_UI_THEME", "mono")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.TMDB.APIKey)
	assert.Equal(t, "GB", cfg.TMDB.Region)
	assert.Equal(t, "mono", cfg.UI.Theme, "environment wins over the file")
	assert.Equal(t, 8, cfg.Scroll.Margin)
	assert.False(t, cfg.Scroll.Enabled)
	assert.Equal(t, 0.1, cfg.Scroll.Threshold, "unset keys keep defaults")
	assert.True(t, cfg.IsConfigured())
}

func TestSaveAPIKeyAndClearCredentials(t *testing.T) {
	withConfigDir(t)

	require.NoError(t, SaveAPIKey("  abc123 \n"))
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "abc123", cfg.TMDB.APIKey)

	if runtime.GOOS != "windows" {
		info, err := os.Stat(ConfigFile())
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	}

	require.NoError(t, ClearCredentials())
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.False(t, cfg.IsConfigured())
	assert.Equal(t, "default", cfg.UI.Theme)
}

func TestClearCache(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cache.Dir = filepath.Join(t.TempDir(), "cache")
	require.NoError(t, os.MkdirAll(cfg.Cache.Dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Cache.Dir, "marquee.db"), []byte("x"), 0600))

	require.NoError(t, cfg.ClearCache())
	assert.NoDirExists(t, cfg.Cache.Dir)

	cfg.Cache.Dir = ""
	assert.NoError(t, cfg.ClearCache())
}

func TestSetupLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "marquee.log")
	logger, closer, err := SetupLogger(&LoggingConfig{File: path, Level: "debug"})
	require.NoError(t, err)
	logger.Debug("hello", "key", "value")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"key":"value"`)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLogLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLogLevel("WARNING"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("bogus"))
}

func TestLauncherCommands(t *testing.T) {
	var gotName string
	var gotArgs []string
	l := NewLauncher("firefox --new-tab", NullLogger())
	l.start = func(name string, args ...string) error {
		gotName, gotArgs = name, args
		return nil
	}

	require.NoError(t, l.Open("https://www.youtube.com/watch?v=abc"))
	assert.Equal(t, "firefox", gotName)
	assert.Equal(t, []string{"--new-tab", "https://www.youtube.com/watch?v=abc"}, gotArgs)

	assert.Error(t, l.Open("file:///etc/passwd"))

	name, args := NewLauncher("", nil).commandFor("https://x")
	assert.NotEmpty(t, name)
	assert.Equal(t, "https://x", args[len(args)-1])
}

func TestTMDBPage(t *testing.T) {
	assert.Equal(t, "https://www.themoviedb.org/movie/603", TMDBPage("movie", 603))
}
