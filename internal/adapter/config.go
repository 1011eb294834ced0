package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/mmcdole/marquee/internal/scroll"
)

// Config holds all application configuration
type Config struct {
	TMDB    TMDBConfig    `mapstructure:"tmdb"`
	UI      UIConfig      `mapstructure:"ui"`
	Scroll  scroll.Config `mapstructure:"scroll"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// TMDBConfig holds API credentials and request settings
type TMDBConfig struct {
	APIKey            string  `mapstructure:"api_key"`
	AccessToken       string  `mapstructure:"access_token"` // v4 read token, optional
	Language          string  `mapstructure:"language"`     // empty = follow ui.language
	Region            string  `mapstructure:"region"`       // ISO 3166-1, e.g. "US"
	IncludeAdult      bool    `mapstructure:"include_adult"`
	BaseURL           string  `mapstructure:"base_url"`
	ImageBaseURL      string  `mapstructure:"image_base_url"`
	TimeoutSeconds    int     `mapstructure:"timeout_seconds"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	Theme         string `mapstructure:"theme"`
	Language      string `mapstructure:"language"` // "en" or "zh"; empty = $LANG
	ShowInspector bool   `mapstructure:"show_inspector"`
	Browser       string `mapstructure:"browser"` // command used to open links, empty for system default
}

// CacheConfig holds the local cache settings
type CacheConfig struct {
	Dir        string `mapstructure:"dir"` // empty = memory only
	TTLMinutes int    `mapstructure:"ttl_minutes"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File       string `mapstructure:"file"`
	Level      string `mapstructure:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		TMDB: TMDBConfig{
			BaseURL:           "https://api.themoviedb.org/3",
			ImageBaseURL:      "https://image.tmdb.org/t/p",
			TimeoutSeconds:    15,
			RequestsPerSecond: 20,
		},
		UI: UIConfig{
			Theme:         "default",
			ShowInspector: true,
		},
		Scroll: scroll.DefaultConfig(),
		Cache: CacheConfig{
			Dir:        defaultCachePath(),
			TTLMinutes: 360,
		},
		Logging: LoggingConfig{
			File:       defaultLogPath(),
			Level:      "INFO",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// configDir is swapped out by tests
var configDir = defaultConfigPath

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "marquee", "marquee.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "marquee", "marquee.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "marquee")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "marquee")
	}
}

// defaultCachePath returns the default cache directory path for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "marquee", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "marquee", "cache")
	}
}

// ConfigFile returns the path config is saved to
func ConfigFile() string {
	return filepath.Join(configDir(), "config.yaml")
}

// newViper returns a viper instance seeded with defaults so every key can be
// overridden from the environment (MARQUEE_TMDB_API_KEY, MARQUEE_UI_THEME, ...)
func newViper(cfg *Config) *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir())
	v.AddConfigPath(".")

	v.SetEnvPrefix("MARQUEE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setAll(v.SetDefault, cfg)
	return v
}

// setAll writes every config field through set with its snake_case key
func setAll(set func(key string, value any), cfg *Config) {
	set("tmdb.api_key", cfg.TMDB.APIKey)
	set("tmdb.access_token", cfg.TMDB.AccessToken)
	set("tmdb.language", cfg.TMDB.Language)
	set("tmdb.region", cfg.TMDB.Region)
	set("tmdb.include_adult", cfg.TMDB.IncludeAdult)
	set("tmdb.base_url", cfg.TMDB.BaseURL)
	set("tmdb.image_base_url", cfg.TMDB.ImageBaseURL)
	set("tmdb.timeout_seconds", cfg.TMDB.TimeoutSeconds)
	set("tmdb.requests_per_second", cfg.TMDB.RequestsPerSecond)

	set("ui.theme", cfg.UI.Theme)
	set("ui.language", cfg.UI.Language)
	set("ui.show_inspector", cfg.UI.ShowInspector)
	set("ui.browser", cfg.UI.Browser)

	set("scroll.threshold", cfg.Scroll.Threshold)
	set("scroll.margin_rows", cfg.Scroll.Margin)
	set("scroll.enabled", cfg.Scroll.Enabled)

	set("cache.dir", cfg.Cache.Dir)
	set("cache.ttl_minutes", cfg.Cache.TTLMinutes)

	set("logging.file", cfg.Logging.File)
	set("logging.level", cfg.Logging.Level)
	set("logging.max_size_mb", cfg.Logging.MaxSizeMB)
	set("logging.max_backups", cfg.Logging.MaxBackups)
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()
	v := newViper(cfg)

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to file
func SaveConfig(cfg *Config) error {
	dir := configDir()

	// Ensure config directory exists
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	setAll(v.Set, cfg)

	if err := v.WriteConfigAs(ConfigFile()); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	// The file holds the API key
	return os.Chmod(ConfigFile(), 0600)
}

// SaveAPIKey updates just the API key in the configuration file
func SaveAPIKey(key string) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	cfg.TMDB.APIKey = strings.TrimSpace(key)
	return SaveConfig(cfg)
}

// ClearCredentials removes the API key and token while preserving other settings
func ClearCredentials() error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	cfg.TMDB.APIKey = ""
	cfg.TMDB.AccessToken = ""
	return SaveConfig(cfg)
}

// IsConfigured returns true if TMDB credentials are set
func (c *Config) IsConfigured() bool {
	return c.TMDB.APIKey != "" || c.TMDB.AccessToken != ""
}

// ClearCache removes all cached data
func (c *Config) ClearCache() error {
	if c.Cache.Dir == "" {
		return nil
	}
	if err := os.RemoveAll(c.Cache.Dir); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}
