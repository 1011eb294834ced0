package source

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/adapter/source/tmdb"
	"github.com/mmcdole/marquee/internal/domain"
)

// MediaSource combines all repository interfaces the metadata backend must implement.
type MediaSource interface {
	domain.CatalogRepository // Browsing: List(category, page)
	domain.SearchRepository  // Search: Search(filters, page)
	domain.DetailRepository  // Inspector: Details, Credits, Reviews, Images, Videos, ...
	domain.ImageRepository   // Export: ImageURL, Download
}

// NewClient creates the TMDB-backed MediaSource. lang is the API language
// used when the config does not pin one.
func NewClient(cfg *adapter.TMDBConfig, lang string, logger *slog.Logger) (MediaSource, error) {
	if cfg == nil {
		return nil, fmt.Errorf("tmdb config is nil")
	}
	if cfg.APIKey == "" && cfg.AccessToken == "" {
		return nil, domain.ErrNotConfigured
	}
	return tmdb.NewClient(options(cfg, lang), logger), nil
}

// NewClientFromConfig creates a MediaSource from the application config
func NewClientFromConfig(cfg *adapter.Config, lang string, logger *slog.Logger) (MediaSource, error) {
	return NewClient(&cfg.TMDB, lang, logger)
}

func options(cfg *adapter.TMDBConfig, lang string) tmdb.Options {
	if cfg.Language != "" {
		lang = cfg.Language
	}
	return tmdb.Options{
		APIKey:            cfg.APIKey,
		AccessToken:       cfg.AccessToken,
		Language:          lang,
		Region:            cfg.Region,
		IncludeAdult:      cfg.IncludeAdult,
		BaseURL:           cfg.BaseURL,
		ImageBaseURL:      cfg.ImageBaseURL,
		Timeout:           time.Duration(cfg.TimeoutSeconds) * time.Second,
		RequestsPerSecond: cfg.RequestsPerSecond,
	}
}
