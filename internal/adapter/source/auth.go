package source

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/adapter/source/tmdb"
	"github.com/mmcdole/marquee/internal/domain"
)

// VerifyAPIKey checks a newly entered API key before it is saved.
// Returns domain.ErrUnauthorized when TMDB rejects the key.
func VerifyAPIKey(ctx context.Context, cfg *adapter.TMDBConfig, key string, logger *slog.Logger) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return domain.ErrNotConfigured
	}
	check := *cfg
	check.APIKey = key
	check.AccessToken = ""

	client := tmdb.NewClient(options(&check, ""), logger)
	if err := client.Validate(ctx); err != nil {
		if logger != nil {
			logger.Warn("api key rejected", "error", err)
		}
		return err
	}
	return nil
}
