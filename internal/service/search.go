package service

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/paging"
)

const maxSuggestions = 8

// SearchService runs TMDB searches and keeps the query history
type SearchService struct {
	repo   domain.SearchRepository
	store  domain.Store
	lang   string
	ttl    time.Duration
	logger *slog.Logger
}

// NewSearchService creates a new search service. store may be nil.
func NewSearchService(repo domain.SearchRepository, store domain.Store, lang string, ttl time.Duration, logger *slog.Logger) *SearchService {
	if logger == nil {
		logger = slog.Default()
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &SearchService{repo: repo, store: store, lang: lang, ttl: ttl, logger: logger}
}

// Fetcher returns the page source for filters. The caller should use
// filters.Key() as the feed identity so equal searches share one list.
func (s *SearchService) Fetcher(filters domain.SearchFilters) paging.FetchFunc[domain.ListItem] {
	filters = filters.Normalize()
	return cachedFetcher(s.store, s.ttl, s.logger, func(page int) string {
		return pageKey(s.lang, filters.Key(), page)
	}, func(ctx context.Context, page int) (domain.Page[domain.ListItem], error) {
		return s.repo.Search(ctx, filters, page)
	})
}

// Record adds a submitted query to the history
func (s *SearchService) Record(query string) {
	if s.store == nil {
		return
	}
	if err := s.store.AddHistory(query); err != nil {
		s.logger.Warn("failed to save search history", "error", err)
	}
}

// History returns past queries, most recent first
func (s *SearchService) History() []string {
	if s.store == nil {
		return nil
	}
	return s.store.History()
}

// ClearHistory forgets every past query and the cached search pages
func (s *SearchService) ClearHistory() error {
	if s.store == nil {
		return nil
	}
	s.store.InvalidatePrefix(SearchCachePrefix(s.lang))
	return s.store.ClearHistory()
}

// Suggestions fuzzy-matches prefix against the history. An empty prefix
// returns the most recent queries.
func (s *SearchService) Suggestions(prefix string) []string {
	history := s.History()
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		if len(history) > maxSuggestions {
			history = history[:maxSuggestions]
		}
		return history
	}

	matches := fuzzy.RankFindNormalizedFold(prefix, history)

	// Sort by distance, then recency (lower index is more recent)
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Distance != matches[j].Distance {
			return matches[i].Distance < matches[j].Distance
		}
		return matches[i].OriginalIndex < matches[j].OriginalIndex
	})

	out := make([]string, 0, min(len(matches), maxSuggestions))
	for _, m := range matches {
		if strings.EqualFold(m.Target, prefix) {
			continue
		}
		out = append(out, m.Target)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}
