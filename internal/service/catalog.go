package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/paging"
)

// DefaultTTL is how long cached pages and details stay fresh
const DefaultTTL = 6 * time.Hour

var categories = []domain.Category{
	{ID: domain.CategoryTrendingMovies, Kind: domain.KindMovie, LabelKey: "category.trending_movies"},
	{ID: domain.CategoryPopularMovies, Kind: domain.KindMovie, LabelKey: "category.popular_movies"},
	{ID: domain.CategoryTopRatedMovies, Kind: domain.KindMovie, LabelKey: "category.top_rated_movies"},
	{ID: domain.CategoryNowPlaying, Kind: domain.KindMovie, LabelKey: "category.now_playing"},
	{ID: domain.CategoryUpcoming, Kind: domain.KindMovie, LabelKey: "category.upcoming"},
	{ID: domain.CategoryTrendingTV, Kind: domain.KindTV, LabelKey: "category.trending_tv"},
	{ID: domain.CategoryPopularTV, Kind: domain.KindTV, LabelKey: "category.popular_tv"},
	{ID: domain.CategoryTopRatedTV, Kind: domain.KindTV, LabelKey: "category.top_rated_tv"},
	{ID: domain.CategoryOnTheAir, Kind: domain.KindTV, LabelKey: "category.on_the_air"},
	{ID: domain.CategoryAiringToday, Kind: domain.KindTV, LabelKey: "category.airing_today"},
	{ID: domain.CategoryTrendingPeople, Kind: domain.KindPerson, LabelKey: "category.trending_people"},
	{ID: domain.CategoryPopularPeople, Kind: domain.KindPerson, LabelKey: "category.popular_people"},
}

// CatalogService serves the browsable TMDB lists with a cache in front
type CatalogService struct {
	repo   domain.CatalogRepository
	store  domain.Store
	lang   string
	ttl    time.Duration
	logger *slog.Logger
}

// NewCatalogService creates a catalog service. store may be nil.
func NewCatalogService(repo domain.CatalogRepository, store domain.Store, lang string, ttl time.Duration, logger *slog.Logger) *CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CatalogService{repo: repo, store: store, lang: lang, ttl: ttl, logger: logger}
}

// Categories returns the sidebar lists in display order
func (s *CatalogService) Categories() []domain.Category {
	out := make([]domain.Category, len(categories))
	copy(out, categories)
	return out
}

// Category looks up a list by ID
func (s *CatalogService) Category(id domain.CategoryID) (domain.Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Category{}, false
}

// Fetcher returns the page source for a category. Pages are served from the
// store when fresh and written back after every successful fetch.
func (s *CatalogService) Fetcher(category domain.CategoryID) paging.FetchFunc[domain.ListItem] {
	return cachedFetcher(s.store, s.ttl, s.logger, func(page int) string {
		return pageKey(s.lang, string(category), page)
	}, func(ctx context.Context, page int) (domain.Page[domain.ListItem], error) {
		return s.repo.List(ctx, category, page)
	})
}

// Refresh drops every cached page of category
func (s *CatalogService) Refresh(category domain.CategoryID) {
	if s.store == nil {
		return
	}
	s.store.InvalidatePrefix(s.lang + ":" + string(category) + ":")
	s.logger.Debug("invalidated category", "category", category)
}

// cachedFetcher wraps fetch with a read-through/write-back page cache
func cachedFetcher(
	store domain.Store,
	ttl time.Duration,
	logger *slog.Logger,
	key func(page int) string,
	fetch func(ctx context.Context, page int) (domain.Page[domain.ListItem], error),
) paging.FetchFunc[domain.ListItem] {
	return func(ctx context.Context, page int) (paging.PageResult[domain.ListItem], error) {
		k := key(page)
		if store != nil {
			if cached, ok := store.GetPage(k, ttl); ok {
				logger.Debug("cache hit", "key", k)
				return toPageResult(cached), nil
			}
		}

		result, err := fetch(ctx, page)
		if err != nil {
			logger.Warn("page fetch failed", "key", k, "error", err)
			return paging.PageResult[domain.ListItem]{}, err
		}

		if store != nil {
			if err := store.SavePage(k, result); err != nil {
				logger.Warn("failed to cache page", "key", k, "error", err)
			}
		}
		logger.Debug("fetched page", "key", k, "items", len(result.Items), "total_pages", result.TotalPages)
		return toPageResult(result), nil
	}
}

func toPageResult(p domain.Page[domain.ListItem]) paging.PageResult[domain.ListItem] {
	totalPages := min(p.TotalPages, domain.MaxPage)
	return paging.PageResult[domain.ListItem]{
		Items:      p.Items,
		HasMore:    p.HasMore(),
		TotalPages: totalPages,
	}
}
