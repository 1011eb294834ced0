package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/paging"
)

const detailWorkers = 4

// DetailService assembles the inspector bundle for one item
type DetailService struct {
	repo   domain.DetailRepository
	store  domain.Store
	lang   string
	ttl    time.Duration
	logger *slog.Logger
}

// NewDetailService creates a new detail service. store may be nil.
func NewDetailService(repo domain.DetailRepository, store domain.Store, lang string, ttl time.Duration, logger *slog.Logger) *DetailService {
	if logger == nil {
		logger = slog.Default()
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &DetailService{repo: repo, store: store, lang: lang, ttl: ttl, logger: logger}
}

// Load returns the detail bundle for ref. The core record is required; the
// remaining sections load concurrently and a failed section is recorded in
// bundle.Failed instead of failing the whole load. Only complete bundles
// are cached.
func (s *DetailService) Load(ctx context.Context, ref domain.ItemRef) (*domain.DetailBundle, error) {
	key := detailKey(s.lang, ref)
	if s.store != nil {
		if cached, ok := s.store.GetDetails(key, s.ttl); ok {
			s.logger.Debug("cache hit", "key", key)
			return cached, nil
		}
	}

	bundle := &domain.DetailBundle{Ref: ref}
	var (
		mu      sync.Mutex
		coreErr error
	)
	fail := func(section string, err error) {
		mu.Lock()
		defer mu.Unlock()
		if bundle.Failed == nil {
			bundle.Failed = make(map[string]string)
		}
		bundle.Failed[section] = err.Error()
		s.logger.Warn("detail section failed", "ref", ref.String(), "section", section, "error", err)
	}

	p := pool.New().WithMaxGoroutines(detailWorkers)

	if ref.Kind == domain.KindPerson {
		p.Go(func() {
			person, err := s.repo.PersonDetails(ctx, ref.ID)
			if err != nil {
				coreErr = err
				return
			}
			bundle.Person = person
		})
	} else {
		p.Go(func() {
			details, err := s.repo.Details(ctx, ref)
			if err != nil {
				coreErr = err
				return
			}
			bundle.Details = details
		})
		p.Go(func() {
			cast, crew, err := s.repo.Credits(ctx, ref)
			if err != nil {
				fail(domain.SectionCredits, err)
				return
			}
			bundle.Cast, bundle.Crew = cast, crew
		})
		p.Go(func() {
			reviews, err := s.repo.Reviews(ctx, ref, 1)
			if err != nil {
				fail(domain.SectionReviews, err)
				return
			}
			bundle.Reviews = reviews.Items
		})
		p.Go(func() {
			videos, err := s.repo.Videos(ctx, ref)
			if err != nil {
				fail(domain.SectionVideos, err)
				return
			}
			bundle.Videos = videos
		})
		p.Go(func() {
			recs, err := s.repo.Recommendations(ctx, ref, 1)
			if err != nil {
				fail(domain.SectionRecommendations, err)
				return
			}
			for _, item := range recs.Items {
				if t, ok := item.(*domain.Title); ok {
					bundle.Recommendations = append(bundle.Recommendations, *t)
				}
			}
		})
	}
	p.Go(func() {
		images, err := s.repo.Images(ctx, ref)
		if err != nil {
			fail(domain.SectionImages, err)
			return
		}
		bundle.Images = images
	})
	p.Wait()

	if coreErr != nil {
		return nil, fmt.Errorf("failed to load %s: %w", ref, coreErr)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s.store != nil && bundle.Complete() {
		if err := s.store.SaveDetails(key, bundle); err != nil {
			s.logger.Warn("failed to cache details", "key", key, "error", err)
		}
	}
	s.logger.Debug("loaded details", "ref", ref.String(), "failed_sections", len(bundle.Failed))
	return bundle, nil
}

// Invalidate drops the cached bundle of ref
func (s *DetailService) Invalidate(ref domain.ItemRef) {
	if s.store != nil {
		s.store.InvalidatePrefix(detailKey(s.lang, ref))
	}
}

// RecommendationsFetcher returns the page source for titles related to ref
func (s *DetailService) RecommendationsFetcher(ref domain.ItemRef) paging.FetchFunc[domain.ListItem] {
	return cachedFetcher(s.store, s.ttl, s.logger, func(page int) string {
		return pageKey(s.lang, "recommendations:"+ref.String(), page)
	}, func(ctx context.Context, page int) (domain.Page[domain.ListItem], error) {
		return s.repo.Recommendations(ctx, ref, page)
	})
}

// KnownForFetcher returns a single-page source listing a person's credits
func (s *DetailService) KnownForFetcher(personID int) paging.FetchFunc[domain.ListItem] {
	ref := domain.ItemRef{Kind: domain.KindPerson, ID: personID}
	return func(ctx context.Context, page int) (paging.PageResult[domain.ListItem], error) {
		bundle, err := s.Load(ctx, ref)
		if err != nil {
			return paging.PageResult[domain.ListItem]{}, err
		}
		items := make([]domain.ListItem, len(bundle.Person.Credits))
		for i := range bundle.Person.Credits {
			items[i] = &bundle.Person.Credits[i]
		}
		return paging.PageResult[domain.ListItem]{Items: items, TotalPages: 1}, nil
	}
}
