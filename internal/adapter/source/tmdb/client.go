// Package tmdb is a client for The Movie Database v3 API.
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"golang.org/x/time/rate"

	"github.com/mmcdole/marquee/internal/domain"
)

const (
	DefaultBaseURL      = "https://api.themoviedb.org/3"
	DefaultImageBaseURL = "https://image.tmdb.org/t/p"
	DefaultLanguage     = "en-US"

	defaultTimeout           = 15 * time.Second
	defaultRequestsPerSecond = 20
	defaultAttempts          = 3
	defaultBackoff           = 300 * time.Millisecond
	userAgent                = "marquee/1.0"
)

// Image sizes
const (
	SizeOriginal = "original"
	SizePoster   = "w500"
	SizeBackdrop = "w1280"
	SizeProfile  = "w185"
	SizeLogo     = "w500"
)

// Options configures a Client. Zero values select defaults.
type Options struct {
	APIKey            string
	AccessToken       string // v4 read token; sent as a bearer header instead of api_key
	Language          string
	Region            string
	IncludeAdult      bool
	BaseURL           string
	ImageBaseURL      string
	Timeout           time.Duration
	RequestsPerSecond float64
	Attempts          uint
	Backoff           time.Duration
	HTTPClient        *http.Client
}

// Client implements domain.CatalogRepository, domain.SearchRepository,
// domain.DetailRepository and domain.ImageRepository for TMDB
type Client struct {
	apiKey       string
	accessToken  string
	language     string
	region       string
	includeAdult bool
	baseURL      string
	imageBaseURL string
	attempts     uint
	backoff      time.Duration
	httpClient   *http.Client
	limiter      *rate.Limiter
	logger       *slog.Logger
}

// NewClient creates a new TMDB API client
func NewClient(opts Options, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	rps := opts.RequestsPerSecond
	if rps <= 0 {
		rps = defaultRequestsPerSecond
	}
	attempts := opts.Attempts
	if attempts == 0 {
		attempts = defaultAttempts
	}
	backoff := opts.Backoff
	if backoff <= 0 {
		backoff = defaultBackoff
	}

	return &Client{
		apiKey:       strings.TrimSpace(opts.APIKey),
		accessToken:  strings.TrimSpace(opts.AccessToken),
		language:     cmpOr(opts.Language, DefaultLanguage),
		region:       opts.Region,
		includeAdult: opts.IncludeAdult,
		baseURL:      strings.TrimRight(cmpOr(opts.BaseURL, DefaultBaseURL), "/"),
		imageBaseURL: strings.TrimRight(cmpOr(opts.ImageBaseURL, DefaultImageBaseURL), "/"),
		attempts:     attempts,
		backoff:      backoff,
		httpClient:   httpClient,
		limiter:      rate.NewLimiter(rate.Limit(rps), int(max(1, rps/2))),
		logger:       logger,
	}
}

// Language returns the API language sent with every request
func (c *Client) Language() string {
	return c.language
}

// IsConfigured reports whether credentials are set
func (c *Client) IsConfigured() bool {
	return c != nil && (c.apiKey != "" || c.accessToken != "")
}

// Validate checks the credentials against /authentication
func (c *Client) Validate(ctx context.Context) error {
	var resp struct {
		Success bool `json:"success"`
	}
	if err := c.doGET(ctx, "/authentication", nil, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return domain.ErrUnauthorized
	}
	return nil
}

// StatusError is a non-2xx response that maps to no domain error
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("tmdb: %d %s", e.Code, e.Message)
	}
	return fmt.Sprintf("tmdb: unexpected status code %d", e.Code)
}

// doGET performs an authenticated GET and decodes the JSON response into v.
// 429 and 5xx responses and network errors are retried with exponential backoff.
func (c *Client) doGET(ctx context.Context, path string, query url.Values, v any) error {
	if !c.IsConfigured() {
		return domain.ErrNotConfigured
	}
	if query == nil {
		query = url.Values{}
	}
	if c.accessToken == "" {
		query.Set("api_key", c.apiKey)
	}
	if query.Get("language") == "" {
		query.Set("language", c.language)
	}
	reqURL := c.baseURL + path + "?" + query.Encode()

	return c.do(ctx, reqURL, true, func(resp *http.Response) error {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
		return nil
	})
}

// do sends a throttled GET with retries and hands 2xx responses to handle.
// Errors from handle are never retried.
func (c *Client) do(ctx context.Context, reqURL string, authed bool, handle func(*http.Response) error) error {
	logURL := redact(reqURL)

	err := retry.Do(
		func() error {
			if err := c.limiter.Wait(ctx); err != nil {
				return retry.Unrecoverable(err)
			}

			req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("failed to create request: %w", err))
			}
			req.Header.Set("Accept", "application/json")
			req.Header.Set("User-Agent", userAgent)
			if authed && c.accessToken != "" {
				req.Header.Set("Authorization", "Bearer "+c.accessToken)
			}

			c.logger.Debug("tmdb request", "url", logURL)

			resp, err := c.httpClient.Do(req)
			if err != nil {
				if ctx.Err() != nil {
					return retry.Unrecoverable(ctx.Err())
				}
				return fmt.Errorf("%w: %v", domain.ErrOffline, err)
			}
			defer resp.Body.Close()

			if err := checkStatus(resp); err != nil {
				if retryable(resp.StatusCode) {
					return err
				}
				return retry.Unrecoverable(err)
			}
			if err := handle(resp); err != nil {
				return retry.Unrecoverable(err)
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.backoff),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Warn("tmdb request failed, retrying", "url", logURL, "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		c.logger.Error("tmdb request error", "url", logURL, "error", err)
	}
	return err
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	var apiErr errorDTO
	_ = json.Unmarshal(body, &apiErr)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		return domain.ErrRateLimited
	default:
		msg := apiErr.StatusMessage
		if msg == "" {
			msg = strings.TrimSpace(string(body))
		}
		return &StatusError{Code: resp.StatusCode, Message: msg}
	}
}

func retryable(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

// redact hides credentials in logged URLs
func redact(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	if q.Has("api_key") {
		q.Set("api_key", "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}

func pageQuery(page int) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(max(1, page)))
	return q
}

// List returns one page of a catalog category
func (c *Client) List(ctx context.Context, category domain.CategoryID, page int) (domain.Page[domain.ListItem], error) {
	kind, ok := categoryKind(category)
	if !ok {
		return domain.Page[domain.ListItem]{}, fmt.Errorf("unknown category %q", category)
	}

	query := pageQuery(page)
	if c.region != "" && strings.HasPrefix(string(category), "movie/") {
		query.Set("region", c.region)
	}

	var resp pageResponse[resultDTO]
	if err := c.doGET(ctx, "/"+string(category), query, &resp); err != nil {
		return domain.Page[domain.ListItem]{}, err
	}
	return mapPage(resp, func(r []resultDTO) []domain.ListItem { return MapResults(r, kind) }), nil
}

func categoryKind(category domain.CategoryID) (domain.MediaKind, bool) {
	switch {
	case strings.HasPrefix(string(category), "movie/"), category == domain.CategoryTrendingMovies:
		return domain.KindMovie, true
	case strings.HasPrefix(string(category), "tv/"), category == domain.CategoryTrendingTV:
		return domain.KindTV, true
	case strings.HasPrefix(string(category), "person/"), category == domain.CategoryTrendingPeople:
		return domain.KindPerson, true
	default:
		return "", false
	}
}

// Search returns one page of results for the filters' kind
func (c *Client) Search(ctx context.Context, filters domain.SearchFilters, page int) (domain.Page[domain.ListItem], error) {
	f := filters.Normalize()
	if f.Query == "" {
		return domain.Page[domain.ListItem]{}, domain.ErrEmptyQuery
	}

	query := pageQuery(page)
	query.Set("query", f.Query)
	query.Set("include_adult", strconv.FormatBool(f.IncludeAdult || c.includeAdult))
	if f.Year > 0 {
		switch f.Kind {
		case domain.KindMovie:
			query.Set("primary_release_year", strconv.Itoa(f.Year))
		case domain.KindTV:
			query.Set("first_air_date_year", strconv.Itoa(f.Year))
		}
	}

	var resp pageResponse[resultDTO]
	if err := c.doGET(ctx, "/search/"+string(f.Kind), query, &resp); err != nil {
		return domain.Page[domain.ListItem]{}, err
	}
	return mapPage(resp, func(r []resultDTO) []domain.ListItem { return MapResults(r, f.Kind) }), nil
}

// Details returns the core record of a movie or TV series
func (c *Client) Details(ctx context.Context, ref domain.ItemRef) (*domain.Details, error) {
	switch ref.Kind {
	case domain.KindMovie:
		var dto movieDetailsDTO
		if err := c.doGET(ctx, itemPath(ref, ""), nil, &dto); err != nil {
			return nil, err
		}
		return MapMovieDetails(dto), nil
	case domain.KindTV:
		var dto tvDetailsDTO
		if err := c.doGET(ctx, itemPath(ref, ""), nil, &dto); err != nil {
			return nil, err
		}
		return MapTVDetails(dto), nil
	default:
		return nil, fmt.Errorf("details: unsupported kind %q", ref.Kind)
	}
}

// PersonDetails returns the core record of a person including top credits
func (c *Client) PersonDetails(ctx context.Context, id int) (*domain.PersonDetails, error) {
	query := url.Values{}
	query.Set("append_to_response", "combined_credits")

	var dto personDetailsDTO
	if err := c.doGET(ctx, itemPath(domain.ItemRef{Kind: domain.KindPerson, ID: id}, ""), query, &dto); err != nil {
		return nil, err
	}
	return MapPersonDetails(dto), nil
}

// Credits returns cast (in billing order) and crew
func (c *Client) Credits(ctx context.Context, ref domain.ItemRef) ([]domain.CastMember, []domain.CrewMember, error) {
	var dto creditsDTO
	if err := c.doGET(ctx, itemPath(ref, "/credits"), nil, &dto); err != nil {
		return nil, nil, err
	}
	cast, crew := MapCredits(dto)
	return cast, crew, nil
}

// Reviews returns one page of user reviews. TMDB reviews are mostly
// English, so the language filter is dropped.
func (c *Client) Reviews(ctx context.Context, ref domain.ItemRef, page int) (domain.Page[domain.Review], error) {
	query := pageQuery(page)
	query.Set("language", "en-US")

	var resp pageResponse[reviewDTO]
	if err := c.doGET(ctx, itemPath(ref, "/reviews"), query, &resp); err != nil {
		return domain.Page[domain.Review]{}, err
	}
	return mapPage(resp, MapReviews), nil
}

// Images returns posters, backdrops and logos (profiles for people) in the
// API language plus language-neutral ones.
func (c *Client) Images(ctx context.Context, ref domain.ItemRef) ([]domain.Image, error) {
	query := url.Values{}
	langs := "en,null"
	if lang, _, _ := strings.Cut(c.language, "-"); lang != "" && lang != "en" {
		langs = lang + "," + langs
	}
	query.Set("include_image_language", langs)

	var dto imagesDTO
	if err := c.doGET(ctx, itemPath(ref, "/images"), query, &dto); err != nil {
		return nil, err
	}
	return MapImages(dto), nil
}

// Videos returns trailers and clips
func (c *Client) Videos(ctx context.Context, ref domain.ItemRef) ([]domain.Video, error) {
	var dto videosDTO
	if err := c.doGET(ctx, itemPath(ref, "/videos"), nil, &dto); err != nil {
		return nil, err
	}
	return MapVideos(dto), nil
}

// Recommendations returns one page of related titles
func (c *Client) Recommendations(ctx context.Context, ref domain.ItemRef, page int) (domain.Page[domain.ListItem], error) {
	var resp pageResponse[resultDTO]
	if err := c.doGET(ctx, itemPath(ref, "/recommendations"), pageQuery(page), &resp); err != nil {
		return domain.Page[domain.ListItem]{}, err
	}
	return mapPage(resp, func(r []resultDTO) []domain.ListItem { return MapResults(r, ref.Kind) }), nil
}

// ImageURL returns the absolute URL of path at size
func (c *Client) ImageURL(path, size string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if size == "" {
		size = SizeOriginal
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.imageBaseURL + "/" + size + path
}

// Download writes the image at imageURL to w
func (c *Client) Download(ctx context.Context, imageURL string, w io.Writer) (int64, error) {
	var n int64
	err := c.do(ctx, imageURL, false, func(resp *http.Response) error {
		written, err := io.Copy(w, resp.Body)
		n = written
		if err != nil {
			return fmt.Errorf("failed to download %s: %w", imageURL, err)
		}
		return nil
	})
	if errors.Is(err, domain.ErrNotFound) {
		return n, fmt.Errorf("image %s: %w", imageURL, err)
	}
	return n, err
}

func itemPath(ref domain.ItemRef, suffix string) string {
	return "/" + string(ref.Kind) + "/" + strconv.Itoa(ref.ID) + suffix
}

func cmpOr(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
