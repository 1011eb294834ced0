package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// MediaKind distinguishes the kinds of things TMDB lists
type MediaKind string

const (
	KindMovie  MediaKind = "movie"
	KindTV     MediaKind = "tv"
	KindPerson MediaKind = "person"
)

// ParseKind converts "movie", "tv" or "person" (case-insensitive) to a MediaKind.
// "show" is accepted as an alias for tv.
func ParseKind(s string) (MediaKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "movie", "movies":
		return KindMovie, nil
	case "tv", "show", "shows":
		return KindTV, nil
	case "person", "people":
		return KindPerson, nil
	default:
		return "", fmt.Errorf("unknown media kind %q", s)
	}
}

// ItemRef identifies a TMDB entity across kinds
type ItemRef struct {
	Kind MediaKind
	ID   int
}

func (r ItemRef) String() string {
	return string(r.Kind) + ":" + strconv.Itoa(r.ID)
}

// ParseItemRef parses "kind:id", e.g. "movie:603".
func ParseItemRef(s string) (ItemRef, error) {
	kindPart, idPart, ok := strings.Cut(s, ":")
	if !ok {
		return ItemRef{}, fmt.Errorf("invalid item reference %q, want kind:id", s)
	}
	kind, err := ParseKind(kindPart)
	if err != nil {
		return ItemRef{}, err
	}
	id, err := strconv.Atoi(idPart)
	if err != nil || id <= 0 {
		return ItemRef{}, fmt.Errorf("invalid item id %q", idPart)
	}
	return ItemRef{Kind: kind, ID: id}, nil
}

// Title is a movie or TV series as it appears in lists
type Title struct {
	ID            int       `json:"id"`
	Kind          MediaKind `json:"kind"`
	Name          string    `json:"name"`           // Localized title
	OriginalName  string    `json:"original_name"`  // Title in original language
	Overview      string    `json:"overview"`       // Plot synopsis
	ReleaseDate   string    `json:"release_date"`   // YYYY-MM-DD (first air date for TV)
	Year          int       `json:"year"`           // 0 if unknown
	VoteAverage   float64   `json:"vote_average"`   // 0-10
	VoteCount     int       `json:"vote_count"`     // Number of votes
	Popularity    float64   `json:"popularity"`     // TMDB popularity score
	OriginalLang  string    `json:"original_lang"`  // ISO 639-1
	GenreIDs      []int     `json:"genre_ids"`      // TMDB genre IDs
	Adult         bool      `json:"adult"`          // Adult content flag
	PosterPath    string    `json:"poster_path"`    // Relative TMDB image path
	BackdropPath  string    `json:"backdrop_path"`  // Relative TMDB image path
	OriginCountry []string  `json:"origin_country"` // TV only
}

// Ref returns the title's reference
func (t *Title) Ref() ItemRef {
	return ItemRef{Kind: t.Kind, ID: t.ID}
}

// FormattedRating returns the vote average with one decimal, or "" without votes
func (t *Title) FormattedRating() string {
	if t.VoteCount == 0 {
		return ""
	}
	return fmt.Sprintf("%.1f", t.VoteAverage)
}

// ListItem interface implementation for Title

func (t *Title) GetID() string          { return t.Ref().String() }
func (t *Title) GetRef() ItemRef        { return t.Ref() }
func (t *Title) GetTitle() string       { return t.Name }
func (t *Title) GetSortTitle() string   { return sortTitle(t.Name) }
func (t *Title) GetYear() int           { return t.Year }
func (t *Title) GetKind() MediaKind     { return t.Kind }
func (t *Title) GetRating() float64     { return t.VoteAverage }
func (t *Title) GetPopularity() float64 { return t.Popularity }
func (t *Title) CanDrillDown() bool     { return true }

func (t *Title) GetDescription() string {
	parts := make([]string, 0, 2)
	if t.Year > 0 {
		parts = append(parts, strconv.Itoa(t.Year))
	}
	if r := t.FormattedRating(); r != "" {
		parts = append(parts, "★ "+r)
	}
	return strings.Join(parts, " · ")
}

// Person is a cast or crew member as it appears in lists
type Person struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Department  string   `json:"department"` // known_for_department
	Popularity  float64  `json:"popularity"`
	ProfilePath string   `json:"profile_path"`
	KnownFor    []string `json:"known_for"` // Titles the person is known for
	Adult       bool     `json:"adult"`
}

// Ref returns the person's reference
func (p *Person) Ref() ItemRef {
	return ItemRef{Kind: KindPerson, ID: p.ID}
}

// ListItem interface implementation for Person

func (p *Person) GetID() string          { return p.Ref().String() }
func (p *Person) GetRef() ItemRef        { return p.Ref() }
func (p *Person) GetTitle() string       { return p.Name }
func (p *Person) GetSortTitle() string   { return p.Name }
func (p *Person) GetYear() int           { return 0 }
func (p *Person) GetKind() MediaKind     { return KindPerson }
func (p *Person) GetRating() float64     { return 0 }
func (p *Person) GetPopularity() float64 { return p.Popularity }
func (p *Person) CanDrillDown() bool     { return true }

func (p *Person) GetDescription() string {
	if len(p.KnownFor) == 0 {
		return p.Department
	}
	known := p.KnownFor
	if len(known) > 2 {
		known = known[:2]
	}
	if p.Department == "" {
		return strings.Join(known, ", ")
	}
	return p.Department + " · " + strings.Join(known, ", ")
}

// Page is one page of a TMDB listing
type Page[T any] struct {
	Items        []T
	Page         int // 1-based
	TotalPages   int
	TotalResults int
}

// HasMore reports whether pages after this one exist.
func (p Page[T]) HasMore() bool {
	return p.Page < p.TotalPages && p.Page < MaxPage
}

// MaxPage is the last page TMDB will serve for any listing.
const MaxPage = 500

// CategoryID identifies a browsable catalog list
type CategoryID string

const (
	CategoryPopularMovies  CategoryID = "movie/popular"
	CategoryTopRatedMovies CategoryID = "movie/top_rated"
	CategoryNowPlaying     CategoryID = "movie/now_playing"
	CategoryUpcoming       CategoryID = "movie/upcoming"
	CategoryPopularTV      CategoryID = "tv/popular"
	CategoryTopRatedTV     CategoryID = "tv/top_rated"
	CategoryOnTheAir       CategoryID = "tv/on_the_air"
	CategoryAiringToday    CategoryID = "tv/airing_today"
	CategoryTrendingMovies CategoryID = "trending/movie/week"
	CategoryTrendingTV     CategoryID = "trending/tv/week"
	CategoryTrendingPeople CategoryID = "trending/person/week"
	CategoryPopularPeople  CategoryID = "person/popular"
)

// Category is a catalog list shown in the sidebar
type Category struct {
	ID       CategoryID
	Kind     MediaKind
	LabelKey string // i18n message key
}

// sortTitle strips leading English articles for alphabetical ordering
func sortTitle(name string) string {
	lower := strings.ToLower(name)
	for _, article := range []string{"the ", "a ", "an "} {
		if strings.HasPrefix(lower, article) && len(name) > len(article) {
			return name[len(article):]
		}
	}
	return name
}
