package domain

import (
	"context"
	"io"
)

// CatalogRepository provides the browsable TMDB lists
type CatalogRepository interface {
	// List returns one page of a catalog category
	List(ctx context.Context, category CategoryID, page int) (Page[ListItem], error)
}

// SearchRepository provides search across movies, TV and people
type SearchRepository interface {
	// Search returns one page of results for the filters' kind
	Search(ctx context.Context, filters SearchFilters, page int) (Page[ListItem], error)
}

// DetailRepository provides the per-item records shown in the inspector
type DetailRepository interface {
	// Details returns the core record of a movie or TV series
	Details(ctx context.Context, ref ItemRef) (*Details, error)

	// PersonDetails returns the core record of a person including top credits
	PersonDetails(ctx context.Context, id int) (*PersonDetails, error)

	// Credits returns cast (in billing order) and crew
	Credits(ctx context.Context, ref ItemRef) ([]CastMember, []CrewMember, error)

	// Reviews returns one page of user reviews
	Reviews(ctx context.Context, ref ItemRef, page int) (Page[Review], error)

	// Images returns posters, backdrops and logos (profiles for people)
	Images(ctx context.Context, ref ItemRef) ([]Image, error)

	// Videos returns trailers and clips
	Videos(ctx context.Context, ref ItemRef) ([]Video, error)

	// Recommendations returns one page of related titles
	Recommendations(ctx context.Context, ref ItemRef, page int) (Page[ListItem], error)
}

// ImageRepository resolves and downloads TMDB images
type ImageRepository interface {
	// ImageURL returns the absolute URL of path at size ("original", "w500", ...)
	ImageURL(path, size string) string

	// Download writes the image at url to w and returns the bytes written
	Download(ctx context.Context, url string, w io.Writer) (int64, error)
}
