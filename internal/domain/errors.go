package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrNotFound indicates the requested title or person does not exist
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates the API key or access token was rejected
	ErrUnauthorized = errors.New("TMDB credentials are invalid")

	// ErrRateLimited indicates TMDB kept answering 429 after retries
	ErrRateLimited = errors.New("TMDB rate limit exceeded")

	// ErrOffline indicates TMDB is unreachable
	ErrOffline = errors.New("TMDB is unreachable")

	// ErrNotConfigured indicates no API key is configured
	ErrNotConfigured = errors.New("no TMDB API key configured")

	// ErrEmptyQuery indicates a search was requested without a query
	ErrEmptyQuery = errors.New("search query is empty")
)
