package domain

// ListItem is the polymorphic interface for items that can be displayed in lists.
// It provides a common API for display, filtering, and sorting across all content types.
// Domain entities (Title, Person) implement this interface directly.
type ListItem interface {
	// GetID returns the unique identifier for this item ("movie:603")
	GetID() string

	// GetRef returns the kind and TMDB ID
	GetRef() ItemRef

	// GetTitle returns the display title
	GetTitle() string

	// GetSortTitle returns the title used for alphabetical sorting (handles "The", "A", etc.)
	GetSortTitle() string

	// GetYear returns the release/air year (0 if not applicable)
	GetYear() int

	// GetDescription returns secondary info for display (e.g., "1999 · ★ 8.2")
	GetDescription() string

	// GetKind returns movie, tv or person
	GetKind() MediaKind

	// GetRating returns the 0-10 vote average (0 if not applicable)
	GetRating() float64

	// GetPopularity returns the TMDB popularity score
	GetPopularity() float64

	// CanDrillDown returns true if this item has a detail view
	CanDrillDown() bool
}
