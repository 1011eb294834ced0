package domain

import "time"

// Store handles the local cache (BoltDB + memory).
// Keys are namespaced by API language so switching language never serves stale text.
type Store interface {
	// === Pages ===
	GetPage(key string, maxAge time.Duration) (Page[ListItem], bool)
	SavePage(key string, page Page[ListItem]) error

	// === Details ===
	GetDetails(key string, maxAge time.Duration) (*DetailBundle, bool)
	SaveDetails(key string, bundle *DetailBundle) error

	// === Search history (most recent first) ===
	History() []string
	AddHistory(query string) error
	ClearHistory() error

	// === Invalidation ===
	InvalidatePrefix(prefix string)
	InvalidateAll()

	Close() error
}
