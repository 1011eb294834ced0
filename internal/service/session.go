package service

import (
	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/domain"
)

// SessionService manages the stored credentials and local data
type SessionService struct {
	store domain.Store
}

// NewSessionService creates a new SessionService. store may be nil.
func NewSessionService(store domain.Store) *SessionService {
	return &SessionService{store: store}
}

// Logout clears the TMDB credentials and cached data
func (s *SessionService) Logout() error {
	// Clear credentials
	if err := adapter.ClearCredentials(); err != nil {
		return err
	}

	// Clear cache
	s.ClearCache()
	return nil
}

// ClearCache drops every cached page and detail bundle
func (s *SessionService) ClearCache() {
	if s.store != nil {
		s.store.InvalidateAll()
	}
}
