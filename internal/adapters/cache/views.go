// Package cache provides in-memory TTL caches for mounted views and rendered images.
package cache

import (
	"time"

	"mockgram/internal/domain"
)

// ViewStore keeps mounted profile views until they go unused for the TTL.
type ViewStore struct {
	views *MemoryCache[*domain.ProfileView]
}

// NewViewStore creates a view store with a sliding TTL.
func NewViewStore(ttl time.Duration) *ViewStore {
	return &ViewStore{views: NewSlidingCache[*domain.ProfileView](ttl)}
}

// Get returns the view with the given id.
func (s *ViewStore) Get(viewID string) (*domain.ProfileView, bool) {
	return s.views.Get(viewID)
}

// Put stores view under its own id.
func (s *ViewStore) Put(view *domain.ProfileView) {
	s.views.Set(view.ID(), view)
}

// Len returns the number of live views.
func (s *ViewStore) Len() int {
	return s.views.Len()
}

// Close stops background eviction.
func (s *ViewStore) Close() {
	s.views.Close()
}
