package agenda

import (
	"context"
	"sync"
	"time"

	"github.com/Aguus467/angulismotv/internal/pkg/models"
)

// Store holds the result of the last completed aggregation pass. Every pass
// replaces the whole snapshot; readers always see a consistent pass, never a
// half-merged one. There is no ambient singleton: one Store per service.
type Store struct {
	mu         sync.RWMutex
	groups     []models.GroupedEvent
	events     []models.Event
	channels   []models.Channel
	feedErrors map[string]string
	allFailed  bool
	updatedAt  time.Time
}

func NewStore() *Store {
	return &Store{}
}

// ReplacePass swaps in the outcome of a finished aggregation pass.
func (s *Store) ReplacePass(groups []models.GroupedEvent, events []models.Event, feedErrors map[string]error, allFailed bool, at time.Time) {
	errs := make(map[string]string, len(feedErrors))
	for name, err := range feedErrors {
		errs[name] = err.Error()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.groups = groups
	s.events = events
	s.feedErrors = errs
	s.allFailed = allFailed
	s.updatedAt = at
}

// SetChannels replaces the cached channel directory.
func (s *Store) SetChannels(channels []models.Channel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.channels = channels
}

// Groups returns the grouped agenda of the last pass with its timestamp.
func (s *Store) Groups() ([]models.GroupedEvent, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.GroupedEvent, len(s.groups))
	copy(out, s.groups)
	return out, s.updatedAt
}

// Events returns the flat adapted events of the last pass.
func (s *Store) Events() []models.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Event, len(s.events))
	copy(out, s.events)
	return out
}

// Channels returns the cached channel directory.
func (s *Store) Channels() []models.Channel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Channel, len(s.channels))
	copy(out, s.channels)
	return out
}

// FeedErrors reports per-source failures of the last pass.
func (s *Store) FeedErrors() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.feedErrors))
	for k, v := range s.feedErrors {
		out[k] = v
	}
	return out
}

// AllFailed reports whether every source of the last pass failed.
func (s *Store) AllFailed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.allFailed
}

// FindByID looks an event up in the last pass. Satisfies the resolver's
// match-scoped lookup without re-fetching every feed.
func (s *Store) FindByID(_ context.Context, id string) (models.Event, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ev := range s.events {
		if ev.ID == id {
			return ev, true, nil
		}
	}
	return models.Event{}, false, nil
}
