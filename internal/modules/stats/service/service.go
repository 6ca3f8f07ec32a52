package service

import (
	"sync/atomic"

	"github.com/efrenfb/telegram-inbox-bot/internal/modules/upload/domain"
)

// Service holds the bot's runtime state: the auto-forward toggle and the
// per-category upload counters. All access is atomic per field; events are
// dispatched concurrently and must never read-modify-write these directly.
type Service struct {
	autoForward atomic.Bool
	photos      atomic.Int64
	documents   atomic.Int64
}

// Snapshot is a point-in-time view of the runtime state.
type Snapshot struct {
	AutoForward bool
	Photos      int64
	Documents   int64
}

// New creates the runtime state with the configured auto-forward default.
func New(autoForward bool) *Service {
	s := &Service{}
	s.autoForward.Store(autoForward)
	return s
}

// ToggleForward flips the auto-forward flag and returns the new value.
func (s *Service) ToggleForward() bool {
	for {
		old := s.autoForward.Load()
		if s.autoForward.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// ForwardEnabled reports the current auto-forward flag.
func (s *Service) ForwardEnabled() bool {
	return s.autoForward.Load()
}

// IncrementUpload bumps the counter for a category after a successful store.
func (s *Service) IncrementUpload(category domain.Category) {
	switch category {
	case domain.CategoryPhoto:
		s.photos.Add(1)
	case domain.CategoryDocument:
		s.documents.Add(1)
	}
}

// Snapshot returns the current counters and flag. Fields are read
// independently; there is no cross-field transaction.
func (s *Service) Snapshot() Snapshot {
	return Snapshot{
		AutoForward: s.autoForward.Load(),
		Photos:      s.photos.Load(),
		Documents:   s.documents.Load(),
	}
}
