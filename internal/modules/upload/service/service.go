package service

import (
	"context"
	"fmt"
	"io"

	statsService "github.com/efrenfb/telegram-inbox-bot/internal/modules/stats/service"
	"github.com/efrenfb/telegram-inbox-bot/internal/modules/upload/domain"
	"github.com/efrenfb/telegram-inbox-bot/internal/modules/upload/repository"
	"github.com/efrenfb/telegram-inbox-bot/internal/shared/errors"
	"github.com/samber/oops"
)

// FetchFunc retrieves the binary payload of an upload from the gateway.
// It is only called after the declared size has passed validation.
type FetchFunc func(ctx context.Context) (io.ReadCloser, error)

// Service handles upload business logic: size validation, filename
// composition, persistence and counting.
type Service struct {
	repo     repository.Repository
	stats    *statsService.Service
	maxBytes int64
}

// New creates a new upload service
func New(repo repository.Repository, stats *statsService.Service, maxBytes int64) *Service {
	return &Service{
		repo:     repo,
		stats:    stats,
		maxBytes: maxBytes,
	}
}

// Store validates, downloads and persists a single upload. declaredSize is
// the size announced by the gateway (0 when unknown, as for photos); when it
// exceeds the configured maximum the fetch never happens. On success the
// category counter is incremented exactly once.
func (s *Service) Store(ctx context.Context, category domain.Category, senderID int64, name string, declaredSize int64, fetch FetchFunc) (*domain.StoredFile, error) {
	if declaredSize > s.maxBytes {
		return nil, oops.With("category", category, "sender_id", senderID, "declared_size", declaredSize, "max_bytes", s.maxBytes).
			Wrap(errors.ErrFileTooLarge)
	}

	body, err := fetch(ctx)
	if err != nil {
		return nil, oops.With("category", category, "sender_id", senderID, "context", "failed to download upload").Wrap(err)
	}
	defer body.Close()

	stored, err := s.repo.Save(category, composeName(category, senderID, name), body)
	if err != nil {
		return nil, oops.With("category", category, "sender_id", senderID, "context", "failed to store upload").Wrap(err)
	}

	s.stats.IncrementUpload(category)

	return stored, nil
}

// composeName builds the raw filename before sanitization: documents keep
// their declared name behind a sender prefix, photos get a synthetic name
// from the remote file ID with a fixed extension.
func composeName(category domain.Category, senderID int64, name string) string {
	if category == domain.CategoryPhoto {
		return fmt.Sprintf("photo_%d_%s.jpg", senderID, name)
	}
	return fmt.Sprintf("%d_%s", senderID, name)
}
