package repository

import (
	"io"

	"github.com/efrenfb/telegram-inbox-bot/internal/modules/upload/domain"
)

// Repository defines the interface for stored upload persistence
type Repository interface {
	Save(category domain.Category, name string, r io.Reader) (*domain.StoredFile, error)
	ListRecent(category domain.Category, limit int) ([]*domain.StoredFile, error)
}
