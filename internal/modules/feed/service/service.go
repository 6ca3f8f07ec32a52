package service

import (
	"fmt"
	"net/url"
	"time"

	"github.com/efrenfb/telegram-inbox-bot/internal/modules/upload/domain"
	uploadRepo "github.com/efrenfb/telegram-inbox-bot/internal/modules/upload/repository"
	"github.com/gorilla/feeds"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

// Service generates RSS feeds of recently stored uploads
type Service struct {
	repo uploadRepo.Repository
}

// New creates a new feed service
func New(repo uploadRepo.Repository) *Service {
	return &Service{repo: repo}
}

// GenerateFeed builds an RSS feed for one upload category from the
// directory listing, newest first.
func (s *Service) GenerateFeed(category domain.Category, baseURL string) (*feeds.Feed, error) {
	files, err := s.repo.ListRecent(category, 50)
	if err != nil {
		return nil, oops.With("category", category, "context", "failed to list uploads").Wrap(err)
	}

	dirName, err := uploadRepo.CategoryDirName(category)
	if err != nil {
		return nil, err
	}

	updated := time.Now()
	if len(files) > 0 {
		updated = files[0].StoredAt
	}

	feed := &feeds.Feed{
		Title:       fmt.Sprintf("Recent %s uploads", category),
		Link:        &feeds.Link{Href: fmt.Sprintf("%s/uploads/%s", baseURL, category)},
		Description: fmt.Sprintf("Files of category %s received by the bot", category),
		Updated:     updated,
	}

	feed.Items = lo.Map(files, func(f *domain.StoredFile, _ int) *feeds.Item {
		return s.fileToFeedItem(f, dirName, baseURL)
	})

	return feed, nil
}

func (s *Service) fileToFeedItem(f *domain.StoredFile, dirName, baseURL string) *feeds.Item {
	link := fmt.Sprintf("%s/files/%s/%s", baseURL, dirName, url.PathEscape(f.Name))

	return &feeds.Item{
		Title:       f.Name,
		Link:        &feeds.Link{Href: link},
		Description: fmt.Sprintf("%s upload, %d bytes", f.Category, f.SizeBytes),
		Created:     f.StoredAt,
		Id:          fmt.Sprintf("%s-%s", f.Category, f.Name),
	}
}
