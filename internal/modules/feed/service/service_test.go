package service

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/efrenfb/telegram-inbox-bot/internal/modules/upload/domain"
)

type fakeRepo struct {
	files []*domain.StoredFile
}

func (f *fakeRepo) Save(domain.Category, string, io.Reader) (*domain.StoredFile, error) {
	return nil, nil
}

func (f *fakeRepo) ListRecent(domain.Category, int) ([]*domain.StoredFile, error) {
	return f.files, nil
}

func TestGenerateFeed(t *testing.T) {
	now := time.Now()
	repo := &fakeRepo{files: []*domain.StoredFile{
		{Name: "photo_7_abc.jpg", Category: domain.CategoryPhoto, SizeBytes: 100, StoredAt: now},
		{Name: "photo_9_def.jpg", Category: domain.CategoryPhoto, SizeBytes: 200, StoredAt: now.Add(-time.Minute)},
	}}

	feed, err := New(repo).GenerateFeed(domain.CategoryPhoto, "http://localhost:8080")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if feed.Title != "Recent photo uploads" {
		t.Errorf("unexpected title %q", feed.Title)
	}
	if len(feed.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(feed.Items))
	}
	if feed.Items[0].Title != "photo_7_abc.jpg" {
		t.Errorf("unexpected first item %q", feed.Items[0].Title)
	}
	if !strings.Contains(feed.Items[0].Link.Href, "/files/photos/") {
		t.Errorf("item link should point at the photos dir, got %q", feed.Items[0].Link.Href)
	}
	if !feed.Updated.Equal(now) {
		t.Errorf("feed updated should be the newest file time")
	}
}

func TestGenerateFeed_Empty(t *testing.T) {
	feed, err := New(&fakeRepo{}).GenerateFeed(domain.CategoryDocument, "http://localhost:8080")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(feed.Items) != 0 {
		t.Errorf("expected no items, got %d", len(feed.Items))
	}

	if _, err := feed.ToRss(); err != nil {
		t.Errorf("empty feed should still render: %v", err)
	}
}
