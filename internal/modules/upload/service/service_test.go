package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	statsService "github.com/efrenfb/telegram-inbox-bot/internal/modules/stats/service"
	"github.com/efrenfb/telegram-inbox-bot/internal/modules/upload/domain"
	"github.com/efrenfb/telegram-inbox-bot/internal/modules/upload/repository"
	sharedErrors "github.com/efrenfb/telegram-inbox-bot/internal/shared/errors"
)

const maxBytes = 20 * 1024 * 1024

func fetchString(s string) FetchFunc {
	return func(ctx context.Context) (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(s)), nil
	}
}

func newTestService(t *testing.T) (*Service, *statsService.Service) {
	t.Helper()
	repo, err := repository.NewFileStorage(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	stats := statsService.New(true)
	return New(repo, stats, maxBytes), stats
}

func TestStore_TooLarge(t *testing.T) {
	svc, stats := newTestService(t)

	fetched := false
	fetch := func(ctx context.Context) (io.ReadCloser, error) {
		fetched = true
		return io.NopCloser(strings.NewReader("x")), nil
	}

	_, err := svc.Store(context.Background(), domain.CategoryDocument, 7, "big.bin", 25*1024*1024, fetch)
	if !errors.Is(err, sharedErrors.ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
	if fetched {
		t.Error("oversized upload must be rejected before any download")
	}
	if stats.Snapshot().Documents != 0 {
		t.Error("counter must not move on rejection")
	}
}

func TestStore_DocumentSuccess(t *testing.T) {
	svc, stats := newTestService(t)

	stored, err := svc.Store(context.Background(), domain.CategoryDocument, 7, "report.pdf", 1024*1024, fetchString("content"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stored.Name != "7_report.pdf" {
		t.Errorf("expected 7_report.pdf, got %q", stored.Name)
	}
	if stored.SizeBytes != int64(len("content")) {
		t.Errorf("unexpected size %d", stored.SizeBytes)
	}
	if stats.Snapshot().Documents != 1 {
		t.Errorf("expected document counter 1, got %d", stats.Snapshot().Documents)
	}
}

func TestStore_PhotoName(t *testing.T) {
	svc, stats := newTestService(t)

	stored, err := svc.Store(context.Background(), domain.CategoryPhoto, 3, "AQADabc", 0, fetchString("img"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stored.Name != "photo_3_AQADabc.jpg" {
		t.Errorf("expected synthetic photo name, got %q", stored.Name)
	}
	if stats.Snapshot().Photos != 1 {
		t.Errorf("expected photo counter 1, got %d", stats.Snapshot().Photos)
	}
}

func TestStore_FetchFailure(t *testing.T) {
	svc, stats := newTestService(t)

	fetch := func(ctx context.Context) (io.ReadCloser, error) {
		return nil, errors.New("connection reset")
	}

	if _, err := svc.Store(context.Background(), domain.CategoryPhoto, 7, "abc", 0, fetch); err == nil {
		t.Fatal("expected an error")
	}
	if stats.Snapshot().Photos != 0 {
		t.Error("counter must not move on fetch failure")
	}
}

func TestStore_WriteFailure(t *testing.T) {
	repo := &failingRepo{}
	stats := statsService.New(true)
	svc := New(repo, stats, maxBytes)

	if _, err := svc.Store(context.Background(), domain.CategoryDocument, 7, "report.pdf", 0, fetchString("x")); err == nil {
		t.Fatal("expected an error")
	}
	if stats.Snapshot().Documents != 0 {
		t.Error("counter must not move on write failure")
	}
}

type failingRepo struct{}

func (*failingRepo) Save(domain.Category, string, io.Reader) (*domain.StoredFile, error) {
	return nil, errors.New("disk full")
}

func (*failingRepo) ListRecent(domain.Category, int) ([]*domain.StoredFile, error) {
	return nil, nil
}
