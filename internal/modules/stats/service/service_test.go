package service

import (
	"sync"
	"testing"

	"github.com/efrenfb/telegram-inbox-bot/internal/modules/upload/domain"
)

func TestToggleForward_ReturnsNewValue(t *testing.T) {
	s := New(true)

	if got := s.ToggleForward(); got != false {
		t.Errorf("expected first toggle to return false, got %v", got)
	}
	if s.ForwardEnabled() {
		t.Error("flag should be off after one toggle")
	}
}

func TestToggleForward_TwiceRestoresOriginal(t *testing.T) {
	for _, initial := range []bool{true, false} {
		s := New(initial)
		s.ToggleForward()
		s.ToggleForward()
		if s.ForwardEnabled() != initial {
			t.Errorf("initial=%v: double toggle should restore the original value", initial)
		}
	}
}

func TestIncrementUpload_Concurrent(t *testing.T) {
	s := New(true)

	const n = 200
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			s.IncrementUpload(domain.CategoryPhoto)
		}()
	}
	wg.Wait()

	if got := s.Snapshot().Photos; got != n {
		t.Errorf("expected %d photos with no lost updates, got %d", n, got)
	}
}

func TestIncrementUpload_SeparateCounters(t *testing.T) {
	s := New(false)

	s.IncrementUpload(domain.CategoryPhoto)
	s.IncrementUpload(domain.CategoryDocument)
	s.IncrementUpload(domain.CategoryDocument)

	snap := s.Snapshot()
	if snap.Photos != 1 {
		t.Errorf("expected 1 photo, got %d", snap.Photos)
	}
	if snap.Documents != 2 {
		t.Errorf("expected 2 documents, got %d", snap.Documents)
	}
	if snap.AutoForward {
		t.Error("expected auto-forward off")
	}
}
