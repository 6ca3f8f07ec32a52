package repository

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/efrenfb/telegram-inbox-bot/internal/modules/upload/domain"
	sharedErrors "github.com/efrenfb/telegram-inbox-bot/internal/shared/errors"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

// MaxNameLength is the upper bound on a sanitized filename.
const MaxNameLength = 200

var (
	pathSeparators  = regexp.MustCompile(`[\\/]`)
	disallowedChars = regexp.MustCompile(`[^A-Za-z0-9_.\-() ]+`)
)

// FileStorage implements upload.Repository on the local file system,
// with one subdirectory per category
type FileStorage struct {
	basePath string
	mu       sync.Mutex
}

// NewFileStorage creates a new file-based upload repository
func NewFileStorage(basePath string) (Repository, error) {
	for _, dir := range []string{"photos", "files"} {
		if err := os.MkdirAll(filepath.Join(basePath, dir), 0755); err != nil {
			return nil, oops.With("base_path", basePath, "context", "failed to create "+dir+" directory").Wrap(err)
		}
	}

	return &FileStorage{basePath: basePath}, nil
}

// Sanitize normalizes a proposed filename: path separators become
// underscores, everything outside [A-Za-z0-9_.\-() and space] is stripped,
// and the result is capped at MaxNameLength characters.
func Sanitize(name string) string {
	name = pathSeparators.ReplaceAllString(name, "_")
	name = disallowedChars.ReplaceAllString(name, "")
	if len(name) > MaxNameLength {
		name = name[:MaxNameLength]
	}
	return name
}

// Save streams r to a temporary file in the category directory and renames
// it into place once the copy has fully succeeded, so a dropped download
// never leaves a partial file at the final path.
func (s *FileStorage) Save(category domain.Category, name string, r io.Reader) (*domain.StoredFile, error) {
	dir, err := s.categoryDir(category)
	if err != nil {
		return nil, err
	}

	sanitized := Sanitize(name)
	if sanitized == "" {
		sanitized = "upload"
	}

	tmp, err := os.CreateTemp(dir, ".part-*")
	if err != nil {
		return nil, oops.With("category", category, "context", "failed to create temp file").Wrap(err)
	}

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, oops.With("category", category, "name", sanitized, "context", "failed to write upload").Wrap(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return nil, oops.With("category", category, "name", sanitized, "context", "failed to finalize upload").Wrap(err)
	}

	// Name resolution and rename happen under the lock so two stores that
	// sanitize to the same name end up with distinct files.
	s.mu.Lock()
	defer s.mu.Unlock()

	final := resolveCollision(dir, sanitized)
	if err := os.Rename(tmp.Name(), filepath.Join(dir, final)); err != nil {
		os.Remove(tmp.Name())
		return nil, oops.With("category", category, "name", final, "context", "failed to move upload into place").Wrap(err)
	}

	return &domain.StoredFile{
		Name:      final,
		Category:  category,
		SizeBytes: size,
		StoredAt:  time.Now(),
	}, nil
}

// ListRecent returns up to limit stored files of a category, newest first,
// from the directory listing (the only persisted record).
func (s *FileStorage) ListRecent(category domain.Category, limit int) ([]*domain.StoredFile, error) {
	dir, err := s.categoryDir(category)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []*domain.StoredFile{}, nil
		}
		return nil, oops.With("category", category, "dir", dir, "context", "failed to read upload directory").Wrap(err)
	}

	files := lo.FilterMap(entries, func(entry os.DirEntry, _ int) (*domain.StoredFile, bool) {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".part-") {
			return nil, false
		}

		info, err := entry.Info()
		if err != nil {
			return nil, false
		}

		return &domain.StoredFile{
			Name:      entry.Name(),
			Category:  category,
			SizeBytes: info.Size(),
			StoredAt:  info.ModTime(),
		}, true
	})

	sort.Slice(files, func(i, j int) bool {
		return files[i].StoredAt.After(files[j].StoredAt)
	})

	if limit > 0 && len(files) > limit {
		files = files[:limit]
	}

	return files, nil
}

// CategoryDirName maps a category to its subdirectory under the base path.
func CategoryDirName(category domain.Category) (string, error) {
	switch category {
	case domain.CategoryPhoto:
		return "photos", nil
	case domain.CategoryDocument:
		return "files", nil
	default:
		return "", oops.With("category", category).Wrap(sharedErrors.ErrCategoryUnknown)
	}
}

func (s *FileStorage) categoryDir(category domain.Category) (string, error) {
	dir, err := CategoryDirName(category)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.basePath, dir), nil
}

// resolveCollision picks a final name that is not already taken, adding a
// deterministic _1, _2, ... suffix before the extension when needed. The
// result never exceeds MaxNameLength.
func resolveCollision(dir, name string) string {
	if _, err := os.Stat(filepath.Join(dir, name)); os.IsNotExist(err) {
		return name
	}

	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)

	for i := 1; ; i++ {
		suffix := fmt.Sprintf("_%d", i)
		trimmed := base
		if over := len(trimmed) + len(suffix) + len(ext) - MaxNameLength; over > 0 && over <= len(trimmed) {
			trimmed = trimmed[:len(trimmed)-over]
		}
		candidate := trimmed + suffix + ext
		if _, err := os.Stat(filepath.Join(dir, candidate)); os.IsNotExist(err) {
			return candidate
		}
	}
}
