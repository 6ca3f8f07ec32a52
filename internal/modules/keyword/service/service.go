package service

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/efrenfb/telegram-inbox-bot/internal/modules/keyword/domain"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

// Service matches inbound text against an ordered keyword table.
type Service struct {
	entries []entry
}

type entry struct {
	pattern *regexp.Regexp
	replies []string
}

// New compiles the table. Entries with invalid patterns are logged and
// skipped; the rest keep their configured order.
func New(entries []domain.Entry) *Service {
	compiled := lo.FilterMap(entries, func(e domain.Entry, _ int) (entry, bool) {
		re, err := regexp.Compile(e.Pattern)
		if err != nil {
			slog.Warn("Skipping keyword entry with invalid pattern", "pattern", e.Pattern, "error", err)
			return entry{}, false
		}
		return entry{pattern: re, replies: e.Replies}, true
	})

	return &Service{entries: compiled}
}

// Match lower-cases text once and walks the table in configured order. The
// first entry whose pattern matches anywhere in the text wins, even if later
// entries would also match; the reply is drawn at random from that entry's
// set. Returns false when nothing matches.
func (s *Service) Match(text string) (string, bool) {
	lowered := strings.ToLower(text)

	for _, e := range s.entries {
		if !e.pattern.MatchString(lowered) {
			continue
		}
		// An empty reply set on a matched entry is a config gap; treat it
		// as no match rather than sending an empty message.
		reply := lo.Sample(e.replies)
		if reply == "" {
			return "", false
		}
		return reply, true
	}

	return "", false
}

// Len reports how many usable entries the table holds.
func (s *Service) Len() int {
	return len(s.entries)
}

// LoadTable reads a keyword file: a JSON object mapping pattern to a list of
// replies. Key order in the file is the match order, so the object is decoded
// with a token stream instead of a Go map. A missing file yields an empty
// table; malformed content yields an error the caller can degrade on.
func LoadTable(path string) ([]domain.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, oops.With("path", path, "context", "failed to read keyword table").Wrap(err)
	}

	return parseTable(data, path)
}

func parseTable(data []byte, path string) ([]domain.Entry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, oops.With("path", path, "context", "failed to parse keyword table").Wrap(err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, oops.With("path", path).Errorf("keyword table must be a JSON object")
	}

	var entries []domain.Entry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, oops.With("path", path, "context", "failed to parse keyword table key").Wrap(err)
		}
		pattern, ok := keyTok.(string)
		if !ok {
			return nil, oops.With("path", path).Errorf("keyword table key is not a string")
		}

		var replies []string
		if err := dec.Decode(&replies); err != nil {
			return nil, oops.With("path", path, "pattern", pattern, "context", "failed to parse keyword replies").Wrap(err)
		}

		entries = append(entries, domain.Entry{Pattern: pattern, Replies: replies})
	}

	return entries, nil
}
