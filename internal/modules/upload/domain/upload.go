package domain

import "time"

// StoredFile describes a media file persisted to the download directory.
type StoredFile struct {
	Name      string    `json:"name"`
	Category  Category  `json:"category"`
	SizeBytes int64     `json:"size_bytes"`
	StoredAt  time.Time `json:"stored_at"`
}
