package domain

// Entry is one keyword rule: a pattern and the replies it can produce.
// Table order matters — the first entry whose pattern matches wins.
type Entry struct {
	Pattern string   `json:"pattern"`
	Replies []string `json:"replies"`
}
