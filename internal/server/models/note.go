package models

import "time"

// Note is a single saved note. Notes are append-only: once created they are
// never edited or deleted. Tags carry set semantics and are deduplicated
// before persisting. The JSON field names match the persisted shape and the
// mirrored snapshot exactly.
type Note struct {
	ID        string    `json:"-"`
	Text      string    `json:"note"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}
