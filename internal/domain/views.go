package domain

import "time"

// PhotoView is the shaped read-side row: optional columns resolved through
// the fallback chain and tag names merged in, sorted and deduplicated.
type PhotoView struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Excerpt     string    `json:"excerpt"`
	Location    string    `json:"location"`
	DateTaken   string    `json:"date_taken"`
	Category    string    `json:"category"`
	SessionSlug string    `json:"session_slug"`
	Filename    string    `json:"filename"`
	Filepath    string    `json:"filepath"`
	ThumbPath   string    `json:"thumb_path,omitempty"`
	Published   bool      `json:"published"`
	CreatedAt   time.Time `json:"created_at"`
	Tags        []string  `json:"tags"`
}

// SessionSummary is one row of the session listing: the cover photo plus
// the number of published photos sharing the session slug.
type SessionSummary struct {
	PhotoView
	PhotoCount int `json:"photo_count"`
}

// SessionDetail is every published photo in one session, newest first.
type SessionDetail struct {
	Slug   string      `json:"slug"`
	Photos []PhotoView `json:"photos"`
}
