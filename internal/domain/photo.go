package domain

import (
	"time"
)

// Photo is one catalog row. Filepath is always a root-relative web path
// (e.g. /media/1693526400000_pier.jpg), never a filesystem path.
type Photo struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string     `gorm:"not null;column:title" json:"title"`
	Slug        string     `gorm:"not null;index;column:slug" json:"slug"`
	Excerpt     string     `gorm:"column:excerpt" json:"excerpt"`
	Location    string     `gorm:"column:location" json:"location"`
	DateTaken   *string    `gorm:"column:date_taken" json:"date_taken"`
	Category    string     `gorm:"column:category" json:"category"`
	SessionSlug *string    `gorm:"index:idx_photos_session_slug;column:session_slug" json:"session_slug"`
	Filename    string     `gorm:"not null;column:filename" json:"filename"`
	Filepath    string     `gorm:"not null;column:filepath" json:"filepath"`
	ThumbPath   *string    `gorm:"column:thumb_path" json:"thumb_path,omitempty"`
	Published   bool       `gorm:"not null;default:false;column:published" json:"published"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`
}

func (Photo) TableName() string {
	return "photos"
}

// EffectiveSession is the grouping key every read view agrees on: the
// stamped session slug when present, otherwise the photo's own slug.
func (p *Photo) EffectiveSession() string {
	if p.SessionSlug != nil && *p.SessionSlug != "" {
		return *p.SessionSlug
	}
	return p.Slug
}
