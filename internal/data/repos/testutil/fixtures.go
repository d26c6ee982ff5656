package testutil

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/daniluce/portfolio-backend/internal/domain"
)

// PhotoFixture describes one seeded catalog row. Zero values get sensible
// test defaults.
type PhotoFixture struct {
	Title       string
	Slug        string
	Category    string
	SessionSlug string
	Location    string
	DateTaken   string
	Published   bool
	CreatedAt   time.Time
}

func SeedPhoto(tb testing.TB, tx *gorm.DB, f PhotoFixture) *domain.Photo {
	tb.Helper()

	if f.Title == "" {
		f.Title = "untitled"
	}
	if f.Slug == "" {
		f.Slug = "untitled"
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now()
	}

	p := &domain.Photo{
		Title:     f.Title,
		Slug:      f.Slug,
		Category:  f.Category,
		Location:  f.Location,
		Filename:  f.Slug + ".jpg",
		Filepath:  "/media/" + f.Slug + ".jpg",
		Published: f.Published,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.CreatedAt,
	}
	if f.SessionSlug != "" {
		p.SessionSlug = &f.SessionSlug
	}
	if f.DateTaken != "" {
		p.DateTaken = &f.DateTaken
	}
	if err := tx.Create(p).Error; err != nil {
		tb.Fatalf("seed photo %q: %v", f.Title, err)
	}
	return p
}

func SeedTag(tb testing.TB, tx *gorm.DB, name, slug string) *domain.Tag {
	tb.Helper()
	t := &domain.Tag{Name: name, Slug: slug}
	if err := tx.Create(t).Error; err != nil {
		tb.Fatalf("seed tag %q: %v", name, err)
	}
	return t
}
