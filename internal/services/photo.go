package services

import (
	"fmt"
	"os"

	"gorm.io/gorm"

	goredis "github.com/daniluce/portfolio-backend/internal/clients/redis"
	"github.com/daniluce/portfolio-backend/internal/data/repos"
	"github.com/daniluce/portfolio-backend/internal/domain"
	"github.com/daniluce/portfolio-backend/internal/platform/apierr"
	"github.com/daniluce/portfolio-backend/internal/platform/dbctx"
	"github.com/daniluce/portfolio-backend/internal/platform/logger"
	"github.com/daniluce/portfolio-backend/internal/platform/slug"
	"github.com/daniluce/portfolio-backend/internal/platform/storage"
)

type CreatePhotoInput struct {
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Excerpt     string   `json:"excerpt"`
	Location    string   `json:"location"`
	DateTaken   *string  `json:"date_taken"`
	Category    string   `json:"category"`
	SessionSlug *string  `json:"session_slug"`
	Filename    string   `json:"filename"`
	Filepath    string   `json:"filepath"`
	Published   bool     `json:"published"`
	Tags        []string `json:"tags"`
}

type UpdatePhotoInput struct {
	Title     string  `json:"title"`
	Slug      string  `json:"slug"`
	Excerpt   string  `json:"excerpt"`
	Location  string  `json:"location"`
	DateTaken *string `json:"date_taken"`
	Category  string  `json:"category"`
	Published bool    `json:"published"`
	// Tags nil leaves the association set untouched; non-nil replaces
	// it entirely.
	Tags []string `json:"tags"`
}

// PhotoService owns single-photo writes. Each operation is one
// transaction: the only atomicity the catalog promises.
type PhotoService interface {
	Create(dbc dbctx.Context, input CreatePhotoInput) (int64, error)
	Update(dbc dbctx.Context, photoID int64, input UpdatePhotoInput) error
	Delete(dbc dbctx.Context, photoID int64) error
}

type photoService struct {
	db           *gorm.DB
	log          *logger.Logger
	photoRepo    repos.PhotoRepo
	photoTagRepo repos.PhotoTagRepo
	tagResolver  TagResolver
	store        *storage.Store
	cache        *goredis.Cache
}

func NewPhotoService(
	db *gorm.DB,
	baseLog *logger.Logger,
	photoRepo repos.PhotoRepo,
	photoTagRepo repos.PhotoTagRepo,
	tagResolver TagResolver,
	store *storage.Store,
	cache *goredis.Cache,
) PhotoService {
	serviceLog := baseLog.With("service", "PhotoService")
	return &photoService{
		db:           db,
		log:          serviceLog,
		photoRepo:    photoRepo,
		photoTagRepo: photoTagRepo,
		tagResolver:  tagResolver,
		store:        store,
		cache:        cache,
	}
}

func (ps *photoService) Create(dbc dbctx.Context, input CreatePhotoInput) (int64, error) {
	if input.Title == "" || input.Filename == "" || input.Filepath == "" {
		return 0, apierr.Validation("title, filename, and filepath are required")
	}

	photo := &domain.Photo{
		Title:       input.Title,
		Slug:        input.Slug,
		Excerpt:     input.Excerpt,
		Location:    input.Location,
		DateTaken:   emptyToNil(input.DateTaken),
		Category:    input.Category,
		SessionSlug: emptyToNil(input.SessionSlug),
		Filename:    input.Filename,
		Filepath:    input.Filepath,
		Published:   input.Published,
	}
	if photo.Slug == "" {
		photo.Slug = slug.Photo(input.Title)
	}

	err := ps.withTx(dbc, func(txc dbctx.Context) error {
		if _, err := ps.photoRepo.Create(txc, []*domain.Photo{photo}); err != nil {
			return fmt.Errorf("create photo: %w", err)
		}
		return ps.linkTags(txc, photo.ID, input.Tags)
	})
	if err != nil {
		return 0, err
	}

	ps.cache.InvalidateListings(dbc.Ctx)
	return photo.ID, nil
}

func (ps *photoService) Update(dbc dbctx.Context, photoID int64, input UpdatePhotoInput) error {
	if input.Title == "" {
		return apierr.Validation("title is required")
	}

	err := ps.withTx(dbc, func(txc dbctx.Context) error {
		rows, err := ps.photoRepo.GetByIDs(txc, []int64{photoID})
		if err != nil {
			return fmt.Errorf("load photo %d: %w", photoID, err)
		}
		if len(rows) == 0 {
			return apierr.NotFound("photo %d not found", photoID)
		}
		photo := rows[0]

		photo.Title = input.Title
		photo.Slug = input.Slug
		if photo.Slug == "" {
			photo.Slug = slug.Photo(input.Title)
		}
		photo.Excerpt = input.Excerpt
		photo.Location = input.Location
		photo.DateTaken = emptyToNil(input.DateTaken)
		photo.Category = input.Category
		photo.Published = input.Published

		if err := ps.photoRepo.Update(txc, photo); err != nil {
			return fmt.Errorf("update photo %d: %w", photoID, err)
		}

		if input.Tags != nil {
			// Replace, not merge: drop the whole association set and
			// rebuild it from the supplied names.
			if err := ps.photoTagRepo.DeleteByPhotoIDs(txc, []int64{photoID}); err != nil {
				return fmt.Errorf("clear photo tags: %w", err)
			}
			if err := ps.linkTags(txc, photoID, input.Tags); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	ps.cache.InvalidateListings(dbc.Ctx)
	return nil
}

func (ps *photoService) Delete(dbc dbctx.Context, photoID int64) error {
	var filepaths []string

	err := ps.withTx(dbc, func(txc dbctx.Context) error {
		rows, err := ps.photoRepo.GetByIDs(txc, []int64{photoID})
		if err != nil {
			return fmt.Errorf("load photo %d: %w", photoID, err)
		}
		if len(rows) == 0 {
			return apierr.NotFound("photo %d not found", photoID)
		}
		photo := rows[0]
		filepaths = append(filepaths, photo.Filepath)
		if photo.ThumbPath != nil && *photo.ThumbPath != "" {
			filepaths = append(filepaths, *photo.ThumbPath)
		}

		if err := ps.photoTagRepo.DeleteByPhotoIDs(txc, []int64{photoID}); err != nil {
			return fmt.Errorf("delete photo tags: %w", err)
		}
		if err := ps.photoRepo.FullDeleteByIDs(txc, []int64{photoID}); err != nil {
			return fmt.Errorf("delete photo %d: %w", photoID, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	// The row is gone; a failed file removal leaves an orphan on disk,
	// which is logged and accepted rather than failing the request.
	for _, fp := range filepaths {
		if err := ps.store.Remove(fp); err != nil && !os.IsNotExist(err) {
			ps.log.Warn("failed to delete backing file", "photo_id", photoID, "filepath", fp, "error", err)
		}
	}

	ps.cache.InvalidateListings(dbc.Ctx)
	return nil
}

func (ps *photoService) linkTags(dbc dbctx.Context, photoID int64, tagNames []string) error {
	for _, name := range tagNames {
		if name == "" {
			continue
		}
		tagID, err := ps.tagResolver.Resolve(dbc, name)
		if err != nil {
			return fmt.Errorf("resolve tag %q: %w", name, err)
		}
		if err := ps.photoTagRepo.Link(dbc, photoID, tagID); err != nil {
			return fmt.Errorf("link tag %q: %w", name, err)
		}
	}
	return nil
}

func (ps *photoService) withTx(dbc dbctx.Context, fn func(dbctx.Context) error) error {
	if dbc.Tx != nil {
		return fn(dbc)
	}
	return ps.db.WithContext(dbc.Ctx).Transaction(func(tx *gorm.DB) error {
		return fn(dbctx.Context{Ctx: dbc.Ctx, Tx: tx})
	})
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
