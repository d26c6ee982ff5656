package services

import (
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	goredis "github.com/daniluce/portfolio-backend/internal/clients/redis"
	"github.com/daniluce/portfolio-backend/internal/data/repos"
	"github.com/daniluce/portfolio-backend/internal/domain"
	"github.com/daniluce/portfolio-backend/internal/platform/dbctx"
	"github.com/daniluce/portfolio-backend/internal/platform/logger"
)

// Fallback values for optional photo columns. shapePhotos is the single
// place these are applied, so the full listing and the session detail can
// never drift apart on defaults.
const (
	FallbackLocation  = "Unknown location"
	FallbackDateTaken = "Date unknown"
)

// CatalogService is the read side of the catalog: photos joined against
// their tags, one shaped row per photo.
type CatalogService interface {
	ListPhotos(dbc dbctx.Context, filter repos.ListFilter) ([]domain.PhotoView, error)
	// ShapePhotos resolves fallbacks and merges tag names for rows
	// loaded elsewhere (session views reuse it).
	ShapePhotos(dbc dbctx.Context, photos []*domain.Photo) ([]domain.PhotoView, error)
}

type catalogService struct {
	db           *gorm.DB
	log          *logger.Logger
	photoRepo    repos.PhotoRepo
	photoTagRepo repos.PhotoTagRepo
	cache        *goredis.Cache
}

func NewCatalogService(
	db *gorm.DB,
	baseLog *logger.Logger,
	photoRepo repos.PhotoRepo,
	photoTagRepo repos.PhotoTagRepo,
	cache *goredis.Cache,
) CatalogService {
	serviceLog := baseLog.With("service", "CatalogService")
	return &catalogService{
		db:           db,
		log:          serviceLog,
		photoRepo:    photoRepo,
		photoTagRepo: photoTagRepo,
		cache:        cache,
	}
}

func (cs *catalogService) ListPhotos(dbc dbctx.Context, filter repos.ListFilter) ([]domain.PhotoView, error) {
	cacheable := cs.cacheableFilter(filter)
	if cacheable {
		if raw, ok := cs.cache.Get(dbc.Ctx, goredis.KeyPhotoList); ok {
			var views []domain.PhotoView
			if err := json.Unmarshal(raw, &views); err == nil {
				return views, nil
			}
		}
	}

	photos, err := cs.photoRepo.List(dbc, filter)
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	views, err := cs.ShapePhotos(dbc, photos)
	if err != nil {
		return nil, err
	}

	if cacheable {
		if raw, err := json.Marshal(views); err == nil {
			cs.cache.Set(dbc.Ctx, goredis.KeyPhotoList, raw)
		}
	}
	return views, nil
}

func (cs *catalogService) ShapePhotos(dbc dbctx.Context, photos []*domain.Photo) ([]domain.PhotoView, error) {
	views := make([]domain.PhotoView, 0, len(photos))
	if len(photos) == 0 {
		return views, nil
	}

	ids := make([]int64, 0, len(photos))
	for _, p := range photos {
		ids = append(ids, p.ID)
	}
	tagsByPhoto, err := cs.photoTagRepo.TagNamesByPhotoIDs(dbc, ids)
	if err != nil {
		return nil, fmt.Errorf("load tags: %w", err)
	}

	for _, p := range photos {
		views = append(views, shapePhoto(p, tagsByPhoto[p.ID]))
	}
	return views, nil
}

// shapePhoto applies the documented fallback chain: session_slug falls
// back to the photo's own slug, location and date_taken to fixed
// placeholders.
func shapePhoto(p *domain.Photo, tags []string) domain.PhotoView {
	if tags == nil {
		tags = []string{}
	}
	view := domain.PhotoView{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Excerpt:     p.Excerpt,
		Location:    p.Location,
		DateTaken:   FallbackDateTaken,
		Category:    p.Category,
		SessionSlug: p.EffectiveSession(),
		Filename:    p.Filename,
		Filepath:    p.Filepath,
		Published:   p.Published,
		CreatedAt:   p.CreatedAt,
		Tags:        tags,
	}
	if view.Location == "" {
		view.Location = FallbackLocation
	}
	if p.DateTaken != nil && *p.DateTaken != "" {
		view.DateTaken = *p.DateTaken
	}
	if p.ThumbPath != nil {
		view.ThumbPath = *p.ThumbPath
	}
	return view
}

// cacheableFilter limits caching to the default listing shape; filtered
// queries go to the database every time.
func (cs *catalogService) cacheableFilter(filter repos.ListFilter) bool {
	if cs.cache == nil {
		return false
	}
	return filter.Category == "" && filter.Published == nil && filter.Limit <= 0
}
