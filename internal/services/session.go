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
	"github.com/daniluce/portfolio-backend/internal/platform/slug"
)

// SessionService groups photos by session slug. Sessions are virtual:
// they exist exactly as long as published rows share a slug.
type SessionService interface {
	DeriveSlug(albumName string) string
	// ListSessions returns one summary per distinct non-empty published
	// session slug: the most recently created photo as cover plus the
	// published count, ordered by cover creation time descending.
	ListSessions(dbc dbctx.Context) ([]domain.SessionSummary, error)
	// GetSession returns all published photos sharing the slug, newest
	// first. When nothing matches, it falls back to the single published
	// photo whose own slug equals the requested value; when neither
	// matches the detail is empty, not an error.
	GetSession(dbc dbctx.Context, sessionSlug string) (*domain.SessionDetail, error)
}

type sessionService struct {
	db        *gorm.DB
	log       *logger.Logger
	photoRepo repos.PhotoRepo
	catalog   CatalogService
	cache     *goredis.Cache
}

func NewSessionService(
	db *gorm.DB,
	baseLog *logger.Logger,
	photoRepo repos.PhotoRepo,
	catalog CatalogService,
	cache *goredis.Cache,
) SessionService {
	serviceLog := baseLog.With("service", "SessionService")
	return &sessionService{
		db:        db,
		log:       serviceLog,
		photoRepo: photoRepo,
		catalog:   catalog,
		cache:     cache,
	}
}

func (ss *sessionService) DeriveSlug(albumName string) string {
	return slug.Make(albumName)
}

func (ss *sessionService) ListSessions(dbc dbctx.Context) ([]domain.SessionSummary, error) {
	if raw, ok := ss.cache.Get(dbc.Ctx, goredis.KeySessionList); ok {
		var cached []domain.SessionSummary
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
	}

	// Rows arrive ordered created_at desc, id desc; the first row seen
	// per slug is therefore the cover, and group order follows cover
	// recency.
	photos, err := ss.photoRepo.ListPublishedWithSession(dbc)
	if err != nil {
		return nil, fmt.Errorf("list session photos: %w", err)
	}

	covers := make([]*domain.Photo, 0)
	counts := make(map[string]int)
	for _, p := range photos {
		key := *p.SessionSlug
		if _, seen := counts[key]; !seen {
			covers = append(covers, p)
		}
		counts[key]++
	}

	coverViews, err := ss.catalog.ShapePhotos(dbc, covers)
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.SessionSummary, 0, len(coverViews))
	for i, view := range coverViews {
		summaries = append(summaries, domain.SessionSummary{
			PhotoView:  view,
			PhotoCount: counts[*covers[i].SessionSlug],
		})
	}

	if raw, err := json.Marshal(summaries); err == nil {
		ss.cache.Set(dbc.Ctx, goredis.KeySessionList, raw)
	}
	return summaries, nil
}

func (ss *sessionService) GetSession(dbc dbctx.Context, sessionSlug string) (*domain.SessionDetail, error) {
	photos, err := ss.photoRepo.GetPublishedBySessionSlug(dbc, sessionSlug)
	if err != nil {
		return nil, fmt.Errorf("load session %q: %w", sessionSlug, err)
	}

	if len(photos) == 0 {
		single, err := ss.photoRepo.GetPublishedBySlug(dbc, sessionSlug)
		if err != nil {
			return nil, fmt.Errorf("load photo by slug %q: %w", sessionSlug, err)
		}
		if single != nil {
			photos = []*domain.Photo{single}
		}
	}

	views, err := ss.catalog.ShapePhotos(dbc, photos)
	if err != nil {
		return nil, err
	}
	return &domain.SessionDetail{Slug: sessionSlug, Photos: views}, nil
}
