package repos

import (
	"gorm.io/gorm"

	"github.com/daniluce/portfolio-backend/internal/domain"
	"github.com/daniluce/portfolio-backend/internal/platform/dbctx"
	"github.com/daniluce/portfolio-backend/internal/platform/logger"
)

// ListFilter narrows the catalog listing. Published nil means
// published-only (the default visibility gate); false includes
// unpublished rows. Limit <= 0 means no cap.
type ListFilter struct {
	Category  string
	Published *bool
	Limit     int
}

type PhotoRepo interface {
	Create(dbc dbctx.Context, photos []*domain.Photo) ([]*domain.Photo, error)
	GetByIDs(dbc dbctx.Context, photoIDs []int64) ([]*domain.Photo, error)
	List(dbc dbctx.Context, filter ListFilter) ([]*domain.Photo, error)
	ListPublishedWithSession(dbc dbctx.Context) ([]*domain.Photo, error)
	GetPublishedBySessionSlug(dbc dbctx.Context, sessionSlug string) ([]*domain.Photo, error)
	GetPublishedBySlug(dbc dbctx.Context, photoSlug string) (*domain.Photo, error)
	Update(dbc dbctx.Context, photo *domain.Photo) error
	FullDeleteByIDs(dbc dbctx.Context, photoIDs []int64) error
}

type photoRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPhotoRepo(db *gorm.DB, baseLog *logger.Logger) PhotoRepo {
	repoLog := baseLog.With("repo", "PhotoRepo")
	return &photoRepo{db: db, log: repoLog}
}

func (r *photoRepo) Create(dbc dbctx.Context, photos []*domain.Photo) ([]*domain.Photo, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	if len(photos) == 0 {
		return []*domain.Photo{}, nil
	}

	if err := transaction.WithContext(dbc.Ctx).Create(&photos).Error; err != nil {
		return nil, err
	}
	return photos, nil
}

func (r *photoRepo) GetByIDs(dbc dbctx.Context, photoIDs []int64) ([]*domain.Photo, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.Photo
	if len(photoIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(dbc.Ctx).
		Where("id IN ?", photoIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *photoRepo) List(dbc dbctx.Context, filter ListFilter) ([]*domain.Photo, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	q := transaction.WithContext(dbc.Ctx).Model(&domain.Photo{})
	if filter.Published == nil || *filter.Published {
		q = q.Where("published = ?", true)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	q = q.Order("created_at DESC").Order("id DESC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var results []*domain.Photo
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *photoRepo) ListPublishedWithSession(dbc dbctx.Context) ([]*domain.Photo, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.Photo
	if err := transaction.WithContext(dbc.Ctx).
		Where("published = ?", true).
		Where("session_slug IS NOT NULL AND session_slug <> ''").
		Order("created_at DESC").
		Order("id DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *photoRepo) GetPublishedBySessionSlug(dbc dbctx.Context, sessionSlug string) ([]*domain.Photo, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.Photo
	if err := transaction.WithContext(dbc.Ctx).
		Where("published = ?", true).
		Where("session_slug = ?", sessionSlug).
		Order("created_at DESC").
		Order("id DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *photoRepo) GetPublishedBySlug(dbc dbctx.Context, photoSlug string) (*domain.Photo, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.Photo
	if err := transaction.WithContext(dbc.Ctx).
		Where("published = ?", true).
		Where("slug = ?", photoSlug).
		Order("created_at DESC").
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *photoRepo) Update(dbc dbctx.Context, photo *domain.Photo) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(dbc.Ctx).Save(photo).Error
}

func (r *photoRepo) FullDeleteByIDs(dbc dbctx.Context, photoIDs []int64) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	if len(photoIDs) == 0 {
		return nil
	}

	return transaction.WithContext(dbc.Ctx).
		Where("id IN ?", photoIDs).
		Delete(&domain.Photo{}).Error
}
