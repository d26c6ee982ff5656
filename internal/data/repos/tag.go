package repos

import (
	"gorm.io/gorm"

	"github.com/daniluce/portfolio-backend/internal/domain"
	"github.com/daniluce/portfolio-backend/internal/platform/dbctx"
	"github.com/daniluce/portfolio-backend/internal/platform/logger"
)

type TagRepo interface {
	Create(dbc dbctx.Context, tag *domain.Tag) error
	GetByName(dbc dbctx.Context, name string) (*domain.Tag, error)
	GetByNameOrSlug(dbc dbctx.Context, name, tagSlug string) (*domain.Tag, error)
}

type tagRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTagRepo(db *gorm.DB, baseLog *logger.Logger) TagRepo {
	repoLog := baseLog.With("repo", "TagRepo")
	return &tagRepo{db: db, log: repoLog}
}

func (r *tagRepo) Create(dbc dbctx.Context, tag *domain.Tag) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(dbc.Ctx).Create(tag).Error
}

func (r *tagRepo) GetByName(dbc dbctx.Context, name string) (*domain.Tag, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.Tag
	if err := transaction.WithContext(dbc.Ctx).
		Where("name = ?", name).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *tagRepo) GetByNameOrSlug(dbc dbctx.Context, name, tagSlug string) (*domain.Tag, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.Tag
	if err := transaction.WithContext(dbc.Ctx).
		Where("name = ? OR slug = ?", name, tagSlug).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}
