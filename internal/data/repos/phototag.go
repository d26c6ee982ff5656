package repos

import (
	"sort"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/daniluce/portfolio-backend/internal/domain"
	"github.com/daniluce/portfolio-backend/internal/platform/dbctx"
	"github.com/daniluce/portfolio-backend/internal/platform/logger"
)

type PhotoTagRepo interface {
	// Link associates a photo with a tag. Linking an already-linked pair
	// is a no-op, not an error.
	Link(dbc dbctx.Context, photoID, tagID int64) error
	DeleteByPhotoIDs(dbc dbctx.Context, photoIDs []int64) error
	// TagNamesByPhotoIDs returns each photo's tag names sorted ascending
	// and deduplicated. Photos without tags are absent from the map.
	TagNamesByPhotoIDs(dbc dbctx.Context, photoIDs []int64) (map[int64][]string, error)
}

type photoTagRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPhotoTagRepo(db *gorm.DB, baseLog *logger.Logger) PhotoTagRepo {
	repoLog := baseLog.With("repo", "PhotoTagRepo")
	return &photoTagRepo{db: db, log: repoLog}
}

func (r *photoTagRepo) Link(dbc dbctx.Context, photoID, tagID int64) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	pt := &domain.PhotoTag{PhotoID: photoID, TagID: tagID}
	return transaction.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(pt).Error
}

func (r *photoTagRepo) DeleteByPhotoIDs(dbc dbctx.Context, photoIDs []int64) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	if len(photoIDs) == 0 {
		return nil
	}

	return transaction.WithContext(dbc.Ctx).
		Where("photo_id IN ?", photoIDs).
		Delete(&domain.PhotoTag{}).Error
}

type photoTagName struct {
	PhotoID int64
	Name    string
}

func (r *photoTagRepo) TagNamesByPhotoIDs(dbc dbctx.Context, photoIDs []int64) (map[int64][]string, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	result := make(map[int64][]string)
	if len(photoIDs) == 0 {
		return result, nil
	}

	var rows []photoTagName
	if err := transaction.WithContext(dbc.Ctx).
		Table("photo_tags").
		Select("photo_tags.photo_id AS photo_id, tags.name AS name").
		Joins("JOIN tags ON tags.id = photo_tags.tag_id").
		Where("photo_tags.photo_id IN ?", photoIDs).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	seen := make(map[int64]map[string]struct{})
	for _, row := range rows {
		if seen[row.PhotoID] == nil {
			seen[row.PhotoID] = make(map[string]struct{})
		}
		if _, dup := seen[row.PhotoID][row.Name]; dup {
			continue
		}
		seen[row.PhotoID][row.Name] = struct{}{}
		result[row.PhotoID] = append(result[row.PhotoID], row.Name)
	}
	for id := range result {
		sort.Strings(result[id])
	}
	return result, nil
}
