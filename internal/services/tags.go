package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/daniluce/portfolio-backend/internal/data/repos"
	"github.com/daniluce/portfolio-backend/internal/domain"
	"github.com/daniluce/portfolio-backend/internal/platform/dbctx"
	"github.com/daniluce/portfolio-backend/internal/platform/logger"
	"github.com/daniluce/portfolio-backend/internal/platform/slug"
)

// TagResolver maps tag names to stable ids, creating missing tags lazily.
// Two requests introducing the same new name race on the tags.name unique
// constraint; the loser recovers by re-querying instead of failing, so
// both ways exactly one row ends up referenced.
type TagResolver interface {
	Resolve(dbc dbctx.Context, name string) (int64, error)
	ResolveAll(dbc dbctx.Context, names []string) ([]int64, error)
}

type tagResolver struct {
	db      *gorm.DB
	log     *logger.Logger
	tagRepo repos.TagRepo
}

func NewTagResolver(db *gorm.DB, baseLog *logger.Logger, tagRepo repos.TagRepo) TagResolver {
	serviceLog := baseLog.With("service", "TagResolver")
	return &tagResolver{db: db, log: serviceLog, tagRepo: tagRepo}
}

func (tr *tagResolver) Resolve(dbc dbctx.Context, name string) (int64, error) {
	if name == "" {
		return 0, fmt.Errorf("tag name is required")
	}

	existing, err := tr.tagRepo.GetByName(dbc, name)
	if err != nil {
		return 0, fmt.Errorf("lookup tag %q: %w", name, err)
	}
	if existing != nil {
		return existing.ID, nil
	}

	tagSlug := slug.Tag(name)
	tag := &domain.Tag{Name: name, Slug: tagSlug}
	createErr := tr.tagRepo.Create(dbc, tag)
	if createErr == nil {
		return tag.ID, nil
	}

	// A concurrent request may have created the tag between our lookup
	// and insert; the unique constraint rejected us, so the row exists.
	recovered, requeryErr := tr.tagRepo.GetByNameOrSlug(dbc, name, tagSlug)
	if requeryErr == nil && recovered != nil {
		tr.log.Debug("recovered tag after create conflict", "name", name, "tag_id", recovered.ID)
		return recovered.ID, nil
	}
	return 0, fmt.Errorf("create tag %q: %w", name, createErr)
}

func (tr *tagResolver) ResolveAll(dbc dbctx.Context, names []string) ([]int64, error) {
	ids := make([]int64, 0, len(names))
	seen := make(map[int64]struct{}, len(names))
	for _, name := range names {
		id, err := tr.Resolve(dbc, name)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}
