package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/daniluce/portfolio-backend/internal/data/repos"
	"github.com/daniluce/portfolio-backend/internal/data/repos/testutil"
	"github.com/daniluce/portfolio-backend/internal/domain"
	"github.com/daniluce/portfolio-backend/internal/platform/dbctx"
	"github.com/daniluce/portfolio-backend/internal/platform/storage"
)

type photoEnv struct {
	svc       PhotoService
	catalog   CatalogService
	photoRepo repos.PhotoRepo
	store     *storage.Store
	mediaRoot string
	db        *gorm.DB
	dbc       dbctx.Context
}

func newPhotoEnv(t *testing.T) *photoEnv {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)

	mediaRoot := t.TempDir()
	store, err := storage.New(log, mediaRoot, "/media")
	require.NoError(t, err)

	photoRepo := repos.NewPhotoRepo(db, log)
	photoTags := repos.NewPhotoTagRepo(db, log)
	tags := NewTagResolver(db, log, repos.NewTagRepo(db, log))

	return &photoEnv{
		svc:       NewPhotoService(db, log, photoRepo, photoTags, tags, store, nil),
		catalog:   NewCatalogService(db, log, photoRepo, photoTags, nil),
		photoRepo: photoRepo,
		store:     store,
		mediaRoot: mediaRoot,
		db:        db,
		dbc:       dbctx.Context{Ctx: context.Background()},
	}
}

// stageAndPromote places real bytes in the media root and returns
// (filename, publicPath) the way an upload would.
func (e *photoEnv) stageAndPromote(t *testing.T, name string) (string, string) {
	t.Helper()
	staged, err := e.store.StageReader(strings.NewReader("image-bytes"), name)
	require.NoError(t, err)
	filename, publicPath, err := e.store.Promote(staged)
	require.NoError(t, err)
	return filename, publicPath
}

func TestPhotoServiceCreateWithTags(t *testing.T) {
	env := newPhotoEnv(t)

	id, err := env.svc.Create(env.dbc, CreatePhotoInput{
		Title:     "Dawn",
		Filename:  "dawn.jpg",
		Filepath:  "/media/dawn.jpg",
		Published: true,
		Tags:      []string{"morning", "city"},
	})
	require.NoError(t, err)
	require.NotZero(t, id)

	views, err := env.catalog.ListPhotos(env.dbc, repos.ListFilter{})
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, "Dawn", views[0].Title)
	require.NotEmpty(t, views[0].Slug, "missing slug gets generated")
	require.Equal(t, []string{"city", "morning"}, views[0].Tags)
}

func TestPhotoServiceCreateValidates(t *testing.T) {
	env := newPhotoEnv(t)

	_, err := env.svc.Create(env.dbc, CreatePhotoInput{Title: "no file"})
	require.Error(t, err)

	var count int64
	require.NoError(t, env.db.Model(&domain.Photo{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestPhotoServiceUpdateReplacesTagSet(t *testing.T) {
	env := newPhotoEnv(t)

	id, err := env.svc.Create(env.dbc, CreatePhotoInput{
		Title:     "Dusk",
		Filename:  "dusk.jpg",
		Filepath:  "/media/dusk.jpg",
		Published: true,
		Tags:      []string{"evening", "city"},
	})
	require.NoError(t, err)

	err = env.svc.Update(env.dbc, id, UpdatePhotoInput{
		Title:     "Dusk (edited)",
		Published: true,
		Tags:      []string{"golden hour"},
	})
	require.NoError(t, err)

	views, err := env.catalog.ListPhotos(env.dbc, repos.ListFilter{})
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, "Dusk (edited)", views[0].Title)
	require.Equal(t, []string{"golden hour"}, views[0].Tags)
}

func TestPhotoServiceUpdateNilTagsUntouched(t *testing.T) {
	env := newPhotoEnv(t)

	id, err := env.svc.Create(env.dbc, CreatePhotoInput{
		Title:     "Keep",
		Filename:  "keep.jpg",
		Filepath:  "/media/keep.jpg",
		Published: true,
		Tags:      []string{"kept"},
	})
	require.NoError(t, err)

	require.NoError(t, env.svc.Update(env.dbc, id, UpdatePhotoInput{Title: "Keep", Published: true}))

	views, err := env.catalog.ListPhotos(env.dbc, repos.ListFilter{})
	require.NoError(t, err)
	require.Equal(t, []string{"kept"}, views[0].Tags)
}

func TestPhotoServiceUpdateNotFound(t *testing.T) {
	env := newPhotoEnv(t)

	err := env.svc.Update(env.dbc, 9999, UpdatePhotoInput{Title: "ghost"})
	require.Error(t, err)
}

func TestPhotoServiceDeleteRemovesRowAndFile(t *testing.T) {
	env := newPhotoEnv(t)

	filename, publicPath := env.stageAndPromote(t, "gone.jpg")

	id, err := env.svc.Create(env.dbc, CreatePhotoInput{
		Title:    "Gone",
		Filename: filename,
		Filepath: publicPath,
		Tags:     []string{"doomed"},
	})
	require.NoError(t, err)

	require.NoError(t, env.svc.Delete(env.dbc, id))

	rows, err := env.photoRepo.GetByIDs(env.dbc, []int64{id})
	require.NoError(t, err)
	require.Empty(t, rows)

	_, statErr := os.Stat(filepath.Join(env.mediaRoot, filename))
	require.True(t, os.IsNotExist(statErr), "backing file should be gone")

	var links int64
	require.NoError(t, env.db.Model(&domain.PhotoTag{}).Where("photo_id = ?", id).Count(&links).Error)
	require.Zero(t, links)
}

func TestPhotoServiceDeleteSurvivesMissingFile(t *testing.T) {
	env := newPhotoEnv(t)

	id, err := env.svc.Create(env.dbc, CreatePhotoInput{
		Title:    "Orphan",
		Filename: "never-existed.jpg",
		Filepath: "/media/never-existed.jpg",
	})
	require.NoError(t, err)

	// The row goes away even though there is no backing file to remove.
	require.NoError(t, env.svc.Delete(env.dbc, id))

	rows, err := env.photoRepo.GetByIDs(env.dbc, []int64{id})
	require.NoError(t, err)
	require.Empty(t, rows)
}
