package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/daniluce/portfolio-backend/internal/data/repos"
	"github.com/daniluce/portfolio-backend/internal/data/repos/testutil"
	"github.com/daniluce/portfolio-backend/internal/platform/dbctx"
)

func newCatalogService(t *testing.T) (CatalogService, *gorm.DB, dbctx.Context) {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	svc := NewCatalogService(db, log, repos.NewPhotoRepo(db, log), repos.NewPhotoTagRepo(db, log), nil)
	return svc, db, dbctx.Context{Ctx: context.Background()}
}

func TestCatalogListPhotosFallbacks(t *testing.T) {
	svc, db, dbc := newCatalogService(t)

	testutil.SeedPhoto(t, db, testutil.PhotoFixture{
		Title:     "Bare",
		Slug:      "bare",
		Published: true,
	})

	views, err := svc.ListPhotos(dbc, repos.ListFilter{})
	require.NoError(t, err)
	require.Len(t, views, 1)

	v := views[0]
	require.Equal(t, FallbackLocation, v.Location)
	require.Equal(t, FallbackDateTaken, v.DateTaken)
	require.Equal(t, "bare", v.SessionSlug, "session slug falls back to the photo's own slug")
	require.NotNil(t, v.Tags)
	require.Empty(t, v.Tags)
}

func TestCatalogListPhotosKeepsRealValues(t *testing.T) {
	svc, db, dbc := newCatalogService(t)

	testutil.SeedPhoto(t, db, testutil.PhotoFixture{
		Title:       "Set",
		Slug:        "set",
		Location:    "Lisbon",
		DateTaken:   "2024-06-01",
		SessionSlug: "lisbon-trip",
		Published:   true,
	})

	views, err := svc.ListPhotos(dbc, repos.ListFilter{})
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, "Lisbon", views[0].Location)
	require.Equal(t, "2024-06-01", views[0].DateTaken)
	require.Equal(t, "lisbon-trip", views[0].SessionSlug)
}

func TestCatalogListPhotosGatesAndOrders(t *testing.T) {
	svc, db, dbc := newCatalogService(t)

	base := time.Now().Add(-time.Hour)
	testutil.SeedPhoto(t, db, testutil.PhotoFixture{Title: "old", Slug: "old", Published: true, CreatedAt: base})
	testutil.SeedPhoto(t, db, testutil.PhotoFixture{Title: "new", Slug: "new", Published: true, CreatedAt: base.Add(time.Minute)})
	testutil.SeedPhoto(t, db, testutil.PhotoFixture{Title: "draft", Slug: "draft", Published: false, CreatedAt: base.Add(2 * time.Minute)})

	views, err := svc.ListPhotos(dbc, repos.ListFilter{})
	require.NoError(t, err)
	require.Len(t, views, 2)
	require.Equal(t, "new", views[0].Slug)
	require.Equal(t, "old", views[1].Slug)
}

func TestCatalogListPhotosMergesSortedTags(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	photoTags := repos.NewPhotoTagRepo(db, log)
	svc := NewCatalogService(db, log, repos.NewPhotoRepo(db, log), photoTags, nil)
	dbc := dbctx.Context{Ctx: context.Background()}

	p := testutil.SeedPhoto(t, db, testutil.PhotoFixture{Title: "tagged", Slug: "tagged", Published: true})
	zebra := testutil.SeedTag(t, db, "zebra", "zebra")
	alpha := testutil.SeedTag(t, db, "alpha", "alpha")
	require.NoError(t, photoTags.Link(dbc, p.ID, zebra.ID))
	require.NoError(t, photoTags.Link(dbc, p.ID, alpha.ID))

	views, err := svc.ListPhotos(dbc, repos.ListFilter{})
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, []string{"alpha", "zebra"}, views[0].Tags)
}
