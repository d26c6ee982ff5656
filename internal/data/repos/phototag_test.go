package repos

import (
	"context"
	"testing"

	"github.com/daniluce/portfolio-backend/internal/data/repos/testutil"
	"github.com/daniluce/portfolio-backend/internal/platform/dbctx"
)

func TestPhotoTagRepoLinkIsIdempotent(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := NewPhotoTagRepo(db, testutil.Logger(t))

	p := testutil.SeedPhoto(t, tx, testutil.PhotoFixture{Title: "p", Slug: "p", Published: true})
	tag := testutil.SeedTag(t, tx, "bw", "bw")

	if err := repo.Link(dbc, p.ID, tag.ID); err != nil {
		t.Fatalf("Link: %v", err)
	}
	// Duplicate link is a no-op, not an error.
	if err := repo.Link(dbc, p.ID, tag.ID); err != nil {
		t.Fatalf("Link (repeat): %v", err)
	}

	names, err := repo.TagNamesByPhotoIDs(dbc, []int64{p.ID})
	if err != nil {
		t.Fatalf("TagNamesByPhotoIDs: %v", err)
	}
	if len(names[p.ID]) != 1 || names[p.ID][0] != "bw" {
		t.Fatalf("tag names: %+v", names[p.ID])
	}
}

func TestPhotoTagRepoNamesSortedAndScoped(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := NewPhotoTagRepo(db, testutil.Logger(t))

	p1 := testutil.SeedPhoto(t, tx, testutil.PhotoFixture{Title: "p1", Slug: "p1", Published: true})
	p2 := testutil.SeedPhoto(t, tx, testutil.PhotoFixture{Title: "p2", Slug: "p2", Published: true})
	zebra := testutil.SeedTag(t, tx, "zebra", "zebra")
	alpha := testutil.SeedTag(t, tx, "alpha", "alpha")

	for _, tagID := range []int64{zebra.ID, alpha.ID} {
		if err := repo.Link(dbc, p1.ID, tagID); err != nil {
			t.Fatalf("Link: %v", err)
		}
	}

	names, err := repo.TagNamesByPhotoIDs(dbc, []int64{p1.ID, p2.ID})
	if err != nil {
		t.Fatalf("TagNamesByPhotoIDs: %v", err)
	}
	got := names[p1.ID]
	if len(got) != 2 || got[0] != "alpha" || got[1] != "zebra" {
		t.Fatalf("sorted names: %+v", got)
	}
	if _, ok := names[p2.ID]; ok {
		t.Fatalf("untagged photo should be absent from map")
	}

	if err := repo.DeleteByPhotoIDs(dbc, []int64{p1.ID}); err != nil {
		t.Fatalf("DeleteByPhotoIDs: %v", err)
	}
	names, err = repo.TagNamesByPhotoIDs(dbc, []int64{p1.ID})
	if err != nil || len(names) != 0 {
		t.Fatalf("after delete: err=%v names=%+v", err, names)
	}
}
