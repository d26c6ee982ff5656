package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/daniluce/portfolio-backend/internal/data/repos"
	"github.com/daniluce/portfolio-backend/internal/data/repos/testutil"
	"github.com/daniluce/portfolio-backend/internal/services"
)

func newCatalogRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.DB(t)
	log := testutil.Logger(t)

	photoRepo := repos.NewPhotoRepo(db, log)
	photoTags := repos.NewPhotoTagRepo(db, log)
	catalog := services.NewCatalogService(db, log, photoRepo, photoTags, nil)

	r := gin.New()
	h := NewPhotoHandler(catalog, nil)
	r.GET("/photos", h.List)
	return r, db
}

func TestPhotoHandlerListEnvelope(t *testing.T) {
	r, db := newCatalogRouter(t)

	testutil.SeedPhoto(t, db, testutil.PhotoFixture{Title: "One", Slug: "one", Published: true})
	testutil.SeedPhoto(t, db, testutil.PhotoFixture{Title: "Draft", Slug: "draft", Published: false})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/photos", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool `json:"success"`
		Count   int  `json:"count"`
		Data    []struct {
			Slug     string   `json:"slug"`
			Location string   `json:"location"`
			Tags     []string `json:"tags"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.True(t, body.Success)
	require.Equal(t, 1, body.Count)
	require.Len(t, body.Data, 1)
	require.Equal(t, "one", body.Data[0].Slug)
	require.Equal(t, services.FallbackLocation, body.Data[0].Location)
	require.NotNil(t, body.Data[0].Tags)
}

func TestPhotoHandlerListRejectsBadQuery(t *testing.T) {
	r, _ := newCatalogRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/photos?limit=abc", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "validation_failed")
}
