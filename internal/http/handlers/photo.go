package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/daniluce/portfolio-backend/internal/data/repos"
	"github.com/daniluce/portfolio-backend/internal/http/response"
	"github.com/daniluce/portfolio-backend/internal/platform/apierr"
	"github.com/daniluce/portfolio-backend/internal/platform/dbctx"
	"github.com/daniluce/portfolio-backend/internal/services"
)

type PhotoHandler struct {
	catalogService services.CatalogService
	photoService   services.PhotoService
}

func NewPhotoHandler(catalogService services.CatalogService, photoService services.PhotoService) *PhotoHandler {
	return &PhotoHandler{
		catalogService: catalogService,
		photoService:   photoService,
	}
}

// GET /photos
// query: category, published, limit
func (ph *PhotoHandler) List(c *gin.Context) {
	filter := repos.ListFilter{
		Category: c.Query("category"),
	}
	if raw := c.Query("published"); raw != "" {
		published, err := strconv.ParseBool(raw)
		if err != nil {
			response.RespondAPIError(c, apierr.Validation("published must be a boolean"))
			return
		}
		filter.Published = &published
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			response.RespondAPIError(c, apierr.Validation("limit must be a non-negative integer"))
			return
		}
		filter.Limit = limit
	}

	views, err := ph.catalogService.ListPhotos(dbctx.Context{Ctx: c.Request.Context()}, filter)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"success": true,
		"data":    views,
		"count":   len(views),
	})
}

// POST /photos
func (ph *PhotoHandler) Create(c *gin.Context) {
	var input services.CreatePhotoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "validation_failed", err)
		return
	}

	photoID, err := ph.photoService.Create(dbctx.Context{Ctx: c.Request.Context()}, input)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"photoId": photoID,
	})
}

// PUT /photos/:id
func (ph *PhotoHandler) Update(c *gin.Context) {
	photoID, err := parsePhotoID(c)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}

	var input services.UpdatePhotoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "validation_failed", err)
		return
	}

	if err := ph.photoService.Update(dbctx.Context{Ctx: c.Request.Context()}, photoID, input); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"success": true})
}

// DELETE /photos/:id
func (ph *PhotoHandler) Delete(c *gin.Context) {
	photoID, err := parsePhotoID(c)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}

	if err := ph.photoService.Delete(dbctx.Context{Ctx: c.Request.Context()}, photoID); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"success": true})
}

func parsePhotoID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apierr.Validation("photo id must be a positive integer")
	}
	return id, nil
}
