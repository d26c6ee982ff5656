package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/daniluce/portfolio-backend/internal/http/response"
	"github.com/daniluce/portfolio-backend/internal/platform/apierr"
	"github.com/daniluce/portfolio-backend/internal/platform/dbctx"
	"github.com/daniluce/portfolio-backend/internal/services"
)

type UploadHandler struct {
	uploadService services.UploadService
	maxBytes      int64
}

func NewUploadHandler(uploadService services.UploadService, maxBytes int64) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
		maxBytes:      maxBytes,
	}
}

// POST /photos/albums
// multipart form: name, description, tags, firstFile, additionalFiles[N]
func (uh *UploadHandler) CreateAlbum(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, uh.maxBytes)

	form, err := c.MultipartForm()
	if err != nil {
		response.RespondAPIError(c, apierr.Validation("invalid multipart form: %s", err.Error()))
		return
	}

	input := services.AlbumInput{
		Name:        firstValue(form.Value, "name"),
		Description: firstValue(form.Value, "description"),
		Tags:        firstValue(form.Value, "tags"),
		Files:       form.File,
	}

	sessionSlug, err := uh.uploadService.CreateAlbum(dbctx.Context{Ctx: c.Request.Context()}, input)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"sessionSlug": sessionSlug,
	})
}

// POST /upload
// multipart form: photo
func (uh *UploadHandler) UploadSingle(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, uh.maxBytes)

	fh, err := c.FormFile("photo")
	if err != nil {
		response.RespondAPIError(c, apierr.Validation("no file uploaded"))
		return
	}

	stored, err := uh.uploadService.StoreSingle(fh)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"filename": stored.Filename,
		"filepath": stored.Filepath,
		"size":     stored.Size,
		"mimetype": stored.MimeType,
	})
}

func firstValue(values map[string][]string, key string) string {
	if vs := values[key]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}
