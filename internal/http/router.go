package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/daniluce/portfolio-backend/internal/http/handlers"
	httpMW "github.com/daniluce/portfolio-backend/internal/http/middleware"
	"github.com/daniluce/portfolio-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	AuthMiddleware *httpMW.AuthMiddleware

	PhotoHandler   *httpH.PhotoHandler
	SessionHandler *httpH.SessionHandler
	UploadHandler  *httpH.UploadHandler
	HealthHandler  *httpH.HealthHandler

	// MediaRoot, when set, is served under MediaPublicPrefix so the
	// filepath values returned by the API resolve against this server.
	MediaRoot         string
	MediaPublicPrefix string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.RequestID())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	// Static media
	if cfg.MediaRoot != "" && cfg.MediaPublicPrefix != "" {
		r.Static(cfg.MediaPublicPrefix, cfg.MediaRoot)
	}

	// Public reads
	if cfg.PhotoHandler != nil {
		r.GET("/photos", cfg.PhotoHandler.List)
	}
	if cfg.SessionHandler != nil {
		r.GET("/sessions", cfg.SessionHandler.List)
		r.GET("/sessions/:slug", cfg.SessionHandler.Get)
	}

	protected := r.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		if cfg.PhotoHandler != nil {
			protected.POST("/photos", cfg.PhotoHandler.Create)
			protected.PUT("/photos/:id", cfg.PhotoHandler.Update)
			protected.DELETE("/photos/:id", cfg.PhotoHandler.Delete)
		}

		if cfg.UploadHandler != nil {
			protected.POST("/photos/albums", cfg.UploadHandler.CreateAlbum)
			protected.POST("/upload", cfg.UploadHandler.UploadSingle)
		}
	}

	return r
}
