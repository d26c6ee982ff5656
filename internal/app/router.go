package app

import (
	"github.com/gin-gonic/gin"

	internalhttp "github.com/daniluce/portfolio-backend/internal/http"
	"github.com/daniluce/portfolio-backend/internal/platform/logger"
)

func wireRouter(log *logger.Logger, cfg Config, handlerset Handlers, middleware Middleware) *gin.Engine {
	return internalhttp.NewRouter(internalhttp.RouterConfig{
		Log:            log,
		AuthMiddleware: middleware.Auth,

		PhotoHandler:   handlerset.Photo,
		SessionHandler: handlerset.Session,
		UploadHandler:  handlerset.Upload,
		HealthHandler:  handlerset.Health,

		MediaRoot:         cfg.MediaRoot,
		MediaPublicPrefix: cfg.MediaPublicPrefix,
	})
}
