package app

import (
	httpH "github.com/daniluce/portfolio-backend/internal/http/handlers"
	"github.com/daniluce/portfolio-backend/internal/platform/logger"
)

type Handlers struct {
	Photo   *httpH.PhotoHandler
	Session *httpH.SessionHandler
	Upload  *httpH.UploadHandler
	Health  *httpH.HealthHandler
}

func wireHandlers(log *logger.Logger, cfg Config, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Photo:   httpH.NewPhotoHandler(serviceset.Catalog, serviceset.Photo),
		Session: httpH.NewSessionHandler(serviceset.Session),
		Upload:  httpH.NewUploadHandler(serviceset.Upload, cfg.UploadMaxMB*1024*1024),
		Health:  httpH.NewHealthHandler(),
	}
}
