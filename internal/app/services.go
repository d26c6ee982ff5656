package app

import (
	"gorm.io/gorm"

	goredis "github.com/daniluce/portfolio-backend/internal/clients/redis"
	"github.com/daniluce/portfolio-backend/internal/platform/logger"
	"github.com/daniluce/portfolio-backend/internal/platform/storage"
	"github.com/daniluce/portfolio-backend/internal/services"
)

type Services struct {
	Auth    services.AuthService
	Tags    services.TagResolver
	Catalog services.CatalogService
	Session services.SessionService
	Photo   services.PhotoService
	Upload  services.UploadService
}

func wireServices(
	db *gorm.DB,
	log *logger.Logger,
	cfg Config,
	reposet Repos,
	store *storage.Store,
	cache *goredis.Cache,
) Services {
	log.Info("Wiring services...")

	tags := services.NewTagResolver(db, log, reposet.Tag)
	catalog := services.NewCatalogService(db, log, reposet.Photo, reposet.PhotoTag, cache)

	return Services{
		Auth:    services.NewAuthService(log, cfg.JWTSecretKey),
		Tags:    tags,
		Catalog: catalog,
		Session: services.NewSessionService(db, log, reposet.Photo, catalog, cache),
		Photo:   services.NewPhotoService(db, log, reposet.Photo, reposet.PhotoTag, tags, store, cache),
		Upload:  services.NewUploadService(db, log, reposet.Photo, tags, reposet.PhotoTag, store, cache),
	}
}
