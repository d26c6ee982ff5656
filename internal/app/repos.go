package app

import (
	"gorm.io/gorm"

	"github.com/daniluce/portfolio-backend/internal/data/repos"
	"github.com/daniluce/portfolio-backend/internal/platform/logger"
)

type Repos struct {
	Photo    repos.PhotoRepo
	Tag      repos.TagRepo
	PhotoTag repos.PhotoTagRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Photo:    repos.NewPhotoRepo(db, log),
		Tag:      repos.NewTagRepo(db, log),
		PhotoTag: repos.NewPhotoTagRepo(db, log),
	}
}
