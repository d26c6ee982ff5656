package db

import (
	"gorm.io/gorm"

	"github.com/daniluce/portfolio-backend/internal/domain"
)

// AutoMigrateAll runs the startup migration step. Schema changes happen
// here, once, before the server accepts requests.
func AutoMigrateAll(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&domain.Photo{},
		&domain.Tag{},
		&domain.PhotoTag{},
	)
}
