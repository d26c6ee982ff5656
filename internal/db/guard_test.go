package db

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/daniluce/portfolio-backend/internal/domain"
	"github.com/daniluce/portfolio-backend/internal/platform/logger"
)

type guardPhotoV1 struct {
	ID    int64  `gorm:"primaryKey;autoIncrement"`
	Title string `gorm:"not null"`
}

func (guardPhotoV1) TableName() string { return "guard_photos" }

type guardPhotoV2 struct {
	ID          int64   `gorm:"primaryKey;autoIncrement"`
	Title       string  `gorm:"not null"`
	SessionSlug *string `gorm:"index:idx_guard_photos_session;column:session_slug"`
}

func (guardPhotoV2) TableName() string { return "guard_photos" }

func TestSchemaGuardEnsureColumnIdempotent(t *testing.T) {
	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	logg, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}

	if err := gdb.AutoMigrate(&guardPhotoV1{}); err != nil {
		t.Fatalf("migrate v1: %v", err)
	}
	if gdb.Migrator().HasColumn(&guardPhotoV2{}, "session_slug") {
		t.Fatal("session_slug should not exist yet")
	}

	guard := NewSchemaGuard(gdb, logg)
	if err := guard.EnsureColumn(&guardPhotoV2{}, "SessionSlug", "idx_guard_photos_session"); err != nil {
		t.Fatalf("EnsureColumn: %v", err)
	}
	if !gdb.Migrator().HasColumn(&guardPhotoV2{}, "session_slug") {
		t.Fatal("session_slug should exist after EnsureColumn")
	}

	// Second invocation must be a no-op, not an error.
	if err := guard.EnsureColumn(&guardPhotoV2{}, "SessionSlug", "idx_guard_photos_session"); err != nil {
		t.Fatalf("EnsureColumn (repeat): %v", err)
	}
}

// legacyPhoto is a photos table from before session grouping existed.
type legacyPhoto struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	Title    string `gorm:"not null;column:title"`
	Slug     string `gorm:"not null;index;column:slug"`
	Filename string `gorm:"not null;column:filename"`
	Filepath string `gorm:"not null;column:filepath"`
}

func (legacyPhoto) TableName() string { return "photos" }

// Exercises the guard with the exact model, column, and index name the
// startup path uses, against a table that predates the column.
func TestSchemaGuardBackfillsPhotoSessionSlug(t *testing.T) {
	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	logg, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}

	if err := gdb.AutoMigrate(&legacyPhoto{}); err != nil {
		t.Fatalf("migrate legacy table: %v", err)
	}
	if gdb.Migrator().HasColumn(&domain.Photo{}, "session_slug") {
		t.Fatal("session_slug should not exist on the legacy table")
	}

	guard := NewSchemaGuard(gdb, logg)
	if err := guard.EnsureColumn(&domain.Photo{}, "session_slug", "idx_photos_session_slug"); err != nil {
		t.Fatalf("EnsureColumn on legacy table: %v", err)
	}
	if !gdb.Migrator().HasColumn(&domain.Photo{}, "session_slug") {
		t.Fatal("session_slug should exist after EnsureColumn")
	}
	if !gdb.Migrator().HasIndex(&domain.Photo{}, "idx_photos_session_slug") {
		t.Fatal("idx_photos_session_slug should exist after EnsureColumn")
	}
}
