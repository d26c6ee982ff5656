package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/daniluce/portfolio-backend/internal/platform/logger"
)

// SchemaGuard applies additive, non-destructive column alterations. It is
// idempotent: once a column exists, EnsureColumn is a cheap metadata check.
// The guard runs during startup right after AutoMigrateAll; a rejected
// alteration is fatal and is not retried.
type SchemaGuard struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSchemaGuard(gdb *gorm.DB, baseLog *logger.Logger) *SchemaGuard {
	return &SchemaGuard{db: gdb, log: baseLog.With("service", "SchemaGuard")}
}

// EnsureColumn adds the named column of the model if missing, optionally
// with a supporting index. model must be a gorm model carrying the field.
func (g *SchemaGuard) EnsureColumn(model interface{}, column string, indexName string) error {
	migrator := g.db.Migrator()
	if migrator.HasColumn(model, column) {
		return nil
	}
	g.log.Info("Adding missing column", "column", column)
	if err := migrator.AddColumn(model, column); err != nil {
		return fmt.Errorf("add column %s: %w", column, err)
	}
	if indexName != "" && !migrator.HasIndex(model, indexName) {
		if err := migrator.CreateIndex(model, indexName); err != nil {
			return fmt.Errorf("create index %s: %w", indexName, err)
		}
	}
	return nil
}
