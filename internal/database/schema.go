package database

import (
	"context"
	"fmt"
	"log/slog"

	"yatube/internal/middleware"
	"yatube/internal/models"

	"gorm.io/gorm"
)

const (
	SchemaModeAuto = "auto"
	SchemaModeSQL  = "sql"
)

// PersistentModels lists every table owned by the application, parents first.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Group{},
		&models.Post{},
	}
}

// ApplySchema brings the schema up to date. "auto" uses GORM AutoMigrate,
// "sql" runs the embedded goose migrations.
func ApplySchema(ctx context.Context, db *gorm.DB, mode string) error {
	switch mode {
	case SchemaModeAuto, "":
		if err := db.WithContext(ctx).AutoMigrate(PersistentModels()...); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	case SchemaModeSQL:
		if err := MigrateUp(ctx, db); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported DB_SCHEMA_MODE %q", mode)
	}
	middleware.Logger.InfoContext(ctx, "database schema ready", slog.String("mode", mode))
	return nil
}
