package database

import (
	"context"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var embedMigrations embed.FS

// migrationDir selects the goose dialect and migration directory for db.
func migrationDir(db *gorm.DB) (dialect, dir string, err error) {
	switch db.Name() {
	case "postgres":
		return "postgres", "migrations/postgres", nil
	case "sqlite":
		return "sqlite3", "migrations/sqlite", nil
	}
	return "", "", fmt.Errorf("no migrations for dialect %q", db.Name())
}

func prepareGoose(db *gorm.DB) (string, error) {
	dialect, dir, err := migrationDir(db)
	if err != nil {
		return "", err
	}
	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect(dialect); err != nil {
		return "", fmt.Errorf("goose set dialect: %w", err)
	}
	return dir, nil
}

// MigrateUp applies all pending migrations.
func MigrateUp(ctx context.Context, db *gorm.DB) error {
	dir, err := prepareGoose(db)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if err := goose.UpContext(ctx, sqlDB, dir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// MigrateDown rolls back the most recent migration.
func MigrateDown(ctx context.Context, db *gorm.DB) error {
	dir, err := prepareGoose(db)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if err := goose.DownContext(ctx, sqlDB, dir); err != nil {
		return fmt.Errorf("goose down: %w", err)
	}
	return nil
}

// MigrateStatus logs the applied state of every migration.
func MigrateStatus(ctx context.Context, db *gorm.DB) error {
	dir, err := prepareGoose(db)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return goose.StatusContext(ctx, sqlDB, dir)
}

// MigrationVersion returns the latest applied migration version.
func MigrationVersion(ctx context.Context, db *gorm.DB) (int64, error) {
	if _, err := prepareGoose(db); err != nil {
		return 0, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return 0, err
	}
	return goose.GetDBVersionContext(ctx, sqlDB)
}
