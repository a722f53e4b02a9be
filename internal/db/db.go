package db

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultDatabasePath is used when no connection string is configured.
const DefaultDatabasePath = "flexfit.db"

// Options tweaks how the connection is opened.
type Options struct {
	// Logger overrides the gorm logger; nil keeps gorm's default.
	Logger logger.Interface
}

// Open connects to the database described by dsn and migrates the schema.
// postgres:// and postgresql:// URLs use the postgres driver; anything else is
// treated as a SQLite path, optionally prefixed with sqlite://.
func Open(dsn string, opts Options) (*gorm.DB, error) {
	dialector, err := dialectorFor(dsn)
	if err != nil {
		return nil, err
	}

	cfg := &gorm.Config{TranslateError: true}
	if opts.Logger != nil {
		cfg.Logger = opts.Logger
	}

	gdb, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := Migrate(gdb); err != nil {
		return nil, err
	}
	return gdb, nil
}

// Migrate creates or updates the tables for every model.
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&User{},
		&Tag{},
		&Exercise{},
		&SavedExercise{},
		&ProgressLog{},
		&WorkoutLog{},
	); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return backfillNameLower(gdb)
}

// backfillNameLower fills the search column for rows written before it existed.
// SQL LOWER() folds ASCII only on SQLite, so the value is computed in Go.
func backfillNameLower(gdb *gorm.DB) error {
	var rows []Exercise
	if err := gdb.Select("id", "name").Where("name_lower IS NULL OR name_lower = ''").Find(&rows).Error; err != nil {
		return fmt.Errorf("load exercises for backfill: %w", err)
	}
	for _, row := range rows {
		if err := gdb.Model(&Exercise{}).Where("id = ?", row.ID).Update("name_lower", strings.ToLower(row.Name)).Error; err != nil {
			return fmt.Errorf("backfill exercise %d: %w", row.ID, err)
		}
	}
	return nil
}

func dialectorFor(dsn string) (gorm.Dialector, error) {
	dsn = strings.TrimSpace(dsn)
	lower := strings.ToLower(dsn)

	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return postgres.Open(dsn), nil
	case strings.HasPrefix(lower, "sqlite://"):
		dsn = dsn[len("sqlite://"):]
	}

	if dsn == "" {
		dsn = DefaultDatabasePath
	}
	if !strings.HasPrefix(dsn, "file:") && !strings.Contains(dsn, ":memory:") {
		if err := ensureParentDir(dsn); err != nil {
			return nil, err
		}
	}
	return sqlite.Open(dsn), nil
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
