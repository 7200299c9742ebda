// Package migrations applies the embedded schema and reference data.
package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:embed sql/*.sql
var schemaFS embed.FS

//go:embed seeds/*.sql
var seedFS embed.FS

type schemaMigration struct {
	FileName   string    `gorm:"column:file_name;primaryKey"`
	ExecutedAt time.Time `gorm:"column:executed_at;autoCreateTime"`
}

func (schemaMigration) TableName() string { return "schema_migrations" }

const createMigrationsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
  file_name TEXT PRIMARY KEY,
  executed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Migrate runs every schema file not yet recorded in schema_migrations, in
// name order. Each file and its bookkeeping row commit together.
func Migrate(ctx context.Context, db *gorm.DB, log *logrus.Entry) ([]string, error) {
	return migrate(ctx, db, schemaFS, "sql", log)
}

func migrate(ctx context.Context, db *gorm.DB, fsys fs.FS, dir string, log *logrus.Entry) ([]string, error) {
	db = db.WithContext(ctx)
	if err := db.Exec(createMigrationsTable).Error; err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}

	var done []string
	if err := db.Model(&schemaMigration{}).Pluck("file_name", &done).Error; err != nil {
		return nil, fmt.Errorf("read schema_migrations: %w", err)
	}

	files, err := sqlFiles(fsys, dir)
	if err != nil {
		return nil, err
	}

	var applied []string
	for _, name := range files {
		if slices.Contains(done, name) {
			log.WithField("file", name).Debug("migration already applied")
			continue
		}
		body, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return applied, err
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(string(body)).Error; err != nil {
				return err
			}
			return tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&schemaMigration{FileName: name}).Error
		})
		if err != nil {
			return applied, fmt.Errorf("migration %s: %w", name, err)
		}
		log.WithField("file", name).Info("migration applied")
		applied = append(applied, name)
	}
	return applied, nil
}

// Seed loads reference data. Seed files are idempotent and run every time.
func Seed(ctx context.Context, db *gorm.DB, log *logrus.Entry) error {
	files, err := sqlFiles(seedFS, "seeds")
	if err != nil {
		return err
	}
	for _, name := range files {
		body, err := fs.ReadFile(seedFS, path.Join("seeds", name))
		if err != nil {
			return err
		}
		err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return tx.Exec(string(body)).Error
		})
		if err != nil {
			return fmt.Errorf("seed %s: %w", name, err)
		}
		log.WithField("file", name).Info("seed applied")
	}
	return nil
}

func sqlFiles(fsys fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			out = append(out, e.Name())
		}
	}
	slices.Sort(out)
	return out, nil
}
