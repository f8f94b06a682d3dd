// Package iobuild creates the SQLite search database from the
// interchange file. This is an impure I/O package that implements
// lifecycle.Builder with modernc.org/sqlite.
package iobuild

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gnames/gazdb/pkg/config"
	"github.com/gnames/gazdb/pkg/lifecycle"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// SchemaSQL returns the embedded schema definition.
func SchemaSQL() string {
	return schemaSQL
}

type builder struct {
	cfg *config.Config
	db  *sql.DB
}

// New creates a Builder that reads cfg.Paths.CSV and writes
// cfg.Paths.DB.
func New(cfg *config.Config) lifecycle.Builder {
	return &builder{cfg: cfg}
}

// Build runs all build steps:
//  1. Remove the previous database with its WAL and SHM files
//  2. Create the schema
//  3. Bulk-load the interchange file
//  4. Rebuild the full-text index
//  5. Record build metadata
//  6. Analyze, vacuum and checkpoint
//
// Rows that cannot be loaded are logged and counted, every other
// failure stops the build.
func (b *builder) Build(ctx context.Context) (*lifecycle.LoadStats, error) {
	timeStart := time.Now()
	path := b.cfg.Paths.DB

	schema, err := b.schemaText()
	if err != nil {
		return nil, err
	}

	slog.Info("Step 1/6: Removing previous database", "path", path)
	if err = removeDB(path); err != nil {
		return nil, err
	}

	if err = b.open(ctx); err != nil {
		return nil, err
	}
	defer b.close()

	slog.Info("Step 2/6: Creating schema")
	if _, err = b.db.ExecContext(ctx, schema); err != nil {
		return nil, SchemaApplyError(err)
	}

	slog.Info("Step 3/6: Loading places", "csv", b.cfg.Paths.CSV)
	stats, ids, err := b.load(ctx)
	if err != nil {
		return nil, err
	}
	gn.Info("Loaded <em>%s</em> places, skipped <em>%s</em>",
		humanInt(stats.Inserted), humanInt(stats.Skipped))

	slog.Info("Step 4/6: Rebuilding full-text index")
	if err = b.refreshFTS(ctx); err != nil {
		return nil, err
	}

	slog.Info("Step 5/6: Writing metadata")
	if err = b.writeMetadata(ctx, stats, ids); err != nil {
		return nil, err
	}

	slog.Info("Step 6/6: Optimizing database")
	if err = b.optimize(ctx); err != nil {
		return nil, err
	}

	dur := time.Since(timeStart).Seconds()
	slog.Info("Database build completed",
		"path", path,
		"inserted", stats.Inserted,
		"skipped", stats.Skipped,
		"duration", gnfmt.TimeString(dur),
	)
	return stats, nil
}

func (b *builder) schemaText() (string, error) {
	path := b.cfg.Build.SchemaPath
	if path == "" {
		return schemaSQL, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", SchemaFileError(path, err)
	}
	return string(data), nil
}

func (b *builder) open(ctx context.Context) error {
	path := b.cfg.Paths.DB
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return OpenError(path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return OpenError(path, err)
	}
	// Pragmas are per connection, keep exactly one.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return OpenError(path, err)
		}
	}
	b.db = db
	return nil
}

func (b *builder) close() {
	if b.db == nil {
		return
	}
	if err := b.db.Close(); err != nil {
		slog.Warn("Cannot close database", "error", err)
	}
	b.db = nil
}

// removeDB deletes the database file and its WAL and SHM siblings.
func removeDB(path string) error {
	for _, p := range []string{path, path + "-wal", path + "-shm"} {
		err := os.Remove(p)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return RemoveError(p, err)
		}
	}
	return nil
}
