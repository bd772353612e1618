package storage

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/hyperjump/cancerqa/internal/models"
)

// IsDatabase reports whether path names a SQLite corpus database.
func IsDatabase(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

// DescribeImport returns the latest import into the first database among paths,
// or nil when none of them is a database or nothing was imported into it.
func DescribeImport(ctx context.Context, paths ...string) (*models.ImportRecord, error) {
	for _, p := range paths {
		if !IsDatabase(p) {
			continue
		}
		db, err := OpenSQLiteExisting(p)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return describeImport(ctx, p, db)
	}
	return nil, nil
}

func describeImport(ctx context.Context, path string, store Storage) (*models.ImportRecord, error) {
	rec, err := store.LastImport(ctx)
	if err != nil || rec == nil {
		return nil, err
	}
	if rec.Stored, err = store.CountEntries(ctx); err != nil {
		return nil, err
	}
	rec.Database = path
	return rec, nil
}
