package corpus

import (
	"context"

	"github.com/hyperjump/cancerqa/internal/storage"
)

// readSQLite reads entries previously stored by the import command.
func readSQLite(ctx context.Context, path string) (*table, error) {
	db, err := storage.OpenSQLiteExisting(path)
	if err != nil {
		return nil, malformed(path, "open database: %w", err)
	}
	defer db.Close()
	return readStorage(ctx, path, db)
}

func readStorage(ctx context.Context, path string, store storage.Storage) (*table, error) {
	entries, err := store.ListEntries(ctx)
	if err != nil {
		return nil, malformed(path, "read entries: %w", err)
	}
	return entriesTable(entries), nil
}
