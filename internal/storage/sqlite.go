// Package storage provides SQLite implementation of the Storage interface.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hyperjump/cancerqa/internal/models"
)

// SQLiteStorage implements Storage using SQLite.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage opens or creates a SQLite database at dbPath and initializes the schema.
// Parent directories are created if they do not exist.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

// OpenSQLiteExisting opens a database that must already exist, without creating
// or migrating it. Reads fail later if the schema is absent.
func OpenSQLiteExisting(dbPath string) (*SQLiteStorage, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &SQLiteStorage{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS qa_entries (
		position INTEGER PRIMARY KEY,
		question_en TEXT NOT NULL DEFAULT '',
		question_bn TEXT NOT NULL DEFAULT '',
		answer_en TEXT NOT NULL DEFAULT '',
		answer_bn TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS corpus_imports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source TEXT NOT NULL,
		entries INTEGER NOT NULL,
		imported_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_corpus_imports_imported_at ON corpus_imports(imported_at);
	`
	_, err := db.Exec(schema)
	return err
}

// ReplaceEntries deletes all entries and inserts entries in one transaction.
func (s *SQLiteStorage) ReplaceEntries(ctx context.Context, source string, entries []models.Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM qa_entries`); err != nil {
		return fmt.Errorf("failed to clear entries: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO qa_entries (position, question_en, question_bn, answer_en, answer_bn)
		 VALUES (?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, e := range entries {
		if _, err := stmt.ExecContext(ctx, i, e.QuestionEN, e.QuestionBN, e.AnswerEN, e.AnswerBN); err != nil {
			return fmt.Errorf("failed to insert entry %d: %w", i, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO corpus_imports (source, entries, imported_at) VALUES (?, ?, ?)`,
		source, len(entries), time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("failed to record import: %w", err)
	}
	return tx.Commit()
}

// ListEntries returns all entries ordered by position.
func (s *SQLiteStorage) ListEntries(ctx context.Context) ([]models.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT question_en, question_bn, answer_en, answer_bn
		 FROM qa_entries ORDER BY position`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.Entry
	for rows.Next() {
		var e models.Entry
		var qEN, qBN, aEN, aBN sql.NullString
		if err := rows.Scan(&qEN, &qBN, &aEN, &aBN); err != nil {
			return nil, err
		}
		e.QuestionEN, e.QuestionBN, e.AnswerEN, e.AnswerBN = qEN.String, qBN.String, aEN.String, aBN.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// CountEntries returns the number of stored entries.
func (s *SQLiteStorage) CountEntries(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM qa_entries`).Scan(&count)
	return count, err
}

// LastImport returns the most recent import record.
func (s *SQLiteStorage) LastImport(ctx context.Context) (*models.ImportRecord, error) {
	var rec models.ImportRecord
	err := s.db.QueryRowContext(ctx,
		`SELECT source, entries, imported_at FROM corpus_imports ORDER BY id DESC LIMIT 1`,
	).Scan(&rec.Source, &rec.Entries, &rec.ImportedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
