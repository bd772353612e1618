package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/hyperjump/cancerqa/internal/models"
)

func TestIsDatabase(t *testing.T) {
	tests := map[string]bool{
		"qa.db": true, "QA.SQLite": true, "qa.sqlite3": true,
		"qa.xlsx": false, "qa.csv": false, "qa": false,
	}
	for path, want := range tests {
		if got := IsDatabase(path); got != want {
			t.Errorf("IsDatabase(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestDescribeImport(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "corpus.db")
	store, err := NewSQLiteStorage(path)
	if err != nil {
		t.Fatal(err)
	}
	entries := []models.Entry{{QuestionEN: "q1", AnswerEN: "a1"}, {QuestionEN: "q2", AnswerEN: "a2"}}
	if err := store.ReplaceEntries(ctx, "qa.xlsx", entries); err != nil {
		t.Fatal(err)
	}
	store.Close()

	rec, err := DescribeImport(ctx, filepath.Join(dir, "qa.csv"), path)
	if err != nil {
		t.Fatal(err)
	}
	if rec == nil || rec.Database != path || rec.Source != "qa.xlsx" || rec.Entries != 2 || rec.Stored != 2 {
		t.Errorf("DescribeImport = %+v", rec)
	}

	rec, err = DescribeImport(ctx, filepath.Join(dir, "qa.csv"))
	if err != nil || rec != nil {
		t.Errorf("no database: got %+v, %v", rec, err)
	}

	if _, err := DescribeImport(ctx, filepath.Join(dir, "missing.db")); err == nil {
		t.Error("expected error for missing database")
	}
}

func TestDescribeImport_EmptyDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.db")
	store, err := NewSQLiteStorage(path)
	if err != nil {
		t.Fatal(err)
	}
	store.Close()
	rec, err := DescribeImport(context.Background(), path)
	if err != nil || rec != nil {
		t.Errorf("fresh database: got %+v, %v", rec, err)
	}
}
