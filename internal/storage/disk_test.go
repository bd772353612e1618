package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSourceBytes(t *testing.T) {
	dir := t.TempDir()
	f1 := filepath.Join(dir, "a.csv")
	f2 := filepath.Join(dir, "b.csv")
	if err := os.WriteFile(f1, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(f2, []byte("abc"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := SourceBytes(f1, f2)
	if err != nil {
		t.Fatal(err)
	}
	if got != 8 {
		t.Errorf("two files: got %d bytes, want 8", got)
	}

	got, err = SourceBytes(f1, filepath.Join(dir, "missing.xlsx"), "")
	if err != nil {
		t.Fatal(err)
	}
	if got != 5 {
		t.Errorf("missing skipped: got %d bytes, want 5", got)
	}

	got, err = SourceBytes(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0 {
		t.Errorf("directory: got %d bytes, want 0", got)
	}
}
