package corpus

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/hyperjump/cancerqa/internal/models"
	"github.com/hyperjump/cancerqa/internal/storage"
)

// Loader reads question-answer tables from spreadsheet, CSV/TSV, or SQLite sources.
type Loader struct {
	tokenizer Tokenizer
	sheet     string
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithSheet selects the worksheet read from Excel sources (default: first sheet).
func WithSheet(name string) LoaderOption {
	return func(l *Loader) { l.sheet = name }
}

// NewLoader creates a loader that tokenizes questions with tok.
func NewLoader(tok Tokenizer, opts ...LoaderOption) *Loader {
	l := &Loader{tokenizer: tok}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads every path, joins their columns side by side, and builds a corpus.
// It returns a *LoadError and no corpus if any source is missing or malformed,
// a required column is absent, or the joined table has no entries.
func (l *Loader) Load(ctx context.Context, paths ...string) (*Corpus, error) {
	entries, err := l.LoadEntries(ctx, paths...)
	if err != nil {
		return nil, err
	}
	return Build(entries, l.tokenizer, paths...), nil
}

// LoadEntries is Load without tokenization.
func (l *Loader) LoadEntries(ctx context.Context, paths ...string) ([]models.Entry, error) {
	if len(paths) == 0 {
		return nil, notFound("", errors.New("no corpus paths configured"))
	}
	for _, p := range paths {
		if !IsSupported(p) {
			return nil, malformed(p, "unsupported format %q", filepath.Ext(p))
		}
	}
	tables := make([]*table, 0, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t, err := l.readTable(ctx, p)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	source := strings.Join(paths, ",")
	entries, err := joinColumns(tables).entries(source)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, malformed(source, "no entries")
	}
	return entries, nil
}

func (l *Loader) readTable(ctx context.Context, path string) (*table, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, notFound(path, nil)
		}
		return nil, malformed(path, "stat: %w", err)
	}
	if info.IsDir() {
		return nil, malformed(path, "is a directory")
	}
	if storage.IsDatabase(path) {
		return readSQLite(ctx, path)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm":
		return readXLSX(path, l.sheet)
	case ".csv":
		return readDelimited(path, ',')
	case ".tsv":
		return readDelimited(path, '\t')
	default:
		return nil, malformed(path, "unsupported format %q", ext)
	}
}

// IsSupported reports whether path has an extension Load can read.
func IsSupported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".csv", ".tsv":
		return true
	}
	return storage.IsDatabase(path)
}
