// Package storage defines the persistence interface for imported corpora.
package storage

import (
	"context"

	"github.com/hyperjump/cancerqa/internal/models"
)

// Storage persists the question-answer table.
type Storage interface {
	// ReplaceEntries atomically replaces every stored entry with entries, keeping their order.
	ReplaceEntries(ctx context.Context, source string, entries []models.Entry) error
	// ListEntries returns all entries in their stored order.
	ListEntries(ctx context.Context) ([]models.Entry, error)
	CountEntries(ctx context.Context) (int64, error)
	// LastImport returns the latest import record, or nil when nothing was imported.
	LastImport(ctx context.Context) (*models.ImportRecord, error)

	Close() error
}
