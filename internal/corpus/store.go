package corpus

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/hyperjump/cancerqa/pkg/utils"
)

// LoadFunc builds a fresh corpus.
type LoadFunc func(ctx context.Context) (*Corpus, error)

// Store holds the current corpus snapshot. Readers never block; Reload builds
// a complete new snapshot before swapping it in, so in-flight readers keep a
// consistent view and a failed reload leaves the previous snapshot in place.
type Store struct {
	load    LoadFunc
	logger  *zap.Logger
	current atomic.Pointer[Corpus]

	mu      sync.Mutex // serializes reloads and guards lastErr
	lastErr error
}

// NewStore creates an empty store that loads snapshots with load.
func NewStore(load LoadFunc, logger *zap.Logger) *Store {
	return &Store{load: load, logger: utils.OrNop(logger)}
}

// Current returns the active snapshot, or nil if none has loaded.
func (s *Store) Current() *Corpus {
	return s.current.Load()
}

// Ready reports whether a snapshot is available.
func (s *Store) Ready() bool {
	return s.current.Load() != nil
}

// Reload loads a new snapshot and swaps it in on success.
func (s *Store) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.load(ctx)
	if err != nil {
		s.lastErr = err
		s.logger.Error("corpus load failed",
			zap.Bool("previous_snapshot_kept", s.current.Load() != nil),
			zap.Error(err))
		return err
	}
	s.lastErr = nil
	s.current.Store(c)
	s.logger.Info("corpus loaded",
		zap.Int("entries", c.Len()),
		zap.Strings("sources", c.Sources()))
	return nil
}

// LastError returns the error of the most recent failed reload, or nil if the
// latest reload succeeded.
func (s *Store) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}
