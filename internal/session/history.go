// Package session keeps the in-memory chat history of one interactive session.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hyperjump/cancerqa/internal/models"
)

// DefaultMaxTurns bounds how many turns a History retains.
const DefaultMaxTurns = 1000

// ChatTurn is one question and the answer given to it.
type ChatTurn struct {
	ID        string          `json:"id"`
	Question  string          `json:"question"`
	Answer    string          `json:"answer"`
	Language  models.Language `json:"language"`
	Score     float64         `json:"score"`
	Matched   bool            `json:"matched"`
	Timestamp time.Time       `json:"timestamp"`
}

// History is a bounded, concurrency-safe list of chat turns. Nothing is persisted.
type History struct {
	mu       sync.Mutex
	turns    []ChatTurn
	maxTurns int
	now      func() time.Time
}

// NewHistory creates a history retaining at most maxTurns turns (DefaultMaxTurns if <= 0).
func NewHistory(maxTurns int) *History {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	return &History{maxTurns: maxTurns, now: time.Now}
}

// Add records the answer to question and returns the new turn.
func (h *History) Add(question string, res models.MatchResult) ChatTurn {
	turn := ChatTurn{
		ID:        uuid.NewString(),
		Question:  question,
		Answer:    res.Answer,
		Language:  res.Language,
		Score:     res.Score,
		Matched:   res.Matched,
		Timestamp: h.now(),
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.turns = append(h.turns, turn)
	if over := len(h.turns) - h.maxTurns; over > 0 {
		h.turns = append([]ChatTurn(nil), h.turns[over:]...)
	}
	return turn
}

// Recent returns up to n turns, newest first. n <= 0 returns all.
func (h *History) Recent(n int) []ChatTurn {
	h.mu.Lock()
	defer h.mu.Unlock()
	if n <= 0 || n > len(h.turns) {
		n = len(h.turns)
	}
	out := make([]ChatTurn, 0, n)
	for i := len(h.turns) - 1; i >= len(h.turns)-n; i-- {
		out = append(out, h.turns[i])
	}
	return out
}

// Len returns the number of retained turns.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.turns)
}

// Clear forgets every turn.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.turns = nil
}
