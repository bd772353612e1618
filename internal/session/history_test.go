package session

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hyperjump/cancerqa/internal/models"
)

func TestHistory_AddAndRecent(t *testing.T) {
	h := NewHistory(0)
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	tick := 0
	h.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	for i, q := range []string{"one", "two", "three"} {
		turn := h.Add(q, models.MatchResult{Answer: "a-" + q, Language: models.English, Score: float64(i) / 2, Matched: i > 0})
		if _, err := uuid.Parse(turn.ID); err != nil {
			t.Errorf("turn ID %q is not a UUID: %v", turn.ID, err)
		}
	}
	if h.Len() != 3 {
		t.Fatalf("Len = %d, want 3", h.Len())
	}

	recent := h.Recent(2)
	if len(recent) != 2 || recent[0].Question != "three" || recent[1].Question != "two" {
		t.Errorf("Recent(2) = %+v", recent)
	}
	if !recent[0].Timestamp.After(recent[1].Timestamp) {
		t.Error("newest turn should come first")
	}
	if recent[0].Answer != "a-three" || !recent[0].Matched || recent[0].Score != 1 {
		t.Errorf("turn fields: %+v", recent[0])
	}
	if all := h.Recent(0); len(all) != 3 || all[2].Question != "one" {
		t.Errorf("Recent(0) = %+v", all)
	}
	if all := h.Recent(10); len(all) != 3 {
		t.Errorf("Recent(10) len = %d", len(all))
	}
	if h.Recent(1)[0].ID == h.Recent(2)[1].ID {
		t.Error("turn IDs should be unique")
	}
}

func TestHistory_Bounded(t *testing.T) {
	h := NewHistory(2)
	h.Add("one", models.MatchResult{})
	h.Add("two", models.MatchResult{})
	h.Add("three", models.MatchResult{})
	recent := h.Recent(0)
	if len(recent) != 2 || recent[0].Question != "three" || recent[1].Question != "two" {
		t.Errorf("Recent = %+v", recent)
	}
}

func TestHistory_Clear(t *testing.T) {
	h := NewHistory(5)
	h.Add("one", models.MatchResult{})
	h.Clear()
	if h.Len() != 0 || len(h.Recent(5)) != 0 {
		t.Error("history should be empty after Clear")
	}
}
