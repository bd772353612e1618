// Package cli provides CLI output helpers for cancerqa.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/hyperjump/cancerqa/internal/models"
	"github.com/hyperjump/cancerqa/internal/session"
	"github.com/hyperjump/cancerqa/pkg/utils"
)

// OutputFormat is the format for answer output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// ParseOutputFormat validates a user-supplied format name.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case OutputText, OutputJSON:
		return OutputFormat(s), nil
	default:
		return "", fmt.Errorf("unknown output format %q; use text or json", s)
	}
}

// WriteAnswer writes the answer to question in the given format.
func WriteAnswer(w io.Writer, question string, res models.MatchResult, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, res)
	}
	fmt.Fprintf(w, "You (%s): %s\n", res.Language.DisplayName(), question)
	fmt.Fprintf(w, "Bot: %s\n", res.Answer)
	if res.Matched {
		fmt.Fprintf(w, "  [score %.2f] %s\n", res.Score, utils.Truncate(res.MatchedQuestion, 80))
	} else {
		fmt.Fprintf(w, "  [no match, best score %.2f]\n", res.Score)
	}
	return nil
}

// WriteHistory writes chat turns (newest first) in the given format. total is
// the session's turn count, used to number the turns.
func WriteHistory(w io.Writer, turns []session.ChatTurn, total int, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, turns)
	}
	if len(turns) == 0 {
		fmt.Fprintln(w, "No chat history yet.")
		return nil
	}
	for i, turn := range turns {
		fmt.Fprintf(w, "Chat %d - %s (%s)\n", total-i, turn.Timestamp.Format("15:04:05"), turn.Language.DisplayName())
		fmt.Fprintf(w, "  Question: %s\n", turn.Question)
		fmt.Fprintf(w, "  Answer:   %s\n", indent(turn.Answer, "            "))
	}
	return nil
}

// WriteStatus writes corpus status in the given format.
func WriteStatus(w io.Writer, st models.StatusResponse, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, st)
	}
	fmt.Fprintf(w, "ready:         %t\n", st.Ready)
	fmt.Fprintf(w, "entries:       %d   # question-answer pairs loaded\n", st.Entries)
	for _, src := range st.Sources {
		fmt.Fprintf(w, "source:        %s\n", src)
	}
	fmt.Fprintf(w, "source_bytes:  %d\n", st.SourceBytes)
	if !st.LoadedAt.IsZero() {
		fmt.Fprintf(w, "loaded_at:     %s\n", st.LoadedAt.Format(time.RFC3339))
	}
	if st.Import != nil {
		fmt.Fprintf(w, "imported:      %d entries from %s at %s (%d stored)\n",
			st.Import.Entries, st.Import.Source, st.Import.ImportedAt.Format(time.RFC3339), st.Import.Stored)
	}
	fmt.Fprintf(w, "threshold:     %g\n", st.Threshold)
	if st.LastError != "" {
		fmt.Fprintf(w, "last_error:    %s\n", st.LastError)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func indent(s, prefix string) string {
	return strings.ReplaceAll(s, "\n", "\n"+prefix)
}
