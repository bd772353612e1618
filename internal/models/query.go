package models

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// AskRequest is the body of an ask request.
type AskRequest struct {
	Question string `json:"question"`
}

// Validate trims the question and rejects it when it has more than maxLen
// characters (runes, so Bengali and English count alike). maxLen <= 0 disables the check.
// An all-whitespace question is valid and resolves to the fallback answer.
func (q *AskRequest) Validate(maxLen int) error {
	q.Question = strings.TrimSpace(q.Question)
	if n := utf8.RuneCountInString(q.Question); maxLen > 0 && n > maxLen {
		return fmt.Errorf("question exceeds %d characters", maxLen)
	}
	return nil
}
