// Package models defines core data structures for corpus entries, questions, and answers.
package models

// Entry is one aligned row of the question-answer table.
// All four fields are always present; a missing source cell is the empty string.
type Entry struct {
	QuestionEN string `json:"question_en" db:"question_en"`
	QuestionBN string `json:"question_bn" db:"question_bn"`
	AnswerEN   string `json:"answer_en" db:"answer_en"`
	AnswerBN   string `json:"answer_bn" db:"answer_bn"`
}

// Question returns the entry's question text in lang.
func (e Entry) Question(lang Language) string {
	if lang == Bengali {
		return e.QuestionBN
	}
	return e.QuestionEN
}

// Answer returns the entry's answer text in lang.
func (e Entry) Answer(lang Language) string {
	if lang == Bengali {
		return e.AnswerBN
	}
	return e.AnswerEN
}

// IsBlank reports whether every field of the entry is empty.
func (e Entry) IsBlank() bool {
	return e.QuestionEN == "" && e.QuestionBN == "" && e.AnswerEN == "" && e.AnswerBN == ""
}
