package models

// MatchResult is the outcome of answering one question.
// Matched is false when no candidate cleared the threshold; Answer is then the
// fallback message in Language.
type MatchResult struct {
	Answer          string   `json:"answer"`
	Score           float64  `json:"score"`
	Language        Language `json:"language"`
	Matched         bool     `json:"matched"`
	MatchedQuestion string   `json:"matched_question,omitempty"`
}

// ErrorResponse is the JSON body returned for failed API requests.
type ErrorResponse struct {
	Error string `json:"error"`
}
