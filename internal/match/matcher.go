package match

import (
	"github.com/hyperjump/cancerqa/internal/corpus"
	"github.com/hyperjump/cancerqa/internal/keyword"
	"github.com/hyperjump/cancerqa/internal/models"
)

// Default fallback answers returned when nothing matches.
const (
	DefaultFallbackEN = "Sorry, I couldn't find an answer to this question. Please try another."
	DefaultFallbackBN = "দুঃখিত, আমি এই প্রশ্নের উত্তর খুঁজে পাইনি। আরেকটি প্রশ্ন করুন।"
)

// Matcher selects the best-scoring answer of a language partition.
// It holds no mutable state and is safe for concurrent use.
type Matcher struct {
	threshold float64
	fallback  [2]string
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithFallback overrides the fallback answer for lang. Empty text keeps the default.
func WithFallback(lang models.Language, text string) Option {
	return func(m *Matcher) {
		if text != "" {
			m.fallback[lang.Index()] = text
		}
	}
}

// NewMatcher creates a matcher that accepts a best candidate scoring at least
// threshold. Threshold 0 accepts any candidate sharing at least one token.
func NewMatcher(threshold float64, opts ...Option) *Matcher {
	m := &Matcher{threshold: threshold}
	m.fallback[models.English.Index()] = DefaultFallbackEN
	m.fallback[models.Bengali.Index()] = DefaultFallbackBN
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Threshold returns the minimum accepted score.
func (m *Matcher) Threshold() float64 {
	return m.threshold
}

// Fallback returns the fallback answer for lang.
func (m *Matcher) Fallback(lang models.Language) string {
	return m.fallback[lang.Index()]
}

// Match scores query against every record of lang's partition in c. The first
// record with the highest score wins ties; records without an answer in lang
// are skipped. A result is matched only when that score is positive and
// reaches the threshold; otherwise the answer is the fallback and Score is
// still the best score seen.
func (m *Matcher) Match(query keyword.TokenSet, lang models.Language, c *corpus.Corpus) models.MatchResult {
	result := models.MatchResult{Language: lang}
	best := -1
	if c != nil {
		for i, rec := range c.Partition(lang) {
			if rec.Answer == "" {
				continue
			}
			score := Jaccard(query, rec.Tokens)
			if best < 0 || score > result.Score {
				best = i
				result.Score = score
			}
		}
	}
	if best < 0 || result.Score <= 0 || result.Score < m.threshold {
		result.Answer = m.Fallback(lang)
		return result
	}
	rec := c.Partition(lang)[best]
	result.Answer = rec.Answer
	result.MatchedQuestion = rec.Question
	result.Matched = true
	return result
}
