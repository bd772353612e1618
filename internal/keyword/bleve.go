package keyword

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/token/stop"
	bleveunicode "github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
	"golang.org/x/text/unicode/norm"

	"github.com/hyperjump/cancerqa/internal/models"
)

// Extractor turns raw text into a TokenSet using bleve's analysis pipeline.
// English text is lower-cased and stop-word filtered; Bengali text is only
// tokenized. Punctuation-only tokens are dropped for both. An Extractor is
// immutable after construction and safe for concurrent use.
type Extractor struct {
	tokenizer analysis.Tokenizer
	lower     analysis.TokenFilter
	stop      analysis.TokenFilter
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*extractorOptions)

type extractorOptions struct {
	stopWordsPath string
	extraStop     []string
}

// WithStopWordsFile adds the stop words listed in path (one or more per line,
// "#" and "|" start comments) to the built-in English list.
func WithStopWordsFile(path string) ExtractorOption {
	return func(o *extractorOptions) { o.stopWordsPath = path }
}

// WithStopWords adds words to the built-in English stop list.
func WithStopWords(words ...string) ExtractorOption {
	return func(o *extractorOptions) { o.extraStop = append(o.extraStop, words...) }
}

// NewExtractor builds an extractor with the standard English stop-word list.
func NewExtractor(opts ...ExtractorOption) (*Extractor, error) {
	var o extractorOptions
	for _, opt := range opts {
		opt(&o)
	}

	stopWords := analysis.NewTokenMap()
	if err := stopWords.LoadBytes(en.EnglishStopWords); err != nil {
		return nil, fmt.Errorf("load english stop words: %w", err)
	}
	if o.stopWordsPath != "" {
		data, err := os.ReadFile(o.stopWordsPath)
		if err != nil {
			return nil, fmt.Errorf("read stop words file: %w", err)
		}
		if err := stopWords.LoadBytes([]byte(strings.ToLower(string(data)))); err != nil {
			return nil, fmt.Errorf("parse stop words file: %w", err)
		}
	}
	for _, w := range o.extraStop {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			stopWords.AddToken(w)
		}
	}

	return &Extractor{
		tokenizer: bleveunicode.NewUnicodeTokenizer(),
		lower:     lowercase.NewLowerCaseFilter(),
		stop:      stop.NewStopTokensFilter(stopWords),
	}, nil
}

// Extract returns the keyword set of text under lang's rules. Invalid UTF-8
// sequences act as word breaks, since the segmenter stops at the first one.
func (x *Extractor) Extract(text string, lang models.Language) TokenSet {
	text = strings.TrimSpace(norm.NFC.String(strings.ToValidUTF8(text, " ")))
	if text == "" {
		return TokenSet{}
	}
	tokens := x.tokenizer.Tokenize([]byte(text))
	if lang != models.Bengali {
		tokens = x.lower.Filter(tokens)
		tokens = x.stop.Filter(tokens)
	}
	set := make(TokenSet, len(tokens))
	for _, tok := range tokens {
		term := string(tok.Term)
		if term == "" || isPunctuation(term) {
			continue
		}
		set[term] = struct{}{}
	}
	return set
}

// isPunctuation reports whether every rune of s is punctuation or a symbol.
func isPunctuation(s string) bool {
	for _, r := range s {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return false
		}
	}
	return true
}
