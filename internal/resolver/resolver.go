// Package resolver answers a raw question: detect its language, extract its
// keywords, and match them against the current corpus snapshot.
package resolver

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/hyperjump/cancerqa/internal/corpus"
	"github.com/hyperjump/cancerqa/internal/match"
	"github.com/hyperjump/cancerqa/internal/models"
	"github.com/hyperjump/cancerqa/pkg/utils"
)

// ErrNotReady is returned while no corpus snapshot is loaded.
var ErrNotReady = errors.New("corpus not loaded")

// Detector classifies the language of a question.
type Detector interface {
	Detect(text string) models.Language
}

// Snapshotter provides the corpus snapshot to answer against.
type Snapshotter interface {
	Current() *corpus.Corpus
}

// Resolver wires detection, keyword extraction, and matching together.
// It keeps no per-request state and is safe for concurrent use.
type Resolver struct {
	detector  Detector
	tokenizer corpus.Tokenizer
	matcher   *match.Matcher
	corpus    Snapshotter
	logger    *zap.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithLogger sets a logger for per-question debug output.
func WithLogger(l *zap.Logger) ResolverOption {
	return func(r *Resolver) { r.logger = utils.OrNop(l) }
}

// NewResolver creates a resolver over the snapshots served by src.
func NewResolver(detector Detector, tokenizer corpus.Tokenizer, matcher *match.Matcher, src Snapshotter, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		detector:  detector,
		tokenizer: tokenizer,
		matcher:   matcher,
		corpus:    src,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve answers question. It fails only when no corpus is loaded or ctx is
// done; an unmatched question is a normal result with Matched false.
func (r *Resolver) Resolve(ctx context.Context, question string) (models.MatchResult, error) {
	if err := ctx.Err(); err != nil {
		return models.MatchResult{}, err
	}
	c := r.corpus.Current()
	if c == nil {
		return models.MatchResult{}, ErrNotReady
	}
	lang := r.detector.Detect(question)
	tokens := r.tokenizer.Extract(question, lang)
	result := r.matcher.Match(tokens, lang, c)
	if ce := r.logger.Check(zap.DebugLevel, "question resolved"); ce != nil {
		ce.Write(
			zap.String("language", string(lang)),
			zap.Strings("tokens", tokens.Sorted()),
			zap.Float64("score", result.Score),
			zap.Bool("matched", result.Matched))
	}
	return result, nil
}

// Ready reports whether a corpus snapshot is available.
func (r *Resolver) Ready() bool {
	return r.corpus.Current() != nil
}

// Matcher returns the matcher in use.
func (r *Resolver) Matcher() *match.Matcher {
	return r.matcher
}
