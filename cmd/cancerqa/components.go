package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hyperjump/cancerqa/internal/config"
	"github.com/hyperjump/cancerqa/internal/corpus"
	"github.com/hyperjump/cancerqa/internal/keyword"
	"github.com/hyperjump/cancerqa/internal/language"
	"github.com/hyperjump/cancerqa/internal/match"
	"github.com/hyperjump/cancerqa/internal/models"
	"github.com/hyperjump/cancerqa/internal/resolver"
)

// Components holds the wired answering pipeline.
type Components struct {
	Extractor *keyword.Extractor
	Loader    *corpus.Loader
	Store     *corpus.Store
	Matcher   *match.Matcher
	Resolver  *resolver.Resolver
}

// initializeComponents wires extractor, loader, store, matcher and resolver.
// The store starts empty; call Store.Reload to load the corpus.
func initializeComponents(cfg *config.Config, logger *zap.Logger) (*Components, error) {
	var extOpts []keyword.ExtractorOption
	if cfg.Matching.StopWordsPath != "" {
		extOpts = append(extOpts, keyword.WithStopWordsFile(cfg.Matching.StopWordsPath))
	}
	ext, err := keyword.NewExtractor(extOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize keyword extractor: %w", err)
	}

	loader := corpus.NewLoader(ext, corpus.WithSheet(cfg.Corpus.Sheet))
	paths := append([]string(nil), cfg.Corpus.Paths...)
	store := corpus.NewStore(func(ctx context.Context) (*corpus.Corpus, error) {
		return loader.Load(ctx, paths...)
	}, logger)

	matcher := match.NewMatcher(cfg.Matching.Threshold,
		match.WithFallback(models.English, cfg.Matching.FallbackEN),
		match.WithFallback(models.Bengali, cfg.Matching.FallbackBN),
	)
	res := resolver.NewResolver(language.NewDetector(), ext, matcher, store, resolver.WithLogger(logger))

	return &Components{
		Extractor: ext,
		Loader:    loader,
		Store:     store,
		Matcher:   matcher,
		Resolver:  res,
	}, nil
}
