package main

import (
	"context"
	"fmt"

	"github.com/yourusername/clever-forecast/internal/analysis"
	"github.com/yourusername/clever-forecast/internal/forecast"
	"github.com/yourusername/clever-forecast/internal/settings"
	"github.com/yourusername/clever-forecast/internal/strategy"
	"github.com/yourusername/clever-forecast/internal/teams"
)

// buildPipeline wires the pipeline from config, letting stored settings
// override the edge threshold and Kelly fraction
func buildPipeline(ctx context.Context, store settings.Store) (*analysis.Pipeline, error) {
	weights, err := forecast.ParseWeights(cfg.Analysis.Weights)
	if err != nil {
		return nil, fmt.Errorf("invalid model weights: %w", err)
	}

	minEdge := settings.Float(ctx, store, settings.KeyMinEdge, cfg.Analysis.MinEdge)
	kelly := settings.Float(ctx, store, settings.KeyKellyFraction, cfg.Analysis.KellyFraction)

	detector := strategy.NewValueDetector(minEdge, kelly).
		WithOddsRange(cfg.Analysis.MinOdds, cfg.Analysis.MaxOdds)

	opts := []analysis.Option{
		analysis.WithWorkers(cfg.Analysis.Workers),
		analysis.WithLogger(log),
	}
	if cfg.Analysis.CacheMaxSize > 0 && cfg.Analysis.CacheTTL > 0 {
		opts = append(opts, analysis.WithCache(analysis.NewResultCache(cfg.Analysis.CacheTTL, cfg.Analysis.CacheMaxSize)))
	}

	return analysis.NewPipeline(
		teams.NewResolver(teams.DefaultCatalogue(), teams.WithLogger(log)),
		forecast.NewEnsemble(weights),
		detector,
		opts...,
	), nil
}

func openStore(ctx context.Context) (settings.Store, error) {
	store, err := settings.Open(ctx, cfg.Settings, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open settings store: %w", err)
	}
	return store, nil
}
