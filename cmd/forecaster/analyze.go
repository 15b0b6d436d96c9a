package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/yourusername/clever-forecast/internal/analysis"
	"github.com/yourusername/clever-forecast/internal/datasource"
	"github.com/yourusername/clever-forecast/internal/models"
	"github.com/yourusername/clever-forecast/internal/settings"
	"github.com/yourusername/clever-forecast/internal/strategy"
)

var (
	fixturesPath string
	useSources   bool
	jsonOutput   bool
	valueOnly     bool
	topN          int
	minConfidence string
	bankrollFlag  float64
)

func init() {
	analyzeCmd.Flags().StringVarP(&fixturesPath, "fixtures", "f", "examples/fixtures.json", "Fixture file (JSON or CSV)")
	analyzeCmd.Flags().BoolVar(&useSources, "sources", false, "Fetch fixtures from the configured data sources instead of a file")
	analyzeCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print results as JSON")
	analyzeCmd.Flags().BoolVar(&valueOnly, "value-only", false, "Only show fixtures with a value signal (default: stored value_only)")
	analyzeCmd.Flags().IntVar(&topN, "top", 0, "Show at most N fixtures, 0 = all (default: stored max_signals)")
	analyzeCmd.Flags().StringVar(&minConfidence, "min-confidence", "", "Hide signals below low, medium or high (default: stored min_confidence)")
	analyzeCmd.Flags().Float64Var(&bankrollFlag, "bankroll", 0, "Bankroll for stake amounts (default: stored setting)")
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyse fixtures and rank value opportunities",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		pipeline, err := buildPipeline(ctx, store)
		if err != nil {
			return err
		}

		fixtures, sourceErrs, err := loadFixtures(cmd)
		if err != nil {
			return err
		}

		batch, err := pipeline.AnalyzeBatch(ctx, fixtures)
		if err != nil {
			return err
		}

		bankroll := resolveBankroll(settings.Float(ctx, store, settings.KeyBankroll, 0))
		if cmd.Flags().Changed("bankroll") {
			bankroll = resolveBankroll(bankrollFlag)
		}

		results := resolveSelection(cmd, store).Apply(batch.Results)
		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]interface{}{
				"batch_id":      batch.BatchID,
				"results":       results,
				"skipped":       batch.Skipped,
				"value_bets":    batch.ValueBets(),
				"source_errors": sourceErrs,
			})
		}

		renderResults(os.Stdout, results, bankroll)
		renderSkipped(os.Stdout, batch.Skipped)
		for _, e := range sourceErrs {
			fmt.Fprintf(os.Stderr, "source error: %v\n", e)
		}
		fmt.Printf("\n%d fixtures analysed, %d value bets, %d skipped (batch %s, %s)\n",
			len(batch.Results), batch.ValueBets(), len(batch.Skipped), batch.BatchID, batch.Duration)
		return nil
	},
}

func loadFixtures(cmd *cobra.Command) ([]models.Fixture, []*datasource.SourceError, error) {
	if useSources {
		collector, err := datasource.NewFactory(cfg, log).NewCollector()
		if err != nil {
			return nil, nil, err
		}
		res := collector.Collect(cmd.Context())
		return res.Fixtures, res.Errors, nil
	}

	src := datasource.NewFileSource("file", fixturesPath, true, log)
	fixtures, err := src.FetchFixtures(cmd.Context())
	if err != nil {
		return nil, nil, err
	}
	return fixtures, nil, nil
}

// resolveSelection starts from the stored defaults; explicit flags win
func resolveSelection(cmd *cobra.Command, store settings.Store) analysis.Selection {
	sel := analysis.StoredSelection(cmd.Context(), store)
	if cmd.Flags().Changed("value-only") {
		sel.ValueOnly = valueOnly
	}
	if cmd.Flags().Changed("top") {
		sel.Top = topN
	}
	if cmd.Flags().Changed("min-confidence") {
		sel.MinConfidence = strategy.ParseConfidence(minConfidence)
	}
	return sel
}

func resolveBankroll(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}
