package analysis

import (
	"context"

	"github.com/yourusername/clever-forecast/internal/settings"
	"github.com/yourusername/clever-forecast/internal/strategy"
)

// Selection narrows ranked results for presentation
type Selection struct {
	// ValueOnly drops results left without a 1X2 value signal
	ValueOnly bool
	// Top keeps at most this many results; zero keeps all
	Top int
	// MinConfidence drops value and secondary signals below this tier
	MinConfidence strategy.Confidence
}

// StoredSelection reads the selection defaults kept in the settings store.
// A nil store keeps every result and signal.
func StoredSelection(ctx context.Context, store settings.Store) Selection {
	return Selection{
		ValueOnly:     settings.Bool(ctx, store, settings.KeyValueOnly, false),
		Top:           settings.Int(ctx, store, settings.KeyMaxSignals, 0),
		MinConfidence: strategy.ParseConfidence(settings.String(ctx, store, settings.KeyMinConfidence, "")),
	}
}

// Apply returns the selected results in their original order. Results are
// cloned before their signal lists are filtered, so the input is untouched.
func (s Selection) Apply(results []*AnalysisResult) []*AnalysisResult {
	out := make([]*AnalysisResult, 0, len(results))
	for _, r := range results {
		c := r.Clone()
		c.Value = strategy.FilterBest(c.Value, 0, s.MinConfidence)
		c.SecondarySignals = strategy.FilterBest(c.SecondarySignals, 0, s.MinConfidence)

		if s.ValueOnly && len(c.Value) == 0 {
			continue
		}
		out = append(out, c)
		if s.Top > 0 && len(out) == s.Top {
			break
		}
	}
	return out
}
