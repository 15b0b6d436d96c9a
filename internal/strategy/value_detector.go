package strategy

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/yourusername/clever-forecast/internal/models"
)

// ValueDetector finds markets where the model price beats the book price
type ValueDetector struct {
	BaseStrategy
}

// NewValueDetector creates a detector with the given edge threshold and
// Kelly fraction. A negative or non-finite edge and a non-positive or
// non-finite fraction use the defaults.
func NewValueDetector(minEdge, kellyFraction float64) *ValueDetector {
	if !finite(minEdge) || minEdge < 0 {
		minEdge = DefaultMinEdge
	}
	if !finite(kellyFraction) || kellyFraction <= 0 {
		kellyFraction = DefaultKellyFraction
	}
	return &ValueDetector{
		BaseStrategy: BaseStrategy{
			KellyFraction:    kellyFraction,
			MinEdgeThreshold: minEdge,
		},
	}
}

// WithOddsRange restricts signals to prices inside [min, max]; zero disables a bound
func (d *ValueDetector) WithOddsRange(minOdds, maxOdds float64) *ValueDetector {
	d.MinOdds = minOdds
	d.MaxOdds = maxOdds
	return d
}

// Detect evaluates one market. It returns nil when the price is not
// backable, outside the odds range, or the edge is below threshold. A
// non-finite threshold never qualifies anything.
func (d *ValueDetector) Detect(market string, probability, odds float64) *ValueSignal {
	if !finite(d.MinEdgeThreshold) {
		return nil
	}
	if err := d.ValidateOdds(odds); err != nil {
		return nil
	}
	if !finite(probability) {
		return nil
	}
	p := d.NormalizeProbability(probability)

	ev := d.CalculateExpectedValue(p, odds)
	edge := ev * 100
	if edge < d.MinEdgeThreshold {
		return nil
	}

	fair := 99.0
	if p > 0 {
		fair = math.Round(100/p) / 100
	}

	return &ValueSignal{
		Market:             market,
		Probability:        p,
		Odds:               odds,
		ImpliedProbability: models.ImpliedProbability(odds),
		FairOdds:           fair,
		Edge:               edge,
		KellyStake:         d.ApplyKellyCriterion(p, odds) * 100,
		ExpectedValue:      ev,
		Confidence:         ConfidenceFor(edge),
	}
}

// DetectValue evaluates a single price with quarter Kelly and no odds range
func DetectValue(probability, odds, minEdgePercent float64) *ValueSignal {
	d := ValueDetector{BaseStrategy: BaseStrategy{
		KellyFraction:    DefaultKellyFraction,
		MinEdgeThreshold: minEdgePercent,
	}}
	return d.Detect("", probability, odds)
}

// RankSignals orders signals by expected value weighted by confidence, best first
func RankSignals(signals []ValueSignal) []ValueSignal {
	if signals == nil {
		return nil
	}
	out := make([]ValueSignal, len(signals))
	copy(out, signals)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ExpectedValue*out[i].Confidence.weight() > out[j].ExpectedValue*out[j].Confidence.weight()
	})
	return out
}

// FilterBest keeps at most max ranked signals at or above minConfidence
func FilterBest(signals []ValueSignal, max int, minConfidence Confidence) []ValueSignal {
	var out []ValueSignal
	for _, s := range RankSignals(signals) {
		if s.Confidence.rank() < minConfidence.rank() {
			continue
		}
		out = append(out, s)
		if max > 0 && len(out) == max {
			break
		}
	}
	return out
}

// StakeAmount converts the Kelly percentage into a money amount rounded to cents
func StakeAmount(signal ValueSignal, bankroll decimal.Decimal) decimal.Decimal {
	if signal.KellyStake <= 0 || !bankroll.IsPositive() {
		return decimal.Zero
	}
	return bankroll.Mul(decimal.NewFromFloat(signal.KellyStake)).Div(decimal.NewFromInt(100)).Round(2)
}
