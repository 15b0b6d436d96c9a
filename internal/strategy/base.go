package strategy

import (
	"fmt"
	"math"
)

// Default detector settings
const (
	DefaultMinEdge       = 3.0
	DefaultKellyFraction = 0.25
)

// BaseStrategy provides shared pricing checks for the value detector
type BaseStrategy struct {
	MinOdds          float64
	MaxOdds          float64
	KellyFraction    float64
	MinEdgeThreshold float64
}

// ValidateOdds ensures odds are a backable price within the configured bounds
func (b *BaseStrategy) ValidateOdds(odds float64) error {
	if !finite(odds) {
		return fmt.Errorf("odds must be finite")
	}
	if odds <= 1.0 {
		return fmt.Errorf("odds must be greater than 1.0")
	}
	if b.MinOdds > 0 && odds < b.MinOdds {
		return fmt.Errorf("odds below minimum")
	}
	if b.MaxOdds > 0 && odds > b.MaxOdds {
		return fmt.Errorf("odds above maximum")
	}
	return nil
}

// ApplyKellyCriterion returns the fractional Kelly stake as a bankroll
// fraction in [0, 1]. Negative Kelly is floored at zero.
func (b *BaseStrategy) ApplyKellyCriterion(probability float64, odds float64) float64 {
	if probability <= 0 || odds <= 1 {
		return 0
	}
	p := probability
	q := 1.0 - p
	bOdds := odds - 1.0
	kelly := (bOdds*p - q) / bOdds
	if kelly <= 0 {
		return 0
	}
	fraction := b.KellyFraction
	if !finite(fraction) || fraction <= 0 {
		fraction = DefaultKellyFraction
	}
	return kelly * fraction
}

// CalculateExpectedValue returns the expected profit per unit staked
func (b *BaseStrategy) CalculateExpectedValue(probability float64, odds float64) float64 {
	return probability*odds - 1
}

// NormalizeProbability ensures probability in [0,1]
func (b *BaseStrategy) NormalizeProbability(p float64) float64 {
	if !finite(p) {
		return 0
	}
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
