package analysis

import (
	"github.com/shopspring/decimal"

	"github.com/yourusername/clever-forecast/internal/strategy"
)

// HeadlineSignal returns the value signal behind BestMarket
func (r *AnalysisResult) HeadlineSignal() (strategy.ValueSignal, bool) {
	if r.BestMarket == nil {
		return strategy.ValueSignal{}, false
	}
	for _, s := range r.Value {
		if s.Market == string(*r.BestMarket) {
			return s, true
		}
	}
	return strategy.ValueSignal{}, false
}

// StakeFor converts the headline Kelly percentage into a currency amount.
// Zero when there is no headline signal or no bankroll.
func StakeFor(r *AnalysisResult, bankroll decimal.Decimal) decimal.Decimal {
	signal, ok := r.HeadlineSignal()
	if !ok || !bankroll.IsPositive() {
		return decimal.Zero
	}
	return strategy.StakeAmount(signal, bankroll)
}
