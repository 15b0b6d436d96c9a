package models

import "math"

// ModelPrediction is a 1X2 probability distribution
type ModelPrediction struct {
	HomeWin float64 `json:"home_win"`
	Draw    float64 `json:"draw"`
	AwayWin float64 `json:"away_win"`
	// Expected goals, set only by goal-based models
	HomeXG float64 `json:"home_xg,omitempty"`
	AwayXG float64 `json:"away_xg,omitempty"`
}

// Probability returns the probability assigned to an outcome
func (p ModelPrediction) Probability(outcome Outcome) float64 {
	switch outcome {
	case OutcomeHome:
		return p.HomeWin
	case OutcomeDraw:
		return p.Draw
	case OutcomeAway:
		return p.AwayWin
	}
	return 0
}

// Sum returns the total probability mass
func (p ModelPrediction) Sum() float64 {
	return p.HomeWin + p.Draw + p.AwayWin
}

// Normalized rescales the distribution to sum to 1
func (p ModelPrediction) Normalized() ModelPrediction {
	total := p.Sum()
	if total <= 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return ModelPrediction{HomeWin: 1.0 / 3, Draw: 1.0 / 3, AwayWin: 1.0 / 3, HomeXG: p.HomeXG, AwayXG: p.AwayXG}
	}
	p.HomeWin /= total
	p.Draw /= total
	p.AwayWin /= total
	return p
}

// Winner returns the most likely outcome; any tie goes to the draw
func (p ModelPrediction) Winner() Outcome {
	if p.HomeWin > p.AwayWin && p.HomeWin > p.Draw {
		return OutcomeHome
	}
	if p.AwayWin > p.HomeWin && p.AwayWin > p.Draw {
		return OutcomeAway
	}
	return OutcomeDraw
}
