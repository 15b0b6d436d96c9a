package forecast

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/yourusername/clever-forecast/internal/models"
)

// EnsembleResult is the blended forecast for one fixture
type EnsembleResult struct {
	Prediction   models.ModelPrediction               `json:"prediction"`
	Over25       float64                              `json:"over_25"`
	Under25      float64                              `json:"under_25"`
	BTTS         float64                              `json:"btts"`
	NextGoalHome float64                              `json:"next_goal_home"`
	NextGoalAway float64                              `json:"next_goal_away"`
	HomeXG       float64                              `json:"home_xg"`
	AwayXG       float64                              `json:"away_xg"`
	Models       map[ModelName]models.ModelPrediction `json:"models"`
}

// Ensemble blends the model library with a fixed weight table
type Ensemble struct {
	weights Weights
	library []Model
}

// NewEnsemble creates an ensemble over the built-in models
func NewEnsemble(weights Weights) *Ensemble {
	return &Ensemble{
		weights: weights,
		library: Library(),
	}
}

// Weights returns the blend table in use
func (e *Ensemble) Weights() Weights {
	return e.weights
}

// Predict runs every model and blends their outputs
func (e *Ensemble) Predict(in MatchInput) EnsembleResult {
	result := EnsembleResult{
		Models: make(map[ModelName]models.ModelPrediction, len(e.library)),
	}

	var blended models.ModelPrediction
	for _, m := range e.library {
		p := m.Predict(in)
		result.Models[m.Name()] = p

		w := e.weights.Of(m.Name())
		blended.HomeWin += p.HomeWin * w
		blended.Draw += p.Draw * w
		blended.AwayWin += p.AwayWin * w
	}

	homeXG, awayXG := ExpectedGoals(in.Home, in.Away)
	blended = blended.Normalized()
	blended.HomeXG = homeXG
	blended.AwayXG = awayXG

	result.Prediction = blended
	result.HomeXG = homeXG
	result.AwayXG = awayXG
	result.Over25 = OverGoals(homeXG+awayXG, 2)
	result.Under25 = 1 - result.Over25
	result.BTTS = BothTeamsToScore(homeXG, awayXG)
	result.NextGoalHome, result.NextGoalAway = NextGoalShare(homeXG, awayXG)
	return result
}

// OverGoals returns P(total > line) for a combined Poisson rate
func OverGoals(totalXG float64, line int) float64 {
	if totalXG <= 0 {
		return 0
	}
	return 1 - distuv.Poisson{Lambda: totalXG}.CDF(float64(line))
}

// BothTeamsToScore assumes the two sides score independently
func BothTeamsToScore(homeXG, awayXG float64) float64 {
	return (1 - math.Exp(-homeXG)) * (1 - math.Exp(-awayXG))
}

// NextGoalShare splits the next goal by scoring rate
func NextGoalShare(homeXG, awayXG float64) (float64, float64) {
	total := homeXG + awayXG
	if total <= 0 {
		return 0.5, 0.5
	}
	return homeXG / total, awayXG / total
}

// Percent rounds a probability to a whole percentage
func Percent(p float64) int {
	return int(math.Round(p * 100))
}

// FairOdds returns the break-even decimal price for a probability
func FairOdds(p float64) float64 {
	if p <= 0 {
		return 99
	}
	return math.Round(100/p) / 100
}
