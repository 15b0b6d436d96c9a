package forecast

import (
	"math"

	"github.com/yourusername/clever-forecast/internal/models"
)

// DefaultEloHomeBonus is the rating bonus applied to the home side
const DefaultEloHomeBonus = 65.0

// Elo derives win expectancy from the rating gap, with draws shrinking as
// the match becomes lopsided
type Elo struct {
	HomeBonus float64
}

// Name implements Model
func (Elo) Name() ModelName { return ModelElo }

// Predict implements Model
func (m Elo) Predict(in MatchInput) models.ModelPrediction {
	homeRating := in.Home.Elo + m.HomeBonus
	expected := 1 / (1 + math.Pow(10, (in.Away.Elo-homeRating)/400))
	drawFactor := 0.26 - 0.2*math.Abs(expected-0.5)

	return models.ModelPrediction{
		HomeWin: clampNonNegative(expected - drawFactor/2),
		Draw:    clampNonNegative(drawFactor),
		AwayWin: clampNonNegative(1 - expected - drawFactor/2),
	}.Normalized()
}
