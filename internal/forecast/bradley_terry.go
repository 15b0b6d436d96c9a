package forecast

import (
	"math"

	"github.com/yourusername/clever-forecast/internal/models"
)

// BradleyTerry compares squad strength pairwise
type BradleyTerry struct{}

// Name implements Model
func (BradleyTerry) Name() ModelName { return ModelBradleyTerry }

// Predict implements Model
func (BradleyTerry) Predict(in MatchInput) models.ModelPrediction {
	sh := in.Home.SquadValue * in.Home.Attack * (1 + in.Home.HomeAdvantage)
	sa := in.Away.SquadValue * in.Away.Attack

	pHome := sh / (sh + sa)
	draw := 0.25 - 0.2*math.Abs(pHome-0.5)

	return models.ModelPrediction{
		HomeWin: pHome * (1 - draw),
		Draw:    draw,
		AwayWin: (1 - pHome) * (1 - draw),
	}.Normalized()
}
