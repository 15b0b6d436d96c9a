package forecast

import "github.com/yourusername/clever-forecast/internal/models"

const (
	formWindow     = 5
	momentumWindow = 3
	drawMass       = 0.5
	winCeiling     = 0.8
)

// Markov scores recent form with a momentum bonus for streaks
type Markov struct{}

// Name implements Model
func (Markov) Name() ModelName { return ModelMarkov }

// Predict implements Model
func (Markov) Predict(in MatchInput) models.ModelPrediction {
	hs := FormStrength(in.HomeForm)
	as := FormStrength(in.AwayForm)

	hb := hs / (hs + as) * 1.1
	ab := as / (hs + as) * 0.9
	home := hb / (hb + ab + drawMass) * winCeiling
	away := ab / (hb + ab + drawMass) * winCeiling

	return models.ModelPrediction{
		HomeWin: home,
		Draw:    1 - home - away,
		AwayWin: away,
	}
}

// FormStrength scores the last five results, W=3 D=1 L=0
func FormStrength(form models.FormRecord) float64 {
	recent := form.OrNeutral().Recent(formWindow)

	score := 0.0
	for _, r := range recent {
		switch r {
		case 'W':
			score += 3
		case 'L':
		default:
			score++
		}
	}

	if len(recent) >= momentumWindow {
		switch recent.Recent(momentumWindow) {
		case "WWW":
			score *= 1.2
		case "LLL":
			score *= 0.8
		}
	}

	if score < 1 {
		return 1
	}
	return score
}
