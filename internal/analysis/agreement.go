package analysis

import "github.com/yourusername/clever-forecast/internal/forecast"

// Agreement returns the share of models, as a percentage, whose own
// favourite matches the blended favourite
func Agreement(res forecast.EnsembleResult) float64 {
	winner := res.Prediction.Winner()

	agree := 0
	for _, name := range forecast.ModelNames {
		p, ok := res.Models[name]
		if ok && p.Winner() == winner {
			agree++
		}
	}
	return float64(agree) / float64(len(forecast.ModelNames)) * 100
}
