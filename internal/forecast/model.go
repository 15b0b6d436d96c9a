package forecast

import (
	"fmt"
	"strings"

	"github.com/yourusername/clever-forecast/internal/models"
)

// ModelName identifies one of the built-in outcome models
type ModelName string

const (
	ModelPoisson      ModelName = "poisson"
	ModelDixonColes   ModelName = "dixon_coles"
	ModelElo          ModelName = "elo"
	ModelMarkov       ModelName = "markov"
	ModelBradleyTerry ModelName = "bradley_terry"
)

// ModelNames lists every model in evaluation order
var ModelNames = []ModelName{
	ModelPoisson,
	ModelDixonColes,
	ModelElo,
	ModelMarkov,
	ModelBradleyTerry,
}

// ParseModelName converts a string into a known model name
func ParseModelName(s string) (ModelName, error) {
	name := ModelName(strings.ToLower(strings.TrimSpace(s)))
	for _, n := range ModelNames {
		if n == name {
			return n, nil
		}
	}
	return "", fmt.Errorf("%w: %q", models.ErrUnknownModel, s)
}

// MatchInput carries everything the models need for one fixture
type MatchInput struct {
	Home     models.TeamProfile
	Away     models.TeamProfile
	HomeForm models.FormRecord
	AwayForm models.FormRecord
}

// Model produces a 1X2 distribution for a fixture
type Model interface {
	Name() ModelName
	Predict(in MatchInput) models.ModelPrediction
}

// Library returns one instance of every built-in model in evaluation order
func Library() []Model {
	return []Model{
		Poisson{},
		DixonColes{Rho: DefaultRho},
		Elo{HomeBonus: DefaultEloHomeBonus},
		Markov{},
		BradleyTerry{},
	}
}

func clampNonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
