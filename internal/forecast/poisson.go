package forecast

import (
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/yourusername/clever-forecast/internal/models"
)

// MaxGoals is the highest per-side score enumerated
const MaxGoals = 7

// DefaultRho is the Dixon-Coles low-score dependence coefficient
const DefaultRho = -0.13

// ExpectedGoals returns the home and away scoring rates
func ExpectedGoals(home, away models.TeamProfile) (float64, float64) {
	homeXG := (home.GoalsHome + away.ConcededAway) / 2 * home.Attack * (1 + home.HomeAdvantage)
	awayXG := (away.GoalsAway + home.ConcededHome) / 2 * away.Attack
	return homeXG, awayXG
}

// scoreGrid returns P(home=i, away=j) for i, j in [0, MaxGoals]
func scoreGrid(homeXG, awayXG float64) [MaxGoals + 1][MaxGoals + 1]float64 {
	hd := distuv.Poisson{Lambda: homeXG}
	ad := distuv.Poisson{Lambda: awayXG}

	var grid [MaxGoals + 1][MaxGoals + 1]float64
	for i := 0; i <= MaxGoals; i++ {
		ph := hd.Prob(float64(i))
		for j := 0; j <= MaxGoals; j++ {
			grid[i][j] = ph * ad.Prob(float64(j))
		}
	}
	return grid
}

// bucket folds a score grid into 1X2 probabilities, rescaled by the
// enumerated mass so the truncated tail is spread proportionally
func bucket(grid [MaxGoals + 1][MaxGoals + 1]float64, homeXG, awayXG float64) models.ModelPrediction {
	var p models.ModelPrediction
	for i := 0; i <= MaxGoals; i++ {
		for j := 0; j <= MaxGoals; j++ {
			switch {
			case i > j:
				p.HomeWin += grid[i][j]
			case i == j:
				p.Draw += grid[i][j]
			default:
				p.AwayWin += grid[i][j]
			}
		}
	}
	p = p.Normalized()
	p.HomeXG = homeXG
	p.AwayXG = awayXG
	return p
}

// Poisson treats each side's goals as independent Poisson counts
type Poisson struct{}

// Name implements Model
func (Poisson) Name() ModelName { return ModelPoisson }

// Predict implements Model
func (Poisson) Predict(in MatchInput) models.ModelPrediction {
	homeXG, awayXG := ExpectedGoals(in.Home, in.Away)
	return bucket(scoreGrid(homeXG, awayXG), homeXG, awayXG)
}

// DixonColes reweights the four lowest scorelines of the Poisson grid
type DixonColes struct {
	Rho float64
}

// Name implements Model
func (DixonColes) Name() ModelName { return ModelDixonColes }

// Predict implements Model
func (m DixonColes) Predict(in MatchInput) models.ModelPrediction {
	homeXG, awayXG := ExpectedGoals(in.Home, in.Away)
	grid := scoreGrid(homeXG, awayXG)

	grid[0][0] *= clampNonNegative(1 - homeXG*awayXG*m.Rho)
	grid[0][1] *= clampNonNegative(1 + homeXG*m.Rho)
	grid[1][0] *= clampNonNegative(1 + awayXG*m.Rho)
	grid[1][1] *= clampNonNegative(1 - m.Rho)

	return bucket(grid, homeXG, awayXG)
}
