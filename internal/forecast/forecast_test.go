package forecast

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/clever-forecast/internal/models"
	"github.com/yourusername/clever-forecast/internal/teams"
)

const sumTolerance = 1e-6

func neutralProfile(name string) models.TeamProfile {
	return models.TeamProfile{
		Key: name, Name: name,
		Elo: 1500, SquadValue: 50, Attack: 1, Defense: 1, HomeAdvantage: 0.10,
		GoalsHome: 1.3, GoalsAway: 1.0, ConcededHome: 1.2, ConcededAway: 1.4,
	}
}

func scenarioInput() MatchInput {
	return MatchInput{
		Home: models.TeamProfile{
			Key: "home", Name: "Home",
			Elo: 1680, SquadValue: 185, Attack: 1.2, Defense: 1.1, HomeAdvantage: 0.15,
			GoalsHome: 1.8, GoalsAway: 1.4, ConcededHome: 0.9, ConcededAway: 1.3,
		},
		Away: models.TeamProfile{
			Key: "away", Name: "Away",
			Elo: 1500, SquadValue: 50, Attack: 1.0, Defense: 1.0, HomeAdvantage: 0,
			GoalsHome: 1.3, GoalsAway: 1.0, ConcededHome: 1.2, ConcededAway: 1.4,
		},
		HomeForm: "WWDWLWWDWW",
		AwayForm: models.NeutralForm,
	}
}

// catalogueInputs yields every ordered pair of distinct catalogue clubs
func catalogueInputs(t *testing.T) []MatchInput {
	t.Helper()
	r := teams.NewResolver(teams.DefaultCatalogue())
	list := r.Teams()

	var inputs []MatchInput
	for _, h := range list {
		for _, a := range list {
			if h.Key == a.Key {
				continue
			}
			inputs = append(inputs, MatchInput{
				Home: h, Away: a,
				HomeForm: r.ResolveForm(h.Key), AwayForm: r.ResolveForm(a.Key),
			})
		}
	}
	return inputs
}

func assertDistribution(t *testing.T, p models.ModelPrediction, msg string) {
	t.Helper()
	assert.InDelta(t, 1.0, p.Sum(), sumTolerance, msg)
	assert.GreaterOrEqual(t, p.HomeWin, 0.0, msg)
	assert.GreaterOrEqual(t, p.Draw, 0.0, msg)
	assert.GreaterOrEqual(t, p.AwayWin, 0.0, msg)
}

func TestModelsSumToOne(t *testing.T) {
	inputs := catalogueInputs(t)
	inputs = append(inputs,
		MatchInput{Home: teams.Synthesize("Strong", 1.1), Away: teams.Synthesize("Weak", 15)},
		MatchInput{Home: teams.Synthesize("Weak", 15), Away: teams.Synthesize("Strong", 1.1), HomeForm: "LLLLL", AwayForm: "WWWWW"},
	)

	for _, m := range Library() {
		t.Run(string(m.Name()), func(t *testing.T) {
			for _, in := range inputs {
				assertDistribution(t, m.Predict(in), in.Home.Key+" v "+in.Away.Key)
			}
		})
	}

	e := NewEnsemble(DefaultWeights())
	for _, in := range inputs {
		assertDistribution(t, e.Predict(in).Prediction, "ensemble "+in.Home.Key+" v "+in.Away.Key)
	}
}

func TestExpectedGoalsPositive(t *testing.T) {
	for _, in := range catalogueInputs(t) {
		h, a := ExpectedGoals(in.Home, in.Away)
		assert.Greater(t, h, 0.0)
		assert.Greater(t, a, 0.0)
	}
}

func TestExpectedGoalsFormula(t *testing.T) {
	in := scenarioInput()
	h, a := ExpectedGoals(in.Home, in.Away)
	assert.InDelta(t, (1.8+1.4)/2*1.2*1.15, h, 1e-12)
	assert.InDelta(t, (1.0+0.9)/2*1.0, a, 1e-12)
}

func TestPoissonCarriesExpectedGoals(t *testing.T) {
	in := scenarioInput()
	h, a := ExpectedGoals(in.Home, in.Away)

	for _, m := range []Model{Poisson{}, DixonColes{Rho: DefaultRho}} {
		p := m.Predict(in)
		assert.Equal(t, h, p.HomeXG)
		assert.Equal(t, a, p.AwayXG)
	}
}

func TestDixonColesRaisesDraws(t *testing.T) {
	in := MatchInput{Home: neutralProfile("a"), Away: neutralProfile("b")}

	plain := Poisson{}.Predict(in)
	corrected := DixonColes{Rho: DefaultRho}.Predict(in)
	assert.Greater(t, corrected.Draw, plain.Draw)

	noCorrection := DixonColes{Rho: 0}.Predict(in)
	assert.InDelta(t, plain.HomeWin, noCorrection.HomeWin, 1e-12)
	assert.InDelta(t, plain.Draw, noCorrection.Draw, 1e-12)
}

func TestEloHomeBonus(t *testing.T) {
	m := Elo{HomeBonus: DefaultEloHomeBonus}

	same := m.Predict(MatchInput{Home: neutralProfile("a"), Away: neutralProfile("b")})
	assert.Greater(t, same.HomeWin, same.AwayWin)

	strong := neutralProfile("strong")
	strong.Elo = 1600
	weak := neutralProfile("weak")
	weak.Elo = 1550

	forward := m.Predict(MatchInput{Home: strong, Away: weak})
	reverse := m.Predict(MatchInput{Home: weak, Away: strong})
	assert.Greater(t, forward.HomeWin, reverse.AwayWin)
	assert.Greater(t, reverse.HomeWin, forward.AwayWin)
}

func TestEloDrawShrinksWithGap(t *testing.T) {
	m := Elo{HomeBonus: 0}
	even := m.Predict(MatchInput{Home: neutralProfile("a"), Away: neutralProfile("b")})
	assert.InDelta(t, 0.26, even.Draw, 1e-12)
	assert.InDelta(t, even.HomeWin, even.AwayWin, 1e-12)

	strong := neutralProfile("strong")
	strong.Elo = 1900
	lopsided := m.Predict(MatchInput{Home: strong, Away: neutralProfile("b")})
	assert.Less(t, lopsided.Draw, even.Draw)
}

func TestFormStrength(t *testing.T) {
	tests := []struct {
		name     string
		form     models.FormRecord
		expected float64
	}{
		{"empty defaults to draws", "", 5},
		{"neutral", "DDDDD", 5},
		{"win streak", "DDWWW", (2 + 9) * 1.2},
		{"loss streak floored", "LLLLL", 1},
		{"loss streak momentum", "WWLLL", 6 * 0.8},
		{"only last five", "LLLLLWWDWD", 3 + 3 + 1 + 3 + 1},
		{"unknown scores as draw", "WXWDW", 3 + 1 + 3 + 1 + 3},
		{"short record", "W", 3},
		{"lowercase", "wwwww", 15 * 1.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, FormStrength(tt.form), 1e-12)
		})
	}
}

func TestMarkovNeutralForms(t *testing.T) {
	p := Markov{}.Predict(MatchInput{})
	hb, ab := 0.5*1.1, 0.5*0.9
	assert.InDelta(t, hb/(hb+ab+0.5)*0.8, p.HomeWin, 1e-12)
	assert.InDelta(t, ab/(hb+ab+0.5)*0.8, p.AwayWin, 1e-12)
	assert.Greater(t, p.Draw, p.HomeWin)
}

func TestBradleyTerry(t *testing.T) {
	in := MatchInput{Home: neutralProfile("a"), Away: neutralProfile("b")}
	in.Home.HomeAdvantage = 0

	p := BradleyTerry{}.Predict(in)
	assert.InDelta(t, 0.25, p.Draw, 1e-12)
	assert.InDelta(t, 0.375, p.HomeWin, 1e-12)
	assert.InDelta(t, 0.375, p.AwayWin, 1e-12)
}

func TestDefaultWeights(t *testing.T) {
	w := DefaultWeights()
	assert.Equal(t, 1.0, w.Sum())
	assert.Equal(t, 0.30, w.Of(ModelDixonColes))

	_, err := NewWeights(map[ModelName]float64{
		ModelPoisson: 0.25, ModelDixonColes: 0.30, ModelElo: 0.20, ModelMarkov: 0.15, ModelBradleyTerry: 0.10,
	})
	assert.NoError(t, err)
}

func TestNewWeightsRejects(t *testing.T) {
	tests := []struct {
		name  string
		table map[ModelName]float64
	}{
		{"unknown model", map[ModelName]float64{
			ModelPoisson: 0.2, ModelDixonColes: 0.2, ModelElo: 0.2, ModelMarkov: 0.2, ModelBradleyTerry: 0.1, "neural": 0.1,
		}},
		{"missing model", map[ModelName]float64{
			ModelPoisson: 0.25, ModelDixonColes: 0.35, ModelElo: 0.25, ModelMarkov: 0.15,
		}},
		{"negative weight", map[ModelName]float64{
			ModelPoisson: 0.5, ModelDixonColes: 0.5, ModelElo: 0.2, ModelMarkov: -0.1, ModelBradleyTerry: -0.1,
		}},
		{"sum below one", map[ModelName]float64{
			ModelPoisson: 0.2, ModelDixonColes: 0.2, ModelElo: 0.2, ModelMarkov: 0.2, ModelBradleyTerry: 0.1,
		}},
		{"nan", map[ModelName]float64{
			ModelPoisson: math.NaN(), ModelDixonColes: 0.2, ModelElo: 0.2, ModelMarkov: 0.2, ModelBradleyTerry: 0.1,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWeights(tt.table)
			assert.ErrorIs(t, err, models.ErrInvalidWeights)
		})
	}
}

func TestParseWeights(t *testing.T) {
	w, err := ParseWeights(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultWeights(), w)

	w, err = ParseWeights(map[string]float64{
		"poisson": 0.2, "dixon_coles": 0.2, "elo": 0.2, "markov": 0.2, "bradley_terry": 0.2,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.2, w.Of(ModelElo))

	_, err = ParseWeights(map[string]float64{"poisson": 1.0, "neural": 0})
	assert.ErrorIs(t, err, models.ErrUnknownModel)
}

func TestEnsembleScenario(t *testing.T) {
	res := NewEnsemble(DefaultWeights()).Predict(scenarioInput())

	p := res.Prediction
	assert.Greater(t, p.HomeWin, p.Draw)
	assert.Greater(t, p.HomeWin, p.AwayWin)
	assert.Len(t, res.Models, 5)
	for _, n := range ModelNames {
		assert.Contains(t, res.Models, n)
	}
}

func TestEnsembleIdempotent(t *testing.T) {
	e := NewEnsemble(DefaultWeights())
	in := scenarioInput()

	first := e.Predict(in)
	second := e.Predict(in)
	assert.Equal(t, first, second)
}

func TestSecondaryMarkets(t *testing.T) {
	in := scenarioInput()
	res := NewEnsemble(DefaultWeights()).Predict(in)
	total := res.HomeXG + res.AwayXG

	// adjusted Poisson lambdas, not the raw goal averages
	homeXG, awayXG := ExpectedGoals(in.Home, in.Away)
	assert.Equal(t, homeXG, res.HomeXG)
	assert.Equal(t, awayXG, res.AwayXG)
	assert.NotEqual(t, (in.Home.GoalsHome+in.Away.ConcededAway)/2, res.HomeXG)

	under := math.Exp(-total) * (1 + total + total*total/2)
	assert.InDelta(t, 1-under, res.Over25, 1e-9)
	assert.InDelta(t, 1.0, res.Over25+res.Under25, 1e-12)
	assert.InDelta(t, (1-math.Exp(-res.HomeXG))*(1-math.Exp(-res.AwayXG)), res.BTTS, 1e-12)
	assert.InDelta(t, 1.0, res.NextGoalHome+res.NextGoalAway, 1e-12)
	assert.Greater(t, res.NextGoalHome, res.NextGoalAway)
}

func TestNextGoalShareZero(t *testing.T) {
	h, a := NextGoalShare(0, 0)
	assert.Equal(t, 0.5, h)
	assert.Equal(t, 0.5, a)
	assert.Equal(t, 0.0, OverGoals(0, 2))
}

func TestPercentAndFairOdds(t *testing.T) {
	assert.Equal(t, 63, Percent(0.6297))
	assert.Equal(t, 0, Percent(0))
	assert.Equal(t, 100, Percent(1))

	assert.Equal(t, 2.0, FairOdds(0.5))
	assert.Equal(t, 3.33, FairOdds(0.3))
	assert.Equal(t, 99.0, FairOdds(0))
}

func TestParseModelName(t *testing.T) {
	n, err := ParseModelName(" Dixon_Coles ")
	require.NoError(t, err)
	assert.Equal(t, ModelDixonColes, n)

	_, err = ParseModelName("random_forest")
	assert.ErrorIs(t, err, models.ErrUnknownModel)
}
