package analysis

import (
	"time"

	"github.com/yourusername/clever-forecast/internal/forecast"
	"github.com/yourusername/clever-forecast/internal/models"
	"github.com/yourusername/clever-forecast/internal/strategy"
)

// SignalClass is how actionable a fixture is
type SignalClass string

const (
	SignalStrongBuy SignalClass = "strong_buy"
	SignalBuy       SignalClass = "buy"
	SignalHold      SignalClass = "hold"
	SignalAvoid     SignalClass = "avoid"
)

// ClassFor maps a headline edge onto a signal class
func ClassFor(edge float64) SignalClass {
	switch {
	case edge >= 8:
		return SignalStrongBuy
	case edge >= 5:
		return SignalBuy
	case edge >= 2:
		return SignalHold
	}
	return SignalAvoid
}

func (c SignalClass) order() int {
	switch c {
	case SignalStrongBuy:
		return 0
	case SignalBuy:
		return 1
	case SignalHold:
		return 2
	}
	return 3
}

// FairOdds are break-even prices for the 1X2 market
type FairOdds struct {
	Home float64 `json:"home"`
	Draw float64 `json:"draw"`
	Away float64 `json:"away"`
}

// AnalysisResult is the full forecast for one fixture
type AnalysisResult struct {
	FixtureID     string    `json:"fixture_id"`
	League        string    `json:"league,omitempty"`
	Kickoff       time.Time `json:"kickoff,omitempty"`
	HomeTeam      string    `json:"home_team"`
	AwayTeam      string    `json:"away_team"`
	HomeSynthetic bool      `json:"home_synthetic"`
	AwaySynthetic bool      `json:"away_synthetic"`

	// Whole percentages for presentation
	HomeWin      int `json:"home_win"`
	Draw         int `json:"draw"`
	AwayWin      int `json:"away_win"`
	Over25       int `json:"over_25"`
	BTTS         int `json:"btts"`
	NextGoalHome int `json:"next_goal_home"`
	NextGoalAway int `json:"next_goal_away"`

	HomeXG   float64          `json:"home_xg"`
	AwayXG   float64          `json:"away_xg"`
	FairOdds FairOdds         `json:"fair_odds"`
	Odds     models.MatchOdds `json:"odds"`

	BestMarket *models.Outcome `json:"best_market"`
	BestEdge   float64         `json:"best_edge"`
	Signal     SignalClass     `json:"signal"`
	Agreement  float64         `json:"agreement"`
	KellyStake float64         `json:"kelly_stake"`

	Value            []strategy.ValueSignal                        `json:"value"`
	SecondarySignals []strategy.ValueSignal                        `json:"secondary_signals,omitempty"`
	Models           map[forecast.ModelName]models.ModelPrediction `json:"models"`
	Probabilities    models.ModelPrediction                        `json:"probabilities"`
}

// HasValue reports whether any 1X2 market cleared the edge threshold
func (r *AnalysisResult) HasValue() bool {
	return r.BestMarket != nil
}

// Clone returns a copy that shares no slices, maps or pointers with r
func (r *AnalysisResult) Clone() *AnalysisResult {
	if r == nil {
		return nil
	}
	c := *r
	if r.BestMarket != nil {
		market := *r.BestMarket
		c.BestMarket = &market
	}
	c.Value = cloneSignals(r.Value)
	c.SecondarySignals = cloneSignals(r.SecondarySignals)
	if r.Models != nil {
		c.Models = make(map[forecast.ModelName]models.ModelPrediction, len(r.Models))
		for name, p := range r.Models {
			c.Models[name] = p
		}
	}
	return &c
}

func cloneSignals(signals []strategy.ValueSignal) []strategy.ValueSignal {
	if signals == nil {
		return nil
	}
	out := make([]strategy.ValueSignal, len(signals))
	copy(out, signals)
	return out
}
