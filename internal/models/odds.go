package models

import "math"

// Outcome is one leg of the 1X2 market
type Outcome string

const (
	OutcomeHome Outcome = "home"
	OutcomeDraw Outcome = "draw"
	OutcomeAway Outcome = "away"
)

// Outcomes lists the 1X2 legs in tie-break order
var Outcomes = []Outcome{OutcomeHome, OutcomeDraw, OutcomeAway}

// Secondary market identifiers
const (
	MarketOver25  = "over_2.5"
	MarketUnder25 = "under_2.5"
	MarketBTTSYes = "btts_yes"
	MarketBTTSNo  = "btts_no"
)

// MatchOdds holds decimal prices for a fixture; zero means unavailable
type MatchOdds struct {
	Home    float64 `json:"home" validate:"gte=0"`
	Draw    float64 `json:"draw" validate:"gte=0"`
	Away    float64 `json:"away" validate:"gte=0"`
	Over25  float64 `json:"over_25,omitempty" validate:"gte=0"`
	Under25 float64 `json:"under_25,omitempty" validate:"gte=0"`
	BTTSYes float64 `json:"btts_yes,omitempty" validate:"gte=0"`
	BTTSNo  float64 `json:"btts_no,omitempty" validate:"gte=0"`
}

// Price returns the decimal price for an outcome
func (o MatchOdds) Price(outcome Outcome) float64 {
	switch outcome {
	case OutcomeHome:
		return o.Home
	case OutcomeDraw:
		return o.Draw
	case OutcomeAway:
		return o.Away
	}
	return 0
}

// HasMarket reports whether a home or away price is available
func (o MatchOdds) HasMarket() bool {
	return Available(o.Home) || Available(o.Away)
}

// Available reports whether a price can be backed
func Available(price float64) bool {
	return price > 0 && !math.IsNaN(price) && !math.IsInf(price, 0)
}

// ImpliedProbability returns the implied probability of a decimal price
func ImpliedProbability(price float64) float64 {
	if price <= 0 {
		return 0
	}
	return 1.0 / price
}
