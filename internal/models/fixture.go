package models

import "time"

// Fixture is one match to be priced
type Fixture struct {
	ID       string    `json:"id"`
	League   string    `json:"league,omitempty"`
	Kickoff  time.Time `json:"kickoff,omitempty"`
	HomeTeam string    `json:"home_team" validate:"required"`
	AwayTeam string    `json:"away_team" validate:"required"`
	Odds     MatchOdds `json:"odds"`
	Source   string    `json:"source,omitempty"`
}

// Name returns a human-readable label
func (f Fixture) Name() string {
	return f.HomeTeam + " vs " + f.AwayTeam
}
