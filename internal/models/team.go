package models

import "fmt"

// TeamProfile is the immutable strength profile of a club
type TeamProfile struct {
	Key           string  `json:"key"`
	Name          string  `json:"name" validate:"required"`
	Country       string  `json:"country,omitempty"`
	League        string  `json:"league,omitempty"`
	Elo           float64 `json:"elo" validate:"gt=0"`
	SquadValue    float64 `json:"squad_value" validate:"gt=0"`
	Attack        float64 `json:"attack" validate:"gt=0"`
	Defense       float64 `json:"defense" validate:"gt=0"`
	HomeAdvantage float64 `json:"home_advantage" validate:"gte=0"`
	GoalsHome     float64 `json:"avg_goals_home" validate:"gt=0"`
	GoalsAway     float64 `json:"avg_goals_away" validate:"gt=0"`
	ConcededHome  float64 `json:"avg_conceded_home" validate:"gt=0"`
	ConcededAway  float64 `json:"avg_conceded_away" validate:"gt=0"`
	// Synthetic marks a profile derived from market prices for an unknown team
	Synthetic bool `json:"synthetic,omitempty"`
}

// Validate checks that every rate and coefficient is strictly positive
func (t TeamProfile) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"elo", t.Elo},
		{"squad_value", t.SquadValue},
		{"attack", t.Attack},
		{"defense", t.Defense},
		{"avg_goals_home", t.GoalsHome},
		{"avg_goals_away", t.GoalsAway},
		{"avg_conceded_home", t.ConcededHome},
		{"avg_conceded_away", t.ConcededAway},
	}
	for _, f := range fields {
		if !(f.value > 0) {
			return fmt.Errorf("%w: %s %s=%v", ErrInvalidProfile, t.Name, f.name, f.value)
		}
	}
	if t.HomeAdvantage < 0 {
		return fmt.Errorf("%w: %s home_advantage=%v", ErrInvalidProfile, t.Name, t.HomeAdvantage)
	}
	return nil
}
