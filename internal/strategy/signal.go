package strategy

// Confidence is the qualitative strength of a value signal
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// ParseConfidence maps a string onto a confidence tier, defaulting to low
func ParseConfidence(s string) Confidence {
	switch Confidence(s) {
	case ConfidenceHigh:
		return ConfidenceHigh
	case ConfidenceMedium:
		return ConfidenceMedium
	}
	return ConfidenceLow
}

// rank orders tiers low < medium < high
func (c Confidence) rank() int {
	switch c {
	case ConfidenceHigh:
		return 2
	case ConfidenceMedium:
		return 1
	}
	return 0
}

// weight scales expected value when ranking signals
func (c Confidence) weight() float64 {
	switch c {
	case ConfidenceHigh:
		return 1.5
	case ConfidenceMedium:
		return 1.0
	}
	return 0.5
}

// ConfidenceFor maps an edge percentage to a tier
func ConfidenceFor(edge float64) Confidence {
	switch {
	case edge >= 10:
		return ConfidenceHigh
	case edge >= 5:
		return ConfidenceMedium
	}
	return ConfidenceLow
}

// ValueSignal is a positive-edge back bet on one market
type ValueSignal struct {
	Market             string     `json:"market"`
	Probability        float64    `json:"probability"`
	Odds               float64    `json:"odds"`
	ImpliedProbability float64    `json:"implied_probability"`
	FairOdds           float64    `json:"fair_odds"`
	Edge               float64    `json:"edge"`
	KellyStake         float64    `json:"kelly_stake"`
	ExpectedValue      float64    `json:"expected_value"`
	Confidence         Confidence `json:"confidence"`
}
