package strategy

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectValueRejects(t *testing.T) {
	tests := []struct {
		name        string
		probability float64
		odds        float64
		minEdge     float64
	}{
		{"odds of one", 0.9, 1.0, 3},
		{"odds below one", 0.9, 0.5, 3},
		{"zero odds", 0.9, 0, 3},
		{"nan odds", 0.5, math.NaN(), 3},
		{"infinite odds", 0.5, math.Inf(1), 3},
		{"nan probability", math.NaN(), 2.5, 3},
		{"negative edge", 0.4, 2.0, 3},
		{"edge below threshold", 0.51, 2.0, 3},
		{"zero probability", 0, 5.0, 0},
		{"nan threshold", 0.2, 2.0, math.NaN()},
		{"negative infinite threshold", 0.2, 2.0, math.Inf(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, DetectValue(tt.probability, tt.odds, tt.minEdge))
		})
	}
}

func TestNewValueDetectorNonFiniteSettings(t *testing.T) {
	tests := []struct {
		name    string
		minEdge float64
		kelly   float64
	}{
		{"nan edge and fraction", math.NaN(), math.NaN()},
		{"infinite edge and fraction", math.Inf(1), math.Inf(1)},
		{"negative infinite edge", math.Inf(-1), math.Inf(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewValueDetector(tt.minEdge, tt.kelly)
			assert.Equal(t, DefaultMinEdge, d.MinEdgeThreshold)
			assert.Equal(t, DefaultKellyFraction, d.KellyFraction)

			assert.Nil(t, d.Detect("home", 0.2, 2.0))
			s := d.Detect("home", 0.6, 2.0)
			require.NotNil(t, s)
			assert.InDelta(t, 5.0, s.KellyStake, 1e-9)
		})
	}
}

func TestDetectNonFiniteThresholdOnStruct(t *testing.T) {
	d := &ValueDetector{BaseStrategy: BaseStrategy{MinEdgeThreshold: math.NaN(), KellyFraction: 0.25}}
	assert.Nil(t, d.Detect("home", 0.2, 2.0))
	assert.Nil(t, d.Detect("home", 0.9, 2.0))
}

func TestDetectValueNeverBelowThreshold(t *testing.T) {
	for p := 0.01; p < 1; p += 0.01 {
		for o := 0.5; o < 20; o += 0.05 {
			s := DetectValue(p, o, 3)
			if s == nil {
				continue
			}
			assert.Greater(t, o, 1.0)
			assert.GreaterOrEqual(t, s.Edge, 3.0)
			assert.GreaterOrEqual(t, s.KellyStake, 0.0)
		}
	}
}

func TestDetectValueFields(t *testing.T) {
	s := DetectValue(0.6, 2.0, 3)
	require.NotNil(t, s)

	assert.InDelta(t, 20.0, s.Edge, 1e-9)
	assert.InDelta(t, 0.5, s.ImpliedProbability, 1e-12)
	assert.InDelta(t, 0.2, s.ExpectedValue, 1e-12)
	// full Kelly is (1*0.6-0.4)/1 = 0.2, quartered
	assert.InDelta(t, 5.0, s.KellyStake, 1e-9)
	assert.Equal(t, 1.67, s.FairOdds)
	assert.Equal(t, ConfidenceHigh, s.Confidence)
}

func TestConfidenceFor(t *testing.T) {
	tests := []struct {
		edge     float64
		expected Confidence
	}{
		{3, ConfidenceLow},
		{4.99, ConfidenceLow},
		{5, ConfidenceMedium},
		{9.99, ConfidenceMedium},
		{10, ConfidenceHigh},
		{40, ConfidenceHigh},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ConfidenceFor(tt.edge), "edge %v", tt.edge)
	}
}

func TestValueDetectorOddsRange(t *testing.T) {
	d := NewValueDetector(3, 0.25).WithOddsRange(1.5, 3.5)

	assert.Nil(t, d.Detect("home", 0.9, 1.3))
	assert.Nil(t, d.Detect("away", 0.4, 4.0))
	s := d.Detect("draw", 0.4, 3.0)
	require.NotNil(t, s)
	assert.Equal(t, "draw", s.Market)
}

func TestNewValueDetectorDefaults(t *testing.T) {
	d := NewValueDetector(-1, 0)
	assert.Equal(t, DefaultMinEdge, d.MinEdgeThreshold)
	assert.Equal(t, DefaultKellyFraction, d.KellyFraction)

	half := NewValueDetector(0, 0.5)
	s := half.Detect("home", 0.6, 2.0)
	require.NotNil(t, s)
	assert.InDelta(t, 10.0, s.KellyStake, 1e-9)
}

func TestRankSignals(t *testing.T) {
	signals := []ValueSignal{
		{Market: "a", ExpectedValue: 0.10, Confidence: ConfidenceLow},
		{Market: "b", ExpectedValue: 0.08, Confidence: ConfidenceHigh},
		{Market: "c", ExpectedValue: 0.09, Confidence: ConfidenceMedium},
	}

	ranked := RankSignals(signals)
	require.Len(t, ranked, 3)
	assert.Equal(t, "b", ranked[0].Market)
	assert.Equal(t, "c", ranked[1].Market)
	assert.Equal(t, "a", ranked[2].Market)
	assert.Equal(t, "a", signals[0].Market)
}

func TestFilterBest(t *testing.T) {
	signals := []ValueSignal{
		{Market: "a", ExpectedValue: 0.04, Confidence: ConfidenceLow},
		{Market: "b", ExpectedValue: 0.12, Confidence: ConfidenceHigh},
		{Market: "c", ExpectedValue: 0.06, Confidence: ConfidenceMedium},
		{Market: "d", ExpectedValue: 0.15, Confidence: ConfidenceHigh},
	}

	best := FilterBest(signals, 2, ConfidenceMedium)
	require.Len(t, best, 2)
	assert.Equal(t, "d", best[0].Market)
	assert.Equal(t, "b", best[1].Market)

	all := FilterBest(signals, 0, ConfidenceLow)
	assert.Len(t, all, 4)
}

func TestStakeAmount(t *testing.T) {
	s := ValueSignal{KellyStake: 2.345}

	amount := StakeAmount(s, decimal.NewFromInt(1000))
	assert.True(t, decimal.RequireFromString("23.45").Equal(amount), amount.String())

	assert.True(t, StakeAmount(s, decimal.Zero).IsZero())
	assert.True(t, StakeAmount(ValueSignal{}, decimal.NewFromInt(1000)).IsZero())
}

func TestParseConfidence(t *testing.T) {
	assert.Equal(t, ConfidenceHigh, ParseConfidence("high"))
	assert.Equal(t, ConfidenceMedium, ParseConfidence("medium"))
	assert.Equal(t, ConfidenceLow, ParseConfidence("anything"))
}
