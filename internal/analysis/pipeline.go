// Package analysis runs fixtures through team resolution, the model
// ensemble and the value detector, and ranks the results.
package analysis

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/clever-forecast/internal/forecast"
	"github.com/yourusername/clever-forecast/internal/logger"
	"github.com/yourusername/clever-forecast/internal/metrics"
	"github.com/yourusername/clever-forecast/internal/models"
	"github.com/yourusername/clever-forecast/internal/strategy"
	"github.com/yourusername/clever-forecast/internal/teams"
)

// Skip reasons reported for excluded fixtures
const (
	SkipNoMarket = "no_market"
	SkipError    = "error"
)

// Pipeline analyses fixtures. It holds no mutable state besides the
// optional cache and is safe for concurrent use.
type Pipeline struct {
	resolver *teams.Resolver
	ensemble *forecast.Ensemble
	detector *strategy.ValueDetector
	cache    *ResultCache
	workers  int
	log      *logger.AnalysisLogger
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithCache enables result caching
func WithCache(c *ResultCache) Option {
	return func(p *Pipeline) {
		p.cache = c
	}
}

// WithWorkers sets the batch worker count; values below 2 run sequentially
func WithWorkers(n int) Option {
	return func(p *Pipeline) {
		p.workers = n
	}
}

// WithLogger sets the base logger
func WithLogger(l *logrus.Logger) Option {
	return func(p *Pipeline) {
		p.log = logger.NewAnalysisLogger(l)
	}
}

// NewPipeline creates a pipeline from its collaborators
func NewPipeline(resolver *teams.Resolver, ensemble *forecast.Ensemble, detector *strategy.ValueDetector, opts ...Option) *Pipeline {
	p := &Pipeline{
		resolver: resolver,
		ensemble: ensemble,
		detector: detector,
		workers:  1,
		log:      logger.NewAnalysisLogger(nil),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewDefaultPipeline wires the built-in catalogue, default weights and a
// detector with the given edge threshold and Kelly fraction
func NewDefaultPipeline(minEdge, kellyFraction float64, opts ...Option) *Pipeline {
	return NewPipeline(
		teams.NewResolver(teams.DefaultCatalogue()),
		forecast.NewEnsemble(forecast.DefaultWeights()),
		strategy.NewValueDetector(minEdge, kellyFraction),
		opts...,
	)
}

// Resolver returns the team resolver in use
func (p *Pipeline) Resolver() *teams.Resolver {
	return p.resolver
}

// Analyze forecasts one fixture. It fails only with models.ErrNoMarket
// when neither a home nor an away price is available.
func (p *Pipeline) Analyze(f models.Fixture) (*AnalysisResult, error) {
	if !f.Odds.HasMarket() {
		return nil, fmt.Errorf("%w: %s", models.ErrNoMarket, f.Name())
	}

	if p.cache != nil {
		if cached, ok := p.cache.Get(f); ok {
			return cached, nil
		}
	}

	home := p.resolveTeam(f.ID, f.HomeTeam, f.Odds.Home)
	away := p.resolveTeam(f.ID, f.AwayTeam, f.Odds.Away)

	ens := p.ensemble.Predict(forecast.MatchInput{
		Home:     home,
		Away:     away,
		HomeForm: p.resolver.ResolveForm(f.HomeTeam),
		AwayForm: p.resolver.ResolveForm(f.AwayTeam),
	})
	probs := ens.Prediction

	result := &AnalysisResult{
		FixtureID:     f.ID,
		League:        f.League,
		Kickoff:       f.Kickoff,
		HomeTeam:      home.Name,
		AwayTeam:      away.Name,
		HomeSynthetic: home.Synthetic,
		AwaySynthetic: away.Synthetic,
		HomeWin:       forecast.Percent(probs.HomeWin),
		Draw:          forecast.Percent(probs.Draw),
		AwayWin:       forecast.Percent(probs.AwayWin),
		Over25:        forecast.Percent(ens.Over25),
		BTTS:          forecast.Percent(ens.BTTS),
		NextGoalHome:  forecast.Percent(ens.NextGoalHome),
		NextGoalAway:  forecast.Percent(ens.NextGoalAway),
		HomeXG:        round2(ens.HomeXG),
		AwayXG:        round2(ens.AwayXG),
		FairOdds: FairOdds{
			Home: forecast.FairOdds(probs.HomeWin),
			Draw: forecast.FairOdds(probs.Draw),
			Away: forecast.FairOdds(probs.AwayWin),
		},
		Odds:          f.Odds,
		Agreement:     Agreement(ens),
		Models:        ens.Models,
		Probabilities: probs,
	}

	var best *strategy.ValueSignal
	for _, outcome := range models.Outcomes {
		signal := p.detector.Detect(string(outcome), probs.Probability(outcome), f.Odds.Price(outcome))
		if signal == nil {
			continue
		}
		result.Value = append(result.Value, *signal)
		if best == nil || signal.Edge > best.Edge {
			best = signal
			market := outcome
			result.BestMarket = &market
		}
	}
	result.Value = strategy.RankSignals(result.Value)
	if best != nil {
		result.BestEdge = best.Edge
		result.KellyStake = best.KellyStake
	}
	result.Signal = ClassFor(result.BestEdge)
	result.SecondarySignals = p.secondarySignals(ens, f.Odds)

	p.record(result)

	if p.cache != nil {
		p.cache.Set(f, result)
	}
	return result, nil
}

func (p *Pipeline) resolveTeam(fixtureID, name string, referenceOdds float64) models.TeamProfile {
	profile := p.resolver.ResolveOrSynthesize(name, referenceOdds)
	if profile.Synthetic {
		metrics.RecordTeamResolution("synthetic")
		p.log.LogTeamSynthesized(fixtureID, name, referenceOdds, profile.Elo)
	} else {
		metrics.RecordTeamResolution("catalogue")
	}
	return profile
}

func (p *Pipeline) secondarySignals(ens forecast.EnsembleResult, odds models.MatchOdds) []strategy.ValueSignal {
	markets := []struct {
		name        string
		probability float64
		odds        float64
	}{
		{models.MarketOver25, ens.Over25, odds.Over25},
		{models.MarketUnder25, ens.Under25, odds.Under25},
		{models.MarketBTTSYes, ens.BTTS, odds.BTTSYes},
		{models.MarketBTTSNo, 1 - ens.BTTS, odds.BTTSNo},
	}

	var out []strategy.ValueSignal
	for _, m := range markets {
		if s := p.detector.Detect(m.name, m.probability, m.odds); s != nil {
			out = append(out, *s)
		}
	}
	return strategy.RankSignals(out)
}

func (p *Pipeline) record(r *AnalysisResult) {
	metrics.RecordFixtureAnalysed(string(r.Signal))
	metrics.RecordEdge(r.BestEdge)
	for _, s := range append(append([]strategy.ValueSignal{}, r.Value...), r.SecondarySignals...) {
		metrics.RecordValueSignal(s.Market, string(s.Confidence))
		p.log.LogValueSignal(r.FixtureID, s.Market, string(s.Confidence), s.Odds, s.Edge, s.KellyStake)
	}
	p.log.LogFixtureAnalysed(r.FixtureID, r.HomeTeam, r.AwayTeam, string(r.Signal), r.BestEdge, r.Agreement)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
