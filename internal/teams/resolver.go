package teams

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/clever-forecast/internal/logger"
	"github.com/yourusername/clever-forecast/internal/models"
)

// Neutral baseline for synthesized profiles
const (
	baselineElo           = 1500.0
	baselineSquadValue    = 50.0
	baselineHomeAdvantage = 0.10
	baselineGoalsHome     = 1.3
	baselineGoalsAway     = 1.0
	baselineConcededHome  = 1.2
	baselineConcededAway  = 1.4

	minSyntheticStrength = 0.5
	maxSyntheticStrength = 2.0
	referencePrice       = 2.5
)

// Matcher is the last-resort lookup used when exact, alias and token matching fail
type Matcher interface {
	Match(normalized string, c *Catalogue) (key string, ok bool)
}

// ContainmentMatcher matches when the input contains a club's display name
// or key, or the display name contains the input. The longest matched text
// wins; equal lengths fall back to the alphabetically first key.
type ContainmentMatcher struct{}

// Match implements Matcher
func (ContainmentMatcher) Match(normalized string, c *Catalogue) (string, bool) {
	if normalized == "" {
		return "", false
	}

	bestKey := ""
	bestLen := 0
	for _, key := range c.keys {
		profile := c.profiles[key]
		name := normalize(profile.Name)
		spacedKey := strings.ReplaceAll(key, "_", " ")

		matched := 0
		if strings.Contains(normalized, name) {
			matched = len(name)
		} else if strings.Contains(name, normalized) {
			matched = len(normalized)
		}
		if strings.Contains(normalized, spacedKey) && len(spacedKey) > matched {
			matched = len(spacedKey)
		}

		if matched > bestLen {
			bestKey = key
			bestLen = matched
		}
	}
	return bestKey, bestLen > 0
}

// Resolver maps free-text team names onto catalogue profiles
type Resolver struct {
	catalogue *Catalogue
	matcher   Matcher
	logger    *logrus.Entry
}

// Option configures a Resolver
type Option func(*Resolver)

// WithMatcher replaces the fuzzy matching strategy
func WithMatcher(m Matcher) Option {
	return func(r *Resolver) {
		r.matcher = m
	}
}

// WithLogger sets the logger used for resolution misses
func WithLogger(l *logrus.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l.WithField("component", "team_resolver")
		}
	}
}

// NewResolver creates a resolver over a catalogue
func NewResolver(c *Catalogue, opts ...Option) *Resolver {
	r := &Resolver{
		catalogue: c,
		matcher:   ContainmentMatcher{},
		logger:    logger.Discard().WithField("component", "team_resolver"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the catalogue profile for a raw team name
func (r *Resolver) Resolve(rawName string) (models.TeamProfile, error) {
	key, ok := r.lookup(rawName, true)
	if !ok {
		return models.TeamProfile{}, fmt.Errorf("%w: %q", models.ErrTeamNotFound, rawName)
	}
	profile, _ := r.catalogue.Profile(key)
	return profile, nil
}

// ResolveOrSynthesize resolves rawName or builds a profile from the market
// price offered on the team. A non-positive price means no hint.
func (r *Resolver) ResolveOrSynthesize(rawName string, referenceOdds float64) models.TeamProfile {
	profile, err := r.Resolve(rawName)
	if err == nil {
		return profile
	}

	synthetic := Synthesize(rawName, referenceOdds)
	r.logger.WithFields(logrus.Fields{
		"team":           rawName,
		"reference_odds": referenceOdds,
		"elo":            synthetic.Elo,
	}).Debug("Synthesized profile for unknown team")
	return synthetic
}

// ResolveForm returns recent form using exact and alias lookup only
func (r *Resolver) ResolveForm(rawName string) models.FormRecord {
	key, ok := r.lookup(rawName, false)
	if !ok {
		return models.NeutralForm
	}
	form, ok := r.catalogue.Form(key)
	if !ok {
		return models.NeutralForm
	}
	return form.OrNeutral()
}

// Teams lists every catalogue profile ordered by key
func (r *Resolver) Teams() []models.TeamProfile {
	keys := r.catalogue.Keys()
	out := make([]models.TeamProfile, 0, len(keys))
	for _, k := range keys {
		p, _ := r.catalogue.Profile(k)
		out = append(out, p)
	}
	return out
}

func (r *Resolver) lookup(rawName string, fuzzy bool) (string, bool) {
	normalized := normalize(rawName)
	if normalized == "" {
		return "", false
	}

	if _, ok := r.catalogue.Profile(normalized); ok {
		return normalized, true
	}
	if key, ok := r.catalogue.Alias(normalized); ok {
		return key, true
	}
	if !fuzzy {
		return "", false
	}

	tok := token(normalized)
	if _, ok := r.catalogue.Profile(tok); ok {
		return tok, true
	}
	return r.matcher.Match(normalized, r.catalogue)
}

// Synthesize builds an ephemeral profile scaled by a single strength value
// derived from the team's price. Cheaper prices mean stronger teams.
func Synthesize(rawName string, referenceOdds float64) models.TeamProfile {
	s := SyntheticStrength(referenceOdds)
	return models.TeamProfile{
		Key:           token(normalize(rawName)),
		Name:          displayName(rawName),
		Elo:           baselineElo + 200*(s-1),
		SquadValue:    baselineSquadValue * s,
		Attack:        s,
		Defense:       s,
		HomeAdvantage: baselineHomeAdvantage,
		GoalsHome:     baselineGoalsHome * s,
		GoalsAway:     baselineGoalsAway * s,
		ConcededHome:  baselineConcededHome / s,
		ConcededAway:  baselineConcededAway / s,
		Synthetic:     true,
	}
}

// SyntheticStrength maps a decimal price onto the [0.5, 2.0] strength range
func SyntheticStrength(referenceOdds float64) float64 {
	if !models.Available(referenceOdds) {
		return 1.0
	}
	s := referencePrice / referenceOdds
	if s < minSyntheticStrength {
		return minSyntheticStrength
	}
	if s > maxSyntheticStrength {
		return maxSyntheticStrength
	}
	return s
}
