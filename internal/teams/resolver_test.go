package teams

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/clever-forecast/internal/models"
)

func newTestResolver() *Resolver {
	return NewResolver(DefaultCatalogue())
}

func TestDefaultCatalogue(t *testing.T) {
	c := DefaultCatalogue()
	assert.Equal(t, 24, c.Len())

	for _, key := range c.Keys() {
		p, ok := c.Profile(key)
		require.True(t, ok)
		assert.NoError(t, p.Validate(), key)
		form, ok := c.Form(key)
		assert.True(t, ok, "missing form for %s", key)
		assert.Len(t, form, 10)
	}
}

func TestResolveCaseInsensitive(t *testing.T) {
	r := newTestResolver()

	tests := []string{"Flamengo", "flamengo", "FLAMENGO", "  Flamengo  ", "CR Flamengo"}
	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			p, err := r.Resolve(name)
			require.NoError(t, err)
			assert.Equal(t, "flamengo", p.Key)
			assert.Equal(t, 1680.0, p.Elo)
		})
	}
}

func TestResolveSteps(t *testing.T) {
	r := newTestResolver()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"exact key", "manchester_city", "manchester_city"},
		{"alias", "Man Utd", "manchester_united"},
		{"alias with accents", "Bayern München", "bayern_munich"},
		{"token", "Atlético/MG", "atletico_mg"},
		{"token with spaces", "Real   Madrid", "real_madrid"},
		{"input contains display name", "Liverpool FC Women", "liverpool"},
		{"display name contains input", "Borussia", "dortmund"},
		{"input contains key", "Sao Paulo Futebol Clube", "sao_paulo"},
		{"longest match wins", "Manchester City FC", "manchester_city"},
		{"partial name", "Saint-Germain", "psg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := r.Resolve(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, p.Key)
		})
	}
}

func TestResolveNotFound(t *testing.T) {
	r := newTestResolver()

	for _, name := range []string{"", "   ", "FC Unknown United"} {
		_, err := r.Resolve(name)
		assert.True(t, errors.Is(err, models.ErrTeamNotFound), "input %q", name)
	}
}

func TestContainmentMatcherTieBreak(t *testing.T) {
	profiles := []models.TeamProfile{
		team("leicester_city", "Leicester City", "England", "Championship", 1600, 200, 1, 1, 0.1, 1.3, 1, 1.2, 1.4),
		team("hull_city", "Hull City", "England", "Championship", 1550, 100, 1, 1, 0.1, 1.3, 1, 1.2, 1.4),
	}
	c, err := NewCatalogue(profiles, nil, nil)
	require.NoError(t, err)

	key, ok := ContainmentMatcher{}.Match("city", c)
	require.True(t, ok)
	assert.Equal(t, "hull_city", key)

	key, ok = ContainmentMatcher{}.Match("", c)
	assert.False(t, ok)
	assert.Empty(t, key)
}

type fixedMatcher struct{ key string }

func (m fixedMatcher) Match(string, *Catalogue) (string, bool) { return m.key, m.key != "" }

func TestWithMatcher(t *testing.T) {
	r := NewResolver(DefaultCatalogue(), WithMatcher(fixedMatcher{key: "juventus"}))

	p, err := r.Resolve("Old Lady")
	require.NoError(t, err)
	assert.Equal(t, "juventus", p.Key)
}

func TestResolveOrSynthesizeNeutral(t *testing.T) {
	r := newTestResolver()

	p := r.ResolveOrSynthesize("FC Unknown United", 0)
	assert.True(t, p.Synthetic)
	assert.Equal(t, "Fc Unknown United", p.Name)
	assert.Equal(t, 1500.0, p.Elo)
	assert.Equal(t, 50.0, p.SquadValue)
	assert.Equal(t, 1.0, p.Attack)
	assert.Equal(t, 1.0, p.Defense)
	assert.Equal(t, 0.10, p.HomeAdvantage)
	assert.Equal(t, 1.3, p.GoalsHome)
	assert.Equal(t, 1.0, p.GoalsAway)
	assert.Equal(t, 1.2, p.ConcededHome)
	assert.Equal(t, 1.4, p.ConcededAway)
	assert.NoError(t, p.Validate())
}

func TestResolveOrSynthesizeLogs(t *testing.T) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetLevel(logrus.DebugLevel)

	r := NewResolver(DefaultCatalogue(), WithLogger(log))
	r.ResolveOrSynthesize("Nowhere Rovers", 2.0)

	assert.Contains(t, buf.String(), "Synthesized profile")
	assert.Contains(t, buf.String(), "team_resolver")
}

func TestResolveOrSynthesizeKnownTeam(t *testing.T) {
	r := newTestResolver()

	p := r.ResolveOrSynthesize("Arsenal", 1.5)
	assert.False(t, p.Synthetic)
	assert.Equal(t, "arsenal", p.Key)
}

func TestSyntheticStrength(t *testing.T) {
	tests := []struct {
		odds     float64
		expected float64
	}{
		{0, 1.0},
		{-2, 1.0},
		{2.5, 1.0},
		{1.25, 2.0},
		{1.01, 2.0},
		{5.0, 0.5},
		{20.0, 0.5},
		{2.0, 1.25},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.expected, SyntheticStrength(tt.odds), 1e-12, "odds %v", tt.odds)
	}
}

func TestSynthesizeMonotonic(t *testing.T) {
	strong := Synthesize("Strong", 1.5)
	weak := Synthesize("Weak", 4.0)

	assert.Greater(t, strong.Elo, weak.Elo)
	assert.Greater(t, strong.SquadValue, weak.SquadValue)
	assert.Greater(t, strong.Attack, weak.Attack)
	assert.Greater(t, strong.GoalsHome, weak.GoalsHome)
	assert.Less(t, strong.ConcededAway, weak.ConcededAway)
}

func TestResolveForm(t *testing.T) {
	r := newTestResolver()

	tests := []struct {
		name     string
		input    string
		expected models.FormRecord
	}{
		{"exact key", "flamengo", "WWDWLWWDWW"},
		{"alias", "Man City", "WWWWWDWWWW"},
		{"no fuzzy step", "Flamengo Reserves", models.NeutralForm},
		{"unknown", "FC Unknown United", models.NeutralForm},
		{"empty", "", models.NeutralForm},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, r.ResolveForm(tt.input))
		})
	}
}

func TestTeamsSorted(t *testing.T) {
	list := newTestResolver().Teams()
	require.Len(t, list, 24)
	for i := 1; i < len(list); i++ {
		assert.Less(t, list[i-1].Key, list[i].Key)
	}
}

func TestNewCatalogueRejectsInvalidProfile(t *testing.T) {
	bad := team("broken", "Broken", "", "", 1500, 0, 1, 1, 0.1, 1.3, 1, 1.2, 1.4)
	_, err := NewCatalogue([]models.TeamProfile{bad}, nil, nil)
	assert.ErrorIs(t, err, models.ErrInvalidProfile)
}
