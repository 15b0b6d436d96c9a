package teams

import (
	"sort"

	"github.com/yourusername/clever-forecast/internal/models"
)

// Catalogue is the static set of known clubs with their recent form and
// alternative spellings. It is built once and only read afterwards.
type Catalogue struct {
	profiles map[string]models.TeamProfile
	forms    map[string]models.FormRecord
	aliases  map[string]string
	keys     []string
}

// NewCatalogue builds a catalogue from profiles, forms and aliases.
// Alias targets and form keys that do not name a profile are ignored.
func NewCatalogue(profiles []models.TeamProfile, forms map[string]models.FormRecord, aliases map[string]string) (*Catalogue, error) {
	c := &Catalogue{
		profiles: make(map[string]models.TeamProfile, len(profiles)),
		forms:    make(map[string]models.FormRecord, len(forms)),
		aliases:  make(map[string]string, len(aliases)),
	}

	for _, p := range profiles {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		c.profiles[p.Key] = p
		c.keys = append(c.keys, p.Key)
	}
	sort.Strings(c.keys)

	for key, form := range forms {
		if _, ok := c.profiles[key]; ok {
			c.forms[key] = form
		}
	}
	for alias, key := range aliases {
		if _, ok := c.profiles[key]; ok {
			c.aliases[normalize(alias)] = key
		}
	}
	return c, nil
}

// Profile returns the profile stored under key
func (c *Catalogue) Profile(key string) (models.TeamProfile, bool) {
	p, ok := c.profiles[key]
	return p, ok
}

// Form returns the recorded form for key
func (c *Catalogue) Form(key string) (models.FormRecord, bool) {
	f, ok := c.forms[key]
	return f, ok
}

// Alias returns the canonical key for a normalized alias
func (c *Catalogue) Alias(name string) (string, bool) {
	k, ok := c.aliases[name]
	return k, ok
}

// Keys returns all catalogue keys in alphabetical order
func (c *Catalogue) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// Len returns the number of clubs
func (c *Catalogue) Len() int {
	return len(c.keys)
}

func team(key, name, country, league string, elo, squad, atk, def, ha, gh, ga, ch, ca float64) models.TeamProfile {
	return models.TeamProfile{
		Key:           key,
		Name:          name,
		Country:       country,
		League:        league,
		Elo:           elo,
		SquadValue:    squad,
		Attack:        atk,
		Defense:       def,
		HomeAdvantage: ha,
		GoalsHome:     gh,
		GoalsAway:     ga,
		ConcededHome:  ch,
		ConcededAway:  ca,
	}
}

var defaultProfiles = []models.TeamProfile{
	// Brasileirao
	team("flamengo", "Flamengo", "Brazil", "Brasileirao", 1680, 185, 1.28, 1.12, 0.15, 1.8, 1.4, 0.9, 1.3),
	team("palmeiras", "Palmeiras", "Brazil", "Brasileirao", 1665, 175, 1.22, 1.18, 0.12, 1.7, 1.3, 0.8, 1.2),
	team("corinthians", "Corinthians", "Brazil", "Brasileirao", 1620, 120, 1.10, 1.05, 0.18, 1.5, 1.1, 1.1, 1.4),
	team("sao_paulo", "Sao Paulo", "Brazil", "Brasileirao", 1610, 110, 1.08, 1.10, 0.14, 1.4, 1.0, 1.0, 1.3),
	team("atletico_mg", "Atletico MG", "Brazil", "Brasileirao", 1635, 130, 1.15, 1.08, 0.16, 1.6, 1.2, 1.0, 1.4),
	team("botafogo", "Botafogo", "Brazil", "Brasileirao", 1640, 95, 1.18, 1.05, 0.13, 1.6, 1.3, 1.1, 1.3),
	team("fluminense", "Fluminense", "Brazil", "Brasileirao", 1625, 85, 1.12, 1.10, 0.12, 1.4, 1.1, 1.0, 1.2),
	team("gremio", "Gremio", "Brazil", "Brasileirao", 1615, 90, 1.10, 1.08, 0.17, 1.5, 1.0, 0.9, 1.4),
	team("internacional", "Internacional", "Brazil", "Brasileirao", 1610, 88, 1.08, 1.12, 0.16, 1.4, 1.0, 0.9, 1.3),
	team("cruzeiro", "Cruzeiro", "Brazil", "Brasileirao", 1590, 75, 1.05, 1.02, 0.15, 1.3, 1.0, 1.1, 1.4),

	// Premier League
	team("manchester_city", "Manchester City", "England", "Premier League", 1920, 1100, 1.45, 1.30, 0.12, 2.5, 2.1, 0.6, 0.9),
	team("liverpool", "Liverpool", "England", "Premier League", 1880, 950, 1.40, 1.25, 0.18, 2.3, 1.9, 0.7, 1.0),
	team("arsenal", "Arsenal", "England", "Premier League", 1860, 900, 1.35, 1.28, 0.14, 2.2, 1.8, 0.7, 0.9),
	team("chelsea", "Chelsea", "England", "Premier League", 1780, 850, 1.25, 1.15, 0.12, 1.9, 1.5, 0.9, 1.2),
	team("manchester_united", "Manchester United", "England", "Premier League", 1760, 800, 1.20, 1.10, 0.15, 1.8, 1.4, 1.0, 1.3),

	// La Liga
	team("real_madrid", "Real Madrid", "Spain", "La Liga", 1900, 1050, 1.42, 1.28, 0.15, 2.4, 2.0, 0.7, 1.0),
	team("barcelona", "Barcelona", "Spain", "La Liga", 1870, 950, 1.38, 1.20, 0.16, 2.3, 1.9, 0.8, 1.1),
	team("atletico_madrid", "Atletico Madrid", "Spain", "La Liga", 1820, 600, 1.18, 1.35, 0.14, 1.8, 1.4, 0.6, 0.9),

	// Bundesliga
	team("bayern_munich", "Bayern Munich", "Germany", "Bundesliga", 1910, 1000, 1.48, 1.22, 0.14, 2.6, 2.2, 0.8, 1.1),
	team("dortmund", "Borussia Dortmund", "Germany", "Bundesliga", 1820, 550, 1.32, 1.10, 0.20, 2.2, 1.7, 1.0, 1.4),

	// Serie A
	team("inter_milan", "Inter Milan", "Italy", "Serie A", 1850, 700, 1.30, 1.32, 0.13, 2.1, 1.7, 0.6, 0.9),
	team("ac_milan", "AC Milan", "Italy", "Serie A", 1800, 550, 1.22, 1.18, 0.14, 1.9, 1.5, 0.8, 1.1),
	team("juventus", "Juventus", "Italy", "Serie A", 1810, 580, 1.20, 1.25, 0.15, 1.8, 1.4, 0.7, 1.0),

	// Ligue 1
	team("psg", "Paris Saint-Germain", "France", "Ligue 1", 1870, 900, 1.42, 1.20, 0.12, 2.4, 2.0, 0.7, 1.0),
}

var defaultForms = map[string]models.FormRecord{
	"flamengo":          "WWDWLWWDWW",
	"palmeiras":         "WDWWWLWDWW",
	"corinthians":       "LDWDLWDLWD",
	"sao_paulo":         "DWLDWWDLDW",
	"atletico_mg":       "WWDLWWDWLD",
	"botafogo":          "WWWDWWLDWW",
	"fluminense":        "DWWDLDWWDL",
	"gremio":            "WDLDWWDWLD",
	"internacional":     "DWWLDWDWWL",
	"cruzeiro":          "LDWDWLDWDL",
	"manchester_city":   "WWWWWDWWWW",
	"liverpool":         "WWWDWWWWDW",
	"arsenal":           "WWDWWWDWWW",
	"chelsea":           "WDWLDWWDLW",
	"manchester_united": "DWLDWDWLDW",
	"real_madrid":       "WWWWDWWWWW",
	"barcelona":         "WWDWWWDWWL",
	"atletico_madrid":   "DDWWDWDWWD",
	"bayern_munich":     "WWWWWWDWWW",
	"dortmund":          "WDWWLWWDWL",
	"inter_milan":       "WWWDWWWDWW",
	"ac_milan":          "DWWDWLDWWD",
	"juventus":          "WDWWDWDWWD",
	"psg":               "WWWWDWWWDW",
}

// Spellings used by odds feeds and common abbreviations
var defaultAliases = map[string]string{
	"cr flamengo":            "flamengo",
	"flamengo rj":            "flamengo",
	"se palmeiras":           "palmeiras",
	"palmeiras sp":           "palmeiras",
	"sc corinthians":         "corinthians",
	"corinthians sp":         "corinthians",
	"sao paulo fc":           "sao_paulo",
	"spfc":                   "sao_paulo",
	"atletico mineiro":       "atletico_mg",
	"atletico-mg":            "atletico_mg",
	"cam":                    "atletico_mg",
	"botafogo rj":            "botafogo",
	"fluminense rj":          "fluminense",
	"gremio fbpa":            "gremio",
	"gremio rs":              "gremio",
	"sc internacional":       "internacional",
	"inter rs":               "internacional",
	"cruzeiro ec":            "cruzeiro",
	"man city":               "manchester_city",
	"mcfc":                   "manchester_city",
	"liverpool fc":           "liverpool",
	"arsenal fc":             "arsenal",
	"chelsea fc":             "chelsea",
	"man utd":                "manchester_united",
	"man united":             "manchester_united",
	"mufc":                   "manchester_united",
	"real madrid cf":         "real_madrid",
	"fc barcelona":           "barcelona",
	"barca":                  "barcelona",
	"atletico de madrid":     "atletico_madrid",
	"atleti":                 "atletico_madrid",
	"fc bayern":              "bayern_munich",
	"bayern munchen":         "bayern_munich",
	"fc bayern munchen":      "bayern_munich",
	"bvb":                    "dortmund",
	"borussia dortmund":      "dortmund",
	"inter":                  "inter_milan",
	"internazionale":         "inter_milan",
	"fc internazionale":      "inter_milan",
	"milan":                  "ac_milan",
	"juve":                   "juventus",
	"juventus fc":            "juventus",
	"paris sg":               "psg",
	"paris saint germain":    "psg",
	"paris saint-germain fc": "psg",
}

// DefaultCatalogue returns the built-in club catalogue
func DefaultCatalogue() *Catalogue {
	c, err := NewCatalogue(defaultProfiles, defaultForms, defaultAliases)
	if err != nil {
		panic(err)
	}
	return c
}
