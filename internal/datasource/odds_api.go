package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/clever-forecast/internal/logger"
	"github.com/yourusername/clever-forecast/internal/models"
)

// DefaultOddsAPIBaseURL is the public v4 endpoint
const DefaultOddsAPIBaseURL = "https://api.the-odds-api.com/v4"

// Market keys requested from the odds API
const (
	oddsMarketH2H    = "h2h"
	oddsMarketTotals = "totals"
	oddsMarketBTTS   = "btts"
)

var goalLine = decimal.NewFromFloat(2.5)

// OddsAPIConfig configures an OddsAPISource
type OddsAPIConfig struct {
	Name    string
	BaseURL string
	APIKey  string
	Sports  []string
	Regions string
	Markets []string
	Enabled bool
}

// OddsAPISource implements DataSource for the-odds-api.com
type OddsAPISource struct {
	httpClient *RateLimitedHTTPClient
	cfg        OddsAPIConfig
	quota      quotaTracker
	logger     *logrus.Entry
}

// oddsEvent is one event in the /sports/{sport}/odds response
type oddsEvent struct {
	ID           string          `json:"id"`
	SportKey     string          `json:"sport_key"`
	SportTitle   string          `json:"sport_title"`
	CommenceTime time.Time       `json:"commence_time"`
	HomeTeam     string          `json:"home_team"`
	AwayTeam     string          `json:"away_team"`
	Bookmakers   []oddsBookmaker `json:"bookmakers"`
}

type oddsBookmaker struct {
	Key     string       `json:"key"`
	Title   string       `json:"title"`
	Markets []oddsMarket `json:"markets"`
}

type oddsMarket struct {
	Key      string        `json:"key"`
	Outcomes []oddsOutcome `json:"outcomes"`
}

type oddsOutcome struct {
	Name  string           `json:"name"`
	Price decimal.Decimal  `json:"price"`
	Point *decimal.Decimal `json:"point,omitempty"`
}

// NewOddsAPISource creates a new odds API client
func NewOddsAPISource(httpClient *RateLimitedHTTPClient, cfg OddsAPIConfig, log *logrus.Logger) *OddsAPISource {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultOddsAPIBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Regions == "" {
		cfg.Regions = "uk"
	}
	if len(cfg.Markets) == 0 {
		cfg.Markets = []string{oddsMarketH2H, oddsMarketTotals}
	}
	if cfg.Name == "" {
		cfg.Name = "odds_api"
	}

	return &OddsAPISource{
		httpClient: httpClient,
		cfg:        cfg,
		logger:     logger.OrDiscard(log).WithField("source", cfg.Name),
	}
}

// Name returns the name of the data source
func (s *OddsAPISource) Name() string {
	return s.cfg.Name
}

// IsEnabled returns whether this data source is currently enabled
func (s *OddsAPISource) IsEnabled() bool {
	return s.cfg.Enabled
}

// Quota returns the latest request allowance reported by the API
func (s *OddsAPISource) Quota() Quota {
	return s.quota.snapshot()
}

// FetchFixtures retrieves upcoming fixtures for every configured sport
func (s *OddsAPISource) FetchFixtures(ctx context.Context) ([]models.Fixture, error) {
	if !s.cfg.Enabled {
		return nil, NewSourceError(s.cfg.Name, ErrCodeDisabled, "data source is disabled", ErrSourceDisabled)
	}

	var fixtures []models.Fixture
	for _, sport := range s.cfg.Sports {
		events, err := s.fetchSport(ctx, sport)
		if err != nil {
			return nil, err
		}
		for _, ev := range events {
			fixtures = append(fixtures, s.convertEvent(ev))
		}
	}
	return fixtures, nil
}

func (s *OddsAPISource) fetchSport(ctx context.Context, sport string) ([]oddsEvent, error) {
	query := url.Values{}
	query.Set("apiKey", s.cfg.APIKey)
	query.Set("regions", s.cfg.Regions)
	query.Set("markets", strings.Join(s.cfg.Markets, ","))
	query.Set("oddsFormat", "decimal")
	endpoint := fmt.Sprintf("%s/sports/%s/odds?%s", s.cfg.BaseURL, url.PathEscape(sport), query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, NewSourceError(s.cfg.Name, ErrCodeNetworkError, "failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(ctx, req)
	if err != nil {
		return nil, NewSourceError(s.cfg.Name, ErrCodeNetworkError, "failed to fetch odds for "+sport, err)
	}
	defer resp.Body.Close()

	s.quota.observe(resp.Header)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, NewSourceError(s.cfg.Name, ErrCodeAuthenticationFailed, "invalid API key", ErrAuthenticationFailed)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, NewSourceError(s.cfg.Name, ErrCodeRateLimitExceeded, "request quota exhausted", ErrRateLimitExceeded)
	case resp.StatusCode == http.StatusNotFound:
		return nil, NewSourceError(s.cfg.Name, ErrCodeNotFound, "unknown sport "+sport, ErrNotFound)
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, NewSourceError(s.cfg.Name, ErrCodeServerError, fmt.Sprintf("unexpected status %d", resp.StatusCode), ErrServerError)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, NewSourceError(s.cfg.Name, ErrCodeUnknown, fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), nil)
	}

	var events []oddsEvent
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, NewSourceError(s.cfg.Name, ErrCodeInvalidData, "failed to parse response", fmt.Errorf("%w: %v", ErrInvalidData, err))
	}

	s.logger.WithFields(logrus.Fields{"sport": sport, "events": len(events)}).Debug("Fetched odds")
	return events, nil
}

// convertEvent keeps the best price per outcome across bookmakers
func (s *OddsAPISource) convertEvent(ev oddsEvent) models.Fixture {
	var best struct{ home, draw, away, over, under, yes, no decimal.Decimal }

	for _, bm := range ev.Bookmakers {
		for _, m := range bm.Markets {
			for _, o := range m.Outcomes {
				var slot *decimal.Decimal
				switch m.Key {
				case oddsMarketH2H:
					switch {
					case o.Name == ev.HomeTeam:
						slot = &best.home
					case o.Name == ev.AwayTeam:
						slot = &best.away
					case strings.EqualFold(o.Name, "draw"):
						slot = &best.draw
					}
				case oddsMarketTotals:
					if o.Point == nil || !o.Point.Equal(goalLine) {
						continue
					}
					switch strings.ToLower(o.Name) {
					case "over":
						slot = &best.over
					case "under":
						slot = &best.under
					}
				case oddsMarketBTTS:
					switch strings.ToLower(o.Name) {
					case "yes":
						slot = &best.yes
					case "no":
						slot = &best.no
					}
				}
				if slot != nil && o.Price.GreaterThan(*slot) {
					*slot = o.Price
				}
			}
		}
	}

	return models.Fixture{
		ID:       ev.ID,
		League:   ev.SportTitle,
		Kickoff:  ev.CommenceTime,
		HomeTeam: ev.HomeTeam,
		AwayTeam: ev.AwayTeam,
		Source:   s.cfg.Name,
		Odds: models.MatchOdds{
			Home:    best.home.InexactFloat64(),
			Draw:    best.draw.InexactFloat64(),
			Away:    best.away.InexactFloat64(),
			Over25:  best.over.InexactFloat64(),
			Under25: best.under.InexactFloat64(),
			BTTSYes: best.yes.InexactFloat64(),
			BTTSNo:  best.no.InexactFloat64(),
		},
	}
}
