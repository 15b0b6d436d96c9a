package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/clever-forecast/internal/analysis"
	"github.com/yourusername/clever-forecast/internal/datasource"
	"github.com/yourusername/clever-forecast/internal/models"
	"github.com/yourusername/clever-forecast/internal/scheduler"
	"github.com/yourusername/clever-forecast/internal/settings"
	"github.com/yourusername/clever-forecast/internal/strategy"
)

const (
	pl001 = `{"id":"PL001","home_team":"Manchester City","away_team":"Liverpool",
		"odds":{"home":2.15,"draw":3.5,"away":3.4,"over_25":1.65,"under_25":2.25,"btts_yes":1.7,"btts_no":2.1}}`
	br001 = `{"id":"BR001","home_team":"Flamengo","away_team":"Palmeiras",
		"odds":{"home":2.05,"draw":3.8,"away":3.3}}`
	noMarket = `{"id":"NM1","home_team":"Juventus","away_team":"Inter Milan","odds":{}}`
)

func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	p := analysis.NewDefaultPipeline(strategy.DefaultMinEdge, strategy.DefaultKellyFraction)
	return NewServer(Config{Version: "test", Commit: "abc123"}, p, opts...)
}

func newStore(t *testing.T) *settings.FileStore {
	t.Helper()
	s, err := settings.NewFileStore(filepath.Join(t.TempDir(), "settings.json"), nil)
	require.NoError(t, err)
	return s
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s.Handler(), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	var health HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "clever-forecast", health.Service)
	assert.Equal(t, "abc123", health.Commit)

	assert.Equal(t, http.StatusOK, do(t, s.Handler(), http.MethodGet, "/live", "").Code)

	assert.Equal(t, http.StatusServiceUnavailable, do(t, s.Handler(), http.MethodGet, "/ready", "").Code)
	s.SetReady(true)
	assert.Equal(t, http.StatusOK, do(t, s.Handler(), http.MethodGet, "/ready", "").Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	do(t, s.Handler(), http.MethodPost, "/api/v1/analyze", pl001)

	rec := do(t, s.Handler(), http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "clever_forecast_fixtures_analysed_total")
}

func TestAnalyze(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Set(context.Background(), settings.KeyBankroll, "1000"))
	s := newTestServer(t, WithSettings(store))

	rec := do(t, s.Handler(), http.MethodPost, "/api/v1/analyze", pl001)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "PL001", got["fixture_id"])
	assert.Equal(t, "home", got["best_market"])
	assert.Equal(t, string(analysis.SignalStrongBuy), got["signal"])
	assert.NotEmpty(t, got["stake_amount"])
	assert.Contains(t, got, "models")
}

func TestAnalyzeIgnoresNonFiniteBankroll(t *testing.T) {
	for _, raw := range []string{"NaN", "+Inf", "-Inf"} {
		t.Run(raw, func(t *testing.T) {
			store := newStore(t)
			require.NoError(t, store.Set(context.Background(), settings.KeyBankroll, raw))
			s := newTestServer(t, WithSettings(store))

			rec := do(t, s.Handler(), http.MethodPost, "/api/v1/analyze", pl001)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var got map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, "home", got["best_market"])
			assert.NotContains(t, got, "stake_amount")
		})
	}
}

func TestAnalyzeWithoutValueHasNoStake(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Set(context.Background(), settings.KeyBankroll, "1000"))
	s := newTestServer(t, WithSettings(store))

	rec := do(t, s.Handler(), http.MethodPost, "/api/v1/analyze", br001)
	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Nil(t, got["best_market"])
	assert.NotContains(t, got, "stake_amount")
}

func TestAnalyzeErrors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"malformed json", `{"home_team":`, http.StatusBadRequest},
		{"missing away team", `{"home_team":"Arsenal","odds":{"home":2}}`, http.StatusBadRequest},
		{"negative price", `{"home_team":"Arsenal","away_team":"Chelsea","odds":{"home":-2}}`, http.StatusBadRequest},
		{"no market", noMarket, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s.Handler(), http.MethodPost, "/api/v1/analyze", tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestAnalyzeAssignsID(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s.Handler(), http.MethodPost, "/api/v1/analyze",
		`{"home_team":"FC Unknown United","away_team":"Chelsea","odds":{"home":2.5,"draw":3.2,"away":2.9}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.NotEmpty(t, got["fixture_id"])
	assert.Equal(t, true, got["home_synthetic"])
}

func TestAnalyzeBatch(t *testing.T) {
	s := newTestServer(t)
	body := `{"fixtures":[` + br001 + `,` + pl001 + `,` + noMarket + `]}`

	rec := do(t, s.Handler(), http.MethodPost, "/api/v1/analyze/batch", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got BatchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.NotEmpty(t, got.BatchID)
	require.Len(t, got.Results, 2)
	assert.Equal(t, "PL001", got.Results[0].FixtureID)
	assert.Equal(t, "BR001", got.Results[1].FixtureID)
	require.Len(t, got.Skipped, 1)
	assert.Equal(t, "NM1", got.Skipped[0].FixtureID)
	assert.Equal(t, 1, got.ValueBets)

	rec = do(t, s.Handler(), http.MethodPost, "/api/v1/analyze/batch",
		`{"value_only":true,"fixtures":[`+br001+`,`+pl001+`]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Results, 1)
	assert.Equal(t, "PL001", got.Results[0].FixtureID)
}

func TestAnalyzeBatchStoredSelection(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, settings.KeyValueOnly, "true"))
	s := newTestServer(t, WithSettings(store))
	fixtures := `"fixtures":[` + br001 + `,` + pl001 + `]`

	var got BatchResponse
	rec := do(t, s.Handler(), http.MethodPost, "/api/v1/analyze/batch", `{`+fixtures+`}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Results, 1)
	assert.Equal(t, "PL001", got.Results[0].FixtureID)

	rec = do(t, s.Handler(), http.MethodPost, "/api/v1/analyze/batch", `{"value_only":false,`+fixtures+`}`)
	require.Equal(t, http.StatusOK, rec.Code)
	got = BatchResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got.Results, 2)

	require.NoError(t, store.Set(ctx, settings.KeyValueOnly, "false"))
	require.NoError(t, store.Set(ctx, settings.KeyMaxSignals, "1"))
	rec = do(t, s.Handler(), http.MethodPost, "/api/v1/analyze/batch", `{`+fixtures+`}`)
	require.Equal(t, http.StatusOK, rec.Code)
	got = BatchResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Results, 1)
	assert.Equal(t, "PL001", got.Results[0].FixtureID)
	assert.Equal(t, 1, got.ValueBets)

	rec = do(t, s.Handler(), http.MethodPost, "/api/v1/analyze/batch", `{"top":0,`+fixtures+`}`)
	require.Equal(t, http.StatusOK, rec.Code)
	got = BatchResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got.Results, 2)
}

func TestAnalyzeBatchRejects(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s.Handler(), http.MethodPost, "/api/v1/analyze/batch", `{"fixtures":[{"home_team":"A"}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "index 0")

	fixtures := strings.Repeat(br001+",", MaxBatchSize) + br001
	rec = do(t, s.Handler(), http.MethodPost, "/api/v1/analyze/batch", `{"fixtures":[`+fixtures+`]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTeams(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s.Handler(), http.MethodGet, "/api/v1/teams", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var teams []models.TeamProfile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &teams))
	assert.Len(t, teams, 24)
	assert.Equal(t, "ac_milan", teams[0].Key)
}

func TestSettingsEndpoints(t *testing.T) {
	s := newTestServer(t, WithSettings(newStore(t)))
	h := s.Handler()

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/api/v1/settings/bankroll", "").Code)

	rec := do(t, h, http.MethodPut, "/api/v1/settings/bankroll", `{"value":"500"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/settings/bankroll", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"value":"500"`)

	rec = do(t, h, http.MethodGet, "/api/v1/settings", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"bankroll":"500"}`, rec.Body.String())

	assert.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, "/api/v1/settings/bankroll", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/api/v1/settings/bankroll", "").Code)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPut, "/api/v1/settings/bankroll", `nope`).Code)
}

func TestSettingsWithoutStore(t *testing.T) {
	s := newTestServer(t)
	assert.Equal(t, http.StatusServiceUnavailable, do(t, s.Handler(), http.MethodGet, "/api/v1/settings", "").Code)
}

type fixedReports struct{ report *scheduler.Report }

func (f fixedReports) Latest() (*scheduler.Report, bool) { return f.report, f.report != nil }

func TestLatestReport(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, do(t, newTestServer(t).Handler(), http.MethodGet, "/api/v1/reports/latest", "").Code)
	assert.Equal(t, http.StatusNotFound,
		do(t, newTestServer(t, WithReports(fixedReports{})).Handler(), http.MethodGet, "/api/v1/reports/latest", "").Code)

	report := &scheduler.Report{
		Batch:        analysis.BatchResult{BatchID: "b1"},
		SourceErrors: []*datasource.SourceError{datasource.NewSourceError("odds", datasource.ErrCodeServerError, "down", nil)},
		Quotas:       map[string]datasource.Quota{"odds": {Remaining: 9, Known: true}},
	}
	rec := do(t, newTestServer(t, WithReports(fixedReports{report})).Handler(), http.MethodGet, "/api/v1/reports/latest", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"batch_id":"b1"`)
	assert.Contains(t, rec.Body.String(), "odds: server_error: down")
	assert.Contains(t, rec.Body.String(), `"remaining":9`)
}

func TestCORSPreflight(t *testing.T) {
	p := analysis.NewDefaultPipeline(strategy.DefaultMinEdge, strategy.DefaultKellyFraction)
	s := NewServer(Config{AllowedOrigins: []string{"http://localhost:3000"}}, p)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/analyze", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
