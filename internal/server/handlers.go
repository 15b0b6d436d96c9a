package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yourusername/clever-forecast/internal/analysis"
	"github.com/yourusername/clever-forecast/internal/models"
	"github.com/yourusername/clever-forecast/internal/scheduler"
	"github.com/yourusername/clever-forecast/internal/settings"
	"github.com/yourusername/clever-forecast/internal/strategy"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp,omitempty"`
	Version   string `json:"version,omitempty"`
	Commit    string `json:"commit,omitempty"`
}

// ReadyResponse represents the JSON response for readiness check endpoints.
type ReadyResponse struct {
	Status   string            `json:"status"`
	Service  string            `json:"service"`
	Checks   map[string]string `json:"checks,omitempty"`
	Duration string            `json:"duration,omitempty"`
}

// AnalysisResponse is one analysed fixture plus its stake in currency
type AnalysisResponse struct {
	*analysis.AnalysisResult
	StakeAmount *decimal.Decimal `json:"stake_amount,omitempty"`
}

// BatchRequest is the body of a batch analysis call. Filters left unset
// fall back to the stored settings.
type BatchRequest struct {
	Fixtures      []models.Fixture `json:"fixtures"`
	ValueOnly     *bool            `json:"value_only,omitempty"`
	Top           *int             `json:"top,omitempty"`
	MinConfidence *string          `json:"min_confidence,omitempty"`
}

func (req BatchRequest) selection(sel analysis.Selection) analysis.Selection {
	if req.ValueOnly != nil {
		sel.ValueOnly = *req.ValueOnly
	}
	if req.Top != nil {
		sel.Top = *req.Top
	}
	if req.MinConfidence != nil {
		sel.MinConfidence = strategy.ParseConfidence(*req.MinConfidence)
	}
	return sel
}

// BatchResponse is the ranked output of a batch call
type BatchResponse struct {
	BatchID    string                    `json:"batch_id"`
	Results    []AnalysisResponse        `json:"results"`
	Skipped    []analysis.SkippedFixture `json:"skipped,omitempty"`
	ValueBets  int                       `json:"value_bets"`
	DurationMS int64                     `json:"duration_ms"`
}

// SettingRequest is the body of a settings write
type SettingRequest struct {
	Value string `json:"value"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Service:   s.cfg.ServiceName,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   s.cfg.Version,
		Commit:    s.cfg.Commit,
	})
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Service: s.cfg.ServiceName,
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	checks := make(map[string]string)
	allHealthy := true

	if !s.IsReady() {
		allHealthy = false
		checks["service"] = "not_ready"
	} else {
		checks["service"] = "ok"
	}

	if p, ok := s.store.(Pinger); ok {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		if err := p.Ping(ctx); err != nil {
			allHealthy = false
			checks["settings"] = fmt.Sprintf("error: %v", err)
		} else {
			checks["settings"] = "ok"
		}
	}

	response := ReadyResponse{
		Service:  s.cfg.ServiceName,
		Checks:   checks,
		Duration: time.Since(start).String(),
	}

	if allHealthy {
		response.Status = "ok"
		respondJSON(w, http.StatusOK, response)
		return
	}
	response.Status = "not_ready"
	respondJSON(w, http.StatusServiceUnavailable, response)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var fixture models.Fixture
	if err := json.NewDecoder(r.Body).Decode(&fixture); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}
	if err := s.validate.Struct(fixture); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid fixture: %v", err))
		return
	}
	if fixture.ID == "" {
		fixture.ID = uuid.NewString()
	}

	result, err := s.pipeline.Analyze(fixture)
	if errors.Is(err, models.ErrNoMarket) {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		s.logger.WithError(err).WithField("fixture_id", fixture.ID).Error("Analysis failed")
		respondError(w, http.StatusInternalServerError, "analysis failed")
		return
	}

	respondJSON(w, http.StatusOK, s.withStake(result, s.bankroll(r.Context())))
}

func (s *Server) handleAnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}
	if len(req.Fixtures) > MaxBatchSize {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("batch exceeds %d fixtures", MaxBatchSize))
		return
	}
	for i := range req.Fixtures {
		if err := s.validate.Struct(req.Fixtures[i]); err != nil {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid fixture at index %d: %v", i, err))
			return
		}
		if req.Fixtures[i].ID == "" {
			req.Fixtures[i].ID = uuid.NewString()
		}
	}

	batch, err := s.pipeline.AnalyzeBatch(r.Context(), req.Fixtures)
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, fmt.Sprintf("batch cancelled: %v", err))
		return
	}

	sel := req.selection(analysis.StoredSelection(r.Context(), s.store))
	respondJSON(w, http.StatusOK, s.batchResponse(r.Context(), batch, sel))
}

func (s *Server) handleTeams(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.pipeline.Resolver().Teams())
}

func (s *Server) handleLatestReport(w http.ResponseWriter, r *http.Request) {
	if s.reports == nil {
		respondError(w, http.StatusNotFound, "scheduler not enabled")
		return
	}
	report, ok := s.reports.Latest()
	if !ok {
		respondError(w, http.StatusNotFound, "no analysis pass has completed yet")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"started_at":    report.StartedAt,
		"completed_at":  report.CompletedAt,
		"batch":         s.batchResponse(r.Context(), report.Batch, analysis.StoredSelection(r.Context(), s.store)),
		"source_errors": sourceErrorMessages(report),
		"quotas":        report.Quotas,
	})
}

func (s *Server) handleListSettings(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	all, err := s.store.All(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, all)
}

func (s *Server) handleGetSetting(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	key := chi.URLParam(r, "key")
	value, ok, err := s.store.Get(r.Context(), key)
	switch {
	case errors.Is(err, settings.ErrInvalidKey):
		respondError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		respondError(w, http.StatusInternalServerError, err.Error())
	case !ok:
		respondError(w, http.StatusNotFound, fmt.Sprintf("setting %q not found", key))
	default:
		respondJSON(w, http.StatusOK, map[string]string{"key": key, "value": value})
	}
}

func (s *Server) handlePutSetting(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	var req SettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}
	key := chi.URLParam(r, "key")
	if err := s.store.Set(r.Context(), key, req.Value); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, settings.ErrInvalidKey) {
			status = http.StatusBadRequest
		}
		respondError(w, status, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"key": key, "value": req.Value})
}

func (s *Server) handleDeleteSetting(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "key")); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, settings.ErrInvalidKey) {
			status = http.StatusBadRequest
		}
		respondError(w, status, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) requireStore(w http.ResponseWriter) bool {
	if s.store == nil {
		respondError(w, http.StatusServiceUnavailable, "settings store not configured")
		return false
	}
	return true
}

func (s *Server) bankroll(ctx context.Context) decimal.Decimal {
	v := settings.Float(ctx, s.store, settings.KeyBankroll, 0)
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

func (s *Server) withStake(r *analysis.AnalysisResult, bankroll decimal.Decimal) AnalysisResponse {
	resp := AnalysisResponse{AnalysisResult: r}
	if stake := analysis.StakeFor(r, bankroll); stake.IsPositive() {
		resp.StakeAmount = &stake
	}
	return resp
}

func (s *Server) batchResponse(ctx context.Context, batch analysis.BatchResult, sel analysis.Selection) BatchResponse {
	bankroll := s.bankroll(ctx)
	resp := BatchResponse{
		BatchID:    batch.BatchID,
		Results:    make([]AnalysisResponse, 0, len(batch.Results)),
		Skipped:    batch.Skipped,
		ValueBets:  batch.ValueBets(),
		DurationMS: batch.Duration.Milliseconds(),
	}
	for _, r := range sel.Apply(batch.Results) {
		resp.Results = append(resp.Results, s.withStake(r, bankroll))
	}
	return resp
}

func sourceErrorMessages(report *scheduler.Report) []string {
	out := make([]string, 0, len(report.SourceErrors))
	for _, e := range report.SourceErrors {
		out = append(out, e.Error())
	}
	return out
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// respondError writes a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
