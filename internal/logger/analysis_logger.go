// Package logger provides analysis-specific logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// AnalysisLogger provides dedicated logging for fixture analysis.
type AnalysisLogger struct {
	*logrus.Entry
}

// NewAnalysisLogger creates a new analysis logger.
func NewAnalysisLogger(baseLogger *logrus.Logger) *AnalysisLogger {
	return &AnalysisLogger{
		Entry: OrDiscard(baseLogger).WithField("component", "analysis"),
	}
}

// LogFixtureAnalysed logs a completed fixture analysis.
func (al *AnalysisLogger) LogFixtureAnalysed(fixtureID, homeTeam, awayTeam, signal string, bestEdge, agreement float64) {
	al.WithFields(logrus.Fields{
		"fixture_id": fixtureID,
		"home_team":  homeTeam,
		"away_team":  awayTeam,
		"signal":     signal,
		"best_edge":  bestEdge,
		"agreement":  agreement,
	}).Info("Fixture analysed")
}

// LogTeamSynthesized logs a team that was not found in the catalogue.
func (al *AnalysisLogger) LogTeamSynthesized(fixtureID, team string, referenceOdds, elo float64) {
	al.WithFields(logrus.Fields{
		"fixture_id":     fixtureID,
		"team":           team,
		"reference_odds": referenceOdds,
		"synthetic_elo":  elo,
	}).Debug("Team not in catalogue, using synthesized profile")
}

// LogValueSignal logs a detected value signal.
func (al *AnalysisLogger) LogValueSignal(fixtureID, market, confidence string, odds, edge, kellyStake float64) {
	al.WithFields(logrus.Fields{
		"fixture_id":  fixtureID,
		"market":      market,
		"confidence":  confidence,
		"odds":        odds,
		"edge":        edge,
		"kelly_stake": kellyStake,
	}).Info("Value signal detected")
}

// LogFixtureSkipped logs a fixture excluded from analysis.
func (al *AnalysisLogger) LogFixtureSkipped(fixtureID, reason string) {
	al.WithFields(logrus.Fields{
		"fixture_id": fixtureID,
		"reason":     reason,
	}).Warn("Fixture skipped")
}

// LogSourceFailure logs a fixture source that failed during collection.
func (al *AnalysisLogger) LogSourceFailure(source string, err error) {
	al.WithFields(logrus.Fields{
		"source": source,
		"error":  err.Error(),
	}).Error("Fixture source failed")
}

// LogBatchCompleted logs a finished batch analysis.
func (al *AnalysisLogger) LogBatchCompleted(batchID string, analysed, skipped, valueBets int, duration time.Duration) {
	al.WithFields(logrus.Fields{
		"batch_id":    batchID,
		"analysed":    analysed,
		"skipped":     skipped,
		"value_bets":  valueBets,
		"duration_ms": duration.Milliseconds(),
	}).Info("Batch analysis completed")
}
