// Package scheduler runs periodic collect-and-analyse passes.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/clever-forecast/internal/analysis"
	"github.com/yourusername/clever-forecast/internal/datasource"
	"github.com/yourusername/clever-forecast/internal/logger"
	"github.com/yourusername/clever-forecast/internal/models"
)

// FixtureCollector gathers fixtures from every configured source
type FixtureCollector interface {
	Collect(ctx context.Context) datasource.CollectResult
}

// BatchAnalyzer prices a batch of fixtures
type BatchAnalyzer interface {
	AnalyzeBatch(ctx context.Context, fixtures []models.Fixture) (analysis.BatchResult, error)
}

// Report is the outcome of one scheduled pass
type Report struct {
	StartedAt    time.Time                   `json:"started_at"`
	CompletedAt  time.Time                   `json:"completed_at"`
	Batch        analysis.BatchResult        `json:"batch"`
	SourceErrors []*datasource.SourceError   `json:"source_errors,omitempty"`
	Quotas       map[string]datasource.Quota `json:"quotas,omitempty"`
}

// Scheduler manages scheduled analysis jobs
type Scheduler struct {
	cron            *cron.Cron
	collector       FixtureCollector
	analyzer        BatchAnalyzer
	logger          *logrus.Entry
	mu              sync.RWMutex
	isRunning       bool
	jobIDs          []cron.EntryID
	latest          *Report
	jobTimeout      time.Duration
	gracefulTimeout time.Duration
}

// NewScheduler creates a new scheduler. Expressions accept an optional
// leading seconds field and descriptors such as "@every 5m".
func NewScheduler(collector FixtureCollector, analyzer BatchAnalyzer, log *logrus.Logger) *Scheduler {
	entry := logger.OrDiscard(log).WithField("component", "scheduler")
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithParser(cron.NewParser(cron.SecondOptional|cron.Minute|cron.Hour|cron.Dom|cron.Month|cron.Dow|cron.Descriptor)),
			cron.WithChain(cron.SkipIfStillRunning(cron.PrintfLogger(entry))),
		),
		collector:       collector,
		analyzer:        analyzer,
		logger:          entry,
		jobIDs:          make([]cron.EntryID, 0),
		jobTimeout:      10 * time.Minute,
		gracefulTimeout: 30 * time.Second,
	}
}

// ScheduleAnalysis schedules a collect-and-analyse pass
func (s *Scheduler) ScheduleAnalysis(cronExpression string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
		defer cancel()

		if _, err := s.RunOnce(ctx); err != nil {
			s.logger.WithError(err).Error("Scheduled analysis failed")
		}
	}

	entryID, err := s.cron.AddFunc(cronExpression, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithField("schedule", cronExpression).Info("Scheduled analysis job")

	return nil
}

// RunOnce collects fixtures and analyses them immediately
func (s *Scheduler) RunOnce(ctx context.Context) (*Report, error) {
	report := &Report{StartedAt: time.Now().UTC()}

	collected := s.collector.Collect(ctx)
	report.SourceErrors = collected.Errors
	report.Quotas = collected.Quotas

	batch, err := s.analyzer.AnalyzeBatch(ctx, collected.Fixtures)
	if err != nil {
		return nil, fmt.Errorf("batch analysis: %w", err)
	}
	report.Batch = batch
	report.CompletedAt = time.Now().UTC()

	s.mu.Lock()
	s.latest = report
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{
		"batch_id":      batch.BatchID,
		"fixtures":      len(collected.Fixtures),
		"value_bets":    batch.ValueBets(),
		"source_errors": len(collected.Errors),
	}).Info("Analysis pass completed")

	return report, nil
}

// Latest returns the most recent completed report
func (s *Scheduler) Latest() (*Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest, s.latest != nil
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}

	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")

	return nil
}

// Stop waits for running jobs up to the graceful timeout
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	// jobs take the lock in RunOnce, so wait without holding it
	done := s.cron.Stop().Done()
	select {
	case <-done:
		s.logger.Info("Scheduler stopped")
		return nil
	case <-time.After(s.gracefulTimeout):
		return fmt.Errorf("scheduler stop timed out after %s", s.gracefulTimeout)
	}
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRun returns the time of the next scheduled job run
func (s *Scheduler) GetNextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning || len(s.jobIDs) == 0 {
		return time.Time{}
	}

	nextRun := time.Time{}
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			nextTime := entry.Next
			if nextRun.IsZero() || nextTime.Before(nextRun) {
				nextRun = nextTime
			}
		}
	}

	return nextRun
}

// Entries returns information about scheduled entries
func (s *Scheduler) Entries() []cron.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]cron.Entry, 0, len(s.jobIDs))
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			entries = append(entries, entry)
		}
	}

	return entries
}
