package analysis

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/yourusername/clever-forecast/internal/metrics"
	"github.com/yourusername/clever-forecast/internal/models"
)

// SkippedFixture is a fixture left out of batch output
type SkippedFixture struct {
	FixtureID string `json:"fixture_id"`
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	Reason    string `json:"reason"`
}

// BatchResult is the ranked output of one batch run
type BatchResult struct {
	BatchID  string            `json:"batch_id"`
	Results  []*AnalysisResult `json:"results"`
	Skipped  []SkippedFixture  `json:"skipped,omitempty"`
	Duration time.Duration     `json:"duration"`
}

// ValueBets counts results with a qualifying 1X2 signal
func (b BatchResult) ValueBets() int {
	n := 0
	for _, r := range b.Results {
		if r.HasValue() {
			n++
		}
	}
	return n
}

// AnalyzeBatch analyses every fixture independently and returns the ranked
// results. Fixtures that cannot be priced are skipped, never fatal. The
// only error returned is the context's.
func (p *Pipeline) AnalyzeBatch(ctx context.Context, fixtures []models.Fixture) (BatchResult, error) {
	start := time.Now()
	batch := BatchResult{BatchID: uuid.NewString()}

	results := make([]*AnalysisResult, len(fixtures))
	errs := make([]error, len(fixtures))

	workers := p.workers
	if workers < 1 {
		workers = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range fixtures {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i], errs[i] = p.Analyze(fixtures[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return batch, err
	}
	if err := ctx.Err(); err != nil {
		return batch, err
	}

	analysed := make([]*AnalysisResult, 0, len(fixtures))
	for i, f := range fixtures {
		if errs[i] != nil {
			reason := SkipError
			if errors.Is(errs[i], models.ErrNoMarket) {
				reason = SkipNoMarket
			}
			batch.Skipped = append(batch.Skipped, SkippedFixture{
				FixtureID: f.ID,
				HomeTeam:  f.HomeTeam,
				AwayTeam:  f.AwayTeam,
				Reason:    reason,
			})
			metrics.RecordFixtureSkipped(reason)
			p.log.LogFixtureSkipped(f.ID, reason)
			continue
		}
		analysed = append(analysed, results[i])
	}

	batch.Results = Rank(analysed)
	batch.Duration = time.Since(start)

	metrics.RecordBatchDuration(batch.Duration.Seconds())
	p.log.LogBatchCompleted(batch.BatchID, len(batch.Results), len(batch.Skipped), batch.ValueBets(), batch.Duration)
	return batch, nil
}
