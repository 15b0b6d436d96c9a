package datasource

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/yourusername/clever-forecast/internal/logger"
	"github.com/yourusername/clever-forecast/internal/metrics"
	"github.com/yourusername/clever-forecast/internal/models"
)

// CollectResult aggregates one pass over every source
type CollectResult struct {
	Fixtures []models.Fixture
	Errors   []*SourceError
	Quotas   map[string]Quota
	Duration time.Duration
}

// Collector fetches from several sources concurrently; one failing
// source never prevents the others from contributing fixtures.
type Collector struct {
	sources []DataSource
	log     *logger.AnalysisLogger
}

// NewCollector creates a collector over the given sources
func NewCollector(sources []DataSource, log *logrus.Logger) *Collector {
	return &Collector{
		sources: sources,
		log:     logger.NewAnalysisLogger(logger.OrDiscard(log)),
	}
}

// Sources returns the configured sources
func (c *Collector) Sources() []DataSource {
	return c.sources
}

// Collect fetches every enabled source. Fixtures keep source order and
// the first source to report an ID wins.
func (c *Collector) Collect(ctx context.Context) CollectResult {
	start := time.Now()

	type outcome struct {
		fixtures []models.Fixture
		err      error
	}
	outcomes := make([]outcome, len(c.sources))

	var g errgroup.Group
	for i, src := range c.sources {
		if !src.IsEnabled() {
			continue
		}
		g.Go(func() error {
			fixtures, err := src.FetchFixtures(ctx)
			outcomes[i] = outcome{fixtures: fixtures, err: err}
			return nil
		})
	}
	_ = g.Wait()

	result := CollectResult{Quotas: make(map[string]Quota)}
	seen := make(map[string]bool)
	for i, src := range c.sources {
		if q, ok := src.(QuotaReporter); ok {
			result.Quotas[src.Name()] = q.Quota()
		}

		out := outcomes[i]
		if out.err != nil {
			se := AsSourceError(src.Name(), out.err)
			result.Errors = append(result.Errors, se)
			metrics.RecordSourceFailure(src.Name())
			c.log.LogSourceFailure(src.Name(), se)
			continue
		}

		for _, fx := range out.fixtures {
			if fx.ID != "" && seen[fx.ID] {
				continue
			}
			seen[fx.ID] = true
			result.Fixtures = append(result.Fixtures, fx)
		}
	}

	result.Duration = time.Since(start)
	return result
}
