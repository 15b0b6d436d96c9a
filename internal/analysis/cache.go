package analysis

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/yourusername/clever-forecast/internal/metrics"
	"github.com/yourusername/clever-forecast/internal/models"
)

// CacheKey identifies an analysis by its inputs
type CacheKey struct {
	HomeTeam string
	AwayTeam string
	Odds     models.MatchOdds
}

// NewCacheKey builds a key from a fixture
func NewCacheKey(f models.Fixture) CacheKey {
	return CacheKey{
		HomeTeam: strings.ToLower(strings.TrimSpace(f.HomeTeam)),
		AwayTeam: strings.ToLower(strings.TrimSpace(f.AwayTeam)),
		Odds:     f.Odds,
	}
}

// String returns string representation of cache key
func (k CacheKey) String() string {
	o := k.Odds
	return fmt.Sprintf("%s:%s:%g:%g:%g:%g:%g:%g:%g",
		k.HomeTeam, k.AwayTeam, o.Home, o.Draw, o.Away, o.Over25, o.Under25, o.BTTSYes, o.BTTSNo)
}

// ResultCache provides in-memory caching for analysis results
type ResultCache struct {
	cache     *cache.Cache
	ttl       time.Duration
	maxSize   int
	hitCount  atomic.Uint64
	missCount atomic.Uint64
}

// NewResultCache creates a new result cache
func NewResultCache(ttl time.Duration, maxSize int) *ResultCache {
	return &ResultCache{
		cache:   cache.New(ttl, ttl*2),
		ttl:     ttl,
		maxSize: maxSize,
	}
}

// Get retrieves a cached result for a fixture. Every call returns a deep
// copy carrying the fixture's own identity fields.
func (rc *ResultCache) Get(f models.Fixture) (*AnalysisResult, bool) {
	if item, found := rc.cache.Get(NewCacheKey(f).String()); found {
		if cached, ok := item.(*AnalysisResult); ok {
			rc.hitCount.Add(1)
			rc.updateMetrics()
			out := cached.Clone()
			out.FixtureID = f.ID
			out.League = f.League
			out.Kickoff = f.Kickoff
			return out, true
		}
	}

	rc.missCount.Add(1)
	rc.updateMetrics()
	return nil, false
}

// Set stores a copy of result
func (rc *ResultCache) Set(f models.Fixture, result *AnalysisResult) {
	if result == nil {
		return
	}
	if rc.maxSize > 0 && rc.cache.ItemCount() >= rc.maxSize {
		rc.cache.DeleteExpired()
		if rc.cache.ItemCount() >= rc.maxSize {
			return
		}
	}
	rc.cache.Set(NewCacheKey(f).String(), result.Clone(), rc.ttl)
}

// Clear flushes the entire cache
func (rc *ResultCache) Clear() {
	rc.cache.Flush()
	rc.hitCount.Store(0)
	rc.missCount.Store(0)
}

// Stats returns cache statistics
func (rc *ResultCache) Stats() (hits, misses uint64, ratio float64) {
	hits = rc.hitCount.Load()
	misses = rc.missCount.Load()
	total := hits + misses
	if total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return
}

// ItemCount returns the number of items in cache
func (rc *ResultCache) ItemCount() int {
	return rc.cache.ItemCount()
}

func (rc *ResultCache) updateMetrics() {
	_, _, ratio := rc.Stats()
	metrics.UpdateCacheHitRatio(ratio)
}
