package datasource

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/yourusername/clever-forecast/internal/metrics"
)

// Usage headers returned by the odds API
const (
	HeaderRequestsRemaining = "x-requests-remaining"
	HeaderRequestsUsed      = "x-requests-used"
)

// Quota is a snapshot of the provider's request allowance
type Quota struct {
	Remaining int       `json:"remaining"`
	Used      int       `json:"used"`
	Known     bool      `json:"known"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// quotaTracker records the latest usage headers seen
type quotaTracker struct {
	mu    sync.RWMutex
	quota Quota
}

// observe reads the usage headers; responses without them leave the quota untouched
func (q *quotaTracker) observe(h http.Header) {
	remaining, okRemaining := headerInt(h, HeaderRequestsRemaining)
	used, okUsed := headerInt(h, HeaderRequestsUsed)
	if !okRemaining && !okUsed {
		return
	}

	q.mu.Lock()
	if okRemaining {
		q.quota.Remaining = remaining
	}
	if okUsed {
		q.quota.Used = used
	}
	q.quota.Known = true
	q.quota.UpdatedAt = time.Now().UTC()
	snapshot := q.quota
	q.mu.Unlock()

	if okRemaining {
		metrics.UpdateRequestsRemaining(float64(snapshot.Remaining))
	}
}

func (q *quotaTracker) snapshot() Quota {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.quota
}

// headerInt parses an integer header; the API sometimes sends "12.0"
func headerInt(h http.Header, key string) (int, bool) {
	raw := strings.TrimSpace(h.Get(key))
	if raw == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return int(f), true
}
