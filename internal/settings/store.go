// Package settings persists operator-tunable values such as the bankroll.
//
// Stores hold raw strings. The typed helpers parse on read and fall back to
// the caller's default when a value is missing or malformed, so a damaged
// store never stops an analysis run.
package settings

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/clever-forecast/internal/config"
	"github.com/yourusername/clever-forecast/internal/logger"
)

// Well-known keys. KeyMaxSignals caps how many ranked fixtures are
// reported; KeyMinConfidence is a tier name (low, medium, high).
const (
	KeyBankroll      = "bankroll"
	KeyMinEdge       = "min_edge"
	KeyKellyFraction = "kelly_fraction"
	KeyMaxSignals    = "max_signals"
	KeyValueOnly     = "value_only"
	KeyMinConfidence = "min_confidence"
)

// Backend names
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

// ErrInvalidKey is returned for blank keys
var ErrInvalidKey = errors.New("invalid settings key")

// Store is a string key-value store
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	All(ctx context.Context) (map[string]string, error)
	Close() error
}

// auditor is implemented by stores that carry an audit logger
type auditor interface {
	auditLog() *logger.AuditLogger
}

// Open creates the store selected by configuration
func Open(ctx context.Context, cfg config.SettingsConfig, log *logrus.Logger) (Store, error) {
	switch cfg.Backend {
	case BackendFile, "":
		return NewFileStore(cfg.Path, log)
	case BackendPostgres:
		return NewPostgresStore(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unknown settings backend: %s", cfg.Backend)
	}
}

func normalizeKey(key string) (string, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return "", ErrInvalidKey
	}
	return key, nil
}

// String returns the stored value or def when missing or unreadable
func String(ctx context.Context, s Store, key, def string) string {
	raw, ok := lookup(ctx, s, key)
	if !ok {
		return def
	}
	return raw
}

// Float returns the stored float or def. NaN and infinities count as malformed.
func Float(ctx context.Context, s Store, key string, def float64) float64 {
	raw, ok := lookup(ctx, s, key)
	if !ok {
		return def
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		malformed(s, key, raw, "float")
		return def
	}
	return v
}

// Int returns the stored integer or def
func Int(ctx context.Context, s Store, key string, def int) int {
	raw, ok := lookup(ctx, s, key)
	if !ok {
		return def
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		malformed(s, key, raw, "int")
		return def
	}
	return v
}

// Bool returns the stored boolean or def
func Bool(ctx context.Context, s Store, key string, def bool) bool {
	raw, ok := lookup(ctx, s, key)
	if !ok {
		return def
	}
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		malformed(s, key, raw, "bool")
		return def
	}
	return v
}

func lookup(ctx context.Context, s Store, key string) (string, bool) {
	if s == nil {
		return "", false
	}
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		if a, isAuditor := s.(auditor); isAuditor {
			a.auditLog().WithError(err).WithField("key", key).Warn("Settings read failed, using default")
		}
		return "", false
	}
	return raw, ok
}

func malformed(s Store, key, raw, expected string) {
	if a, ok := s.(auditor); ok {
		a.auditLog().LogMalformedSetting(key, raw, expected)
	}
}
