package datasource

import (
	"context"
	"errors"

	"github.com/yourusername/clever-forecast/internal/models"
)

// DataSource defines the interface for fetching fixtures and prices from external providers
type DataSource interface {
	// FetchFixtures retrieves the upcoming fixtures the provider currently prices
	FetchFixtures(ctx context.Context) ([]models.Fixture, error)

	// Name returns the name of the data source
	Name() string

	// IsEnabled returns whether this data source is currently enabled
	IsEnabled() bool
}

// QuotaReporter is implemented by sources that track a request allowance
type QuotaReporter interface {
	Quota() Quota
}

// SourceError represents errors from data source operations
type SourceError struct {
	Source  string `json:"source"`  // Data source name
	Code    string `json:"code"`    // Error code (e.g., "rate_limit_exceeded")
	Message string `json:"message"` // Error message
	Err     error  `json:"-"`       // Underlying error
}

func (e *SourceError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeRateLimitExceeded    = "rate_limit_exceeded"
	ErrCodeAuthenticationFailed = "authentication_failed"
	ErrCodeNotFound             = "not_found"
	ErrCodeInvalidData          = "invalid_data"
	ErrCodeNetworkError         = "network_error"
	ErrCodeServerError          = "server_error"
	ErrCodeDisabled             = "disabled"
	ErrCodeUnknown              = "unknown"
)

var (
	ErrRateLimitExceeded    = errors.New("rate limit exceeded")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrNotFound             = errors.New("data not found")
	ErrInvalidData          = errors.New("invalid data format")
	ErrServerError          = errors.New("server error")
	ErrSourceDisabled       = errors.New("data source is disabled")
	ErrCircuitOpen          = errors.New("circuit breaker open")
)

// NewSourceError creates a new data source error
func NewSourceError(source, code, message string, err error) *SourceError {
	return &SourceError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// AsSourceError converts any error into a SourceError for the named source
func AsSourceError(source string, err error) *SourceError {
	var se *SourceError
	if errors.As(err, &se) {
		return se
	}
	return NewSourceError(source, ErrCodeUnknown, "fetch failed", err)
}
