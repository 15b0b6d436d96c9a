package datasource

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/clever-forecast/internal/logger"
	"github.com/yourusername/clever-forecast/internal/models"
)

// csvColumns is the header a CSV fixture file must start with; the
// secondary market columns are optional.
var csvColumns = []string{
	"id", "league", "kickoff", "home_team", "away_team",
	"home", "draw", "away", "over_25", "under_25", "btts_yes", "btts_no",
}

const csvRequiredColumns = 8

// FileSource reads fixtures from a local JSON or CSV file
type FileSource struct {
	name     string
	path     string
	enabled  bool
	validate *validator.Validate
	logger   *logrus.Entry
}

// NewFileSource creates a file-backed data source
func NewFileSource(name, path string, enabled bool, log *logrus.Logger) *FileSource {
	if name == "" {
		name = "file"
	}
	return &FileSource{
		name:     name,
		path:     path,
		enabled:  enabled,
		validate: validator.New(),
		logger:   logger.OrDiscard(log).WithField("source", name),
	}
}

// Name returns the name of the data source
func (s *FileSource) Name() string {
	return s.name
}

// IsEnabled returns whether this data source is currently enabled
func (s *FileSource) IsEnabled() bool {
	return s.enabled
}

// FetchFixtures reads and validates every fixture in the file
func (s *FileSource) FetchFixtures(ctx context.Context) ([]models.Fixture, error) {
	if !s.enabled {
		return nil, NewSourceError(s.name, ErrCodeDisabled, "data source is disabled", ErrSourceDisabled)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, NewSourceError(s.name, ErrCodeNotFound, "fixture file not found", fmt.Errorf("%w: %v", ErrNotFound, err))
		}
		return nil, NewSourceError(s.name, ErrCodeUnknown, "failed to open fixture file", err)
	}
	defer f.Close()

	var raw []models.Fixture
	if strings.EqualFold(filepath.Ext(s.path), ".csv") {
		raw, err = ParseFixturesCSV(f)
	} else {
		raw, err = ParseFixturesJSON(f)
	}
	if err != nil {
		return nil, NewSourceError(s.name, ErrCodeInvalidData, "failed to parse fixture file", fmt.Errorf("%w: %v", ErrInvalidData, err))
	}

	fixtures := make([]models.Fixture, 0, len(raw))
	for i, fx := range raw {
		if err := s.validate.Struct(fx); err != nil {
			s.logger.WithError(err).WithField("row", i).Warn("Skipping invalid fixture")
			continue
		}
		if fx.ID == "" {
			fx.ID = uuid.NewString()
		}
		if fx.Source == "" {
			fx.Source = s.name
		}
		fixtures = append(fixtures, fx)
	}

	return fixtures, nil
}

// ParseFixturesJSON decodes a JSON array of fixtures
func ParseFixturesJSON(r io.Reader) ([]models.Fixture, error) {
	var fixtures []models.Fixture
	dec := json.NewDecoder(r)
	if err := dec.Decode(&fixtures); err != nil {
		return nil, err
	}
	return fixtures, nil
}

// ParseFixturesCSV decodes fixtures from CSV with a header row
func ParseFixturesCSV(r io.Reader) ([]models.Fixture, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) < csvRequiredColumns {
		return nil, fmt.Errorf("expected at least %d columns, got %d", csvRequiredColumns, len(header))
	}
	for i, col := range header {
		if i >= len(csvColumns) || !strings.EqualFold(strings.TrimSpace(col), csvColumns[i]) {
			return nil, fmt.Errorf("unexpected column %q at position %d", col, i)
		}
	}

	var fixtures []models.Fixture
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		fx, err := parseCSVRecord(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		fixtures = append(fixtures, fx)
	}
	return fixtures, nil
}

func parseCSVRecord(record []string) (models.Fixture, error) {
	field := func(i int) string {
		if i < len(record) {
			return strings.TrimSpace(record[i])
		}
		return ""
	}

	prices := make([]float64, len(csvColumns)-5)
	for i := range prices {
		raw := field(i + 5)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return models.Fixture{}, fmt.Errorf("invalid %s price %q", csvColumns[i+5], raw)
		}
		prices[i] = v
	}

	fx := models.Fixture{
		ID:       field(0),
		League:   field(1),
		HomeTeam: field(3),
		AwayTeam: field(4),
		Odds: models.MatchOdds{
			Home:    prices[0],
			Draw:    prices[1],
			Away:    prices[2],
			Over25:  prices[3],
			Under25: prices[4],
			BTTSYes: prices[5],
			BTTSNo:  prices[6],
		},
	}

	if kickoff := field(2); kickoff != "" {
		t, err := time.Parse(time.RFC3339, kickoff)
		if err != nil {
			return models.Fixture{}, fmt.Errorf("invalid kickoff %q", kickoff)
		}
		fx.Kickoff = t
	}

	return fx, nil
}
