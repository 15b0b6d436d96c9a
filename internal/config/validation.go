// Package config provides configuration management for the forecaster.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Source kinds understood by the data source factory
const (
	SourceKindFile    = "file"
	SourceKindOddsAPI = "odds_api"
)

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() *CustomValidator {
	v := validator.New()

	// Register custom validation functions
	_ = v.RegisterValidation("environment", validateEnvironment)
	_ = v.RegisterValidation("loglevel", validateLogLevel)
	_ = v.RegisterValidation("sourcekind", validateSourceKind)

	return &CustomValidator{validator: v}
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	cv := NewValidator()
	return cv.Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	err := cv.validator.Struct(cfg)
	if err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	// Additional cross-field validations
	if err := validateCrossField(cfg); err != nil {
		return err
	}

	return nil
}

// validateEnvironment validates the environment field
func validateEnvironment(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

// validateLogLevel validates the log level field
func validateLogLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// validateSourceKind validates a data source kind
func validateSourceKind(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case SourceKindFile, SourceKindOddsAPI:
		return true
	default:
		return false
	}
}

// validateCrossField performs cross-field validations
func validateCrossField(cfg *Config) error {
	a := cfg.Analysis
	if a.MinOdds > 0 && a.MaxOdds > 0 && a.MinOdds > a.MaxOdds {
		return fmt.Errorf("analysis min_odds cannot exceed max_odds")
	}
	if a.MinOdds > 0 && a.MinOdds <= 1 {
		return fmt.Errorf("analysis min_odds must be greater than 1 when set")
	}

	switch cfg.Settings.Backend {
	case "file":
		if cfg.Settings.Path == "" {
			return fmt.Errorf("settings path is required for the file backend")
		}
	case "postgres":
		if cfg.Settings.DSN == "" {
			return fmt.Errorf("settings dsn is required for the postgres backend")
		}
	}

	names := make(map[string]bool, len(cfg.DataSources))
	for _, src := range cfg.DataSources {
		if names[src.Name] {
			return fmt.Errorf("duplicate data source name %q", src.Name)
		}
		names[src.Name] = true

		if !src.Enabled {
			continue
		}
		switch src.Kind {
		case SourceKindFile:
			if src.Path == "" {
				return fmt.Errorf("data source %q requires a path", src.Name)
			}
		case SourceKindOddsAPI:
			if src.APIKey == "" {
				return fmt.Errorf("data source %q requires an api_key", src.Name)
			}
			if len(src.Sports) == 0 {
				return fmt.Errorf("data source %q requires at least one sport", src.Name)
			}
		}
	}

	if cfg.Scheduler.Enabled && strings.TrimSpace(cfg.Scheduler.AnalysisSchedule) == "" {
		return fmt.Errorf("scheduler analysis_schedule is required when the scheduler is enabled")
	}

	if cfg.Secrets.Enabled && (cfg.Secrets.Region == "" || cfg.Secrets.SecretName == "") {
		return fmt.Errorf("secrets region and secret_name are required when secrets are enabled")
	}

	return nil
}

// formatValidationErrors formats validation errors into a readable string
func formatValidationErrors(validationErrors validator.ValidationErrors) error {
	var errMsg string
	for _, fieldError := range validationErrors {
		field := fieldError.StructField()
		tag := fieldError.Tag()
		value := fieldError.Value()

		switch tag {
		case "required":
			errMsg += fmt.Sprintf("- Field '%s' is required\n", field)
		case "url":
			errMsg += fmt.Sprintf("- Field '%s' must be a valid URL, got '%v'\n", field, value)
		case "min", "max":
			errMsg += fmt.Sprintf("- Field '%s' validation failed: %s constraint violated\n", field, tag)
		case "gt", "gte", "lt", "lte":
			errMsg += fmt.Sprintf("- Field '%s' validation failed: numeric constraint %s violated\n", field, tag)
		case "environment":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: development, staging, production\n", field)
		case "loglevel":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: debug, info, warn, error\n", field)
		case "sourcekind":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: file, odds_api\n", field)
		case "oneof":
			errMsg += fmt.Sprintf("- Field '%s' has invalid value '%v'\n", field, value)
		default:
			errMsg += fmt.Sprintf("- Field '%s' failed validation: %s\n", field, tag)
		}
	}
	return fmt.Errorf("configuration validation failed:\n%s", errMsg)
}
