package datasource

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/clever-forecast/internal/config"
	"github.com/yourusername/clever-forecast/internal/logger"
)

// Factory creates DataSource implementations based on configuration
type Factory struct {
	logger *logrus.Logger
	config *config.Config
}

// NewFactory creates a new data source factory
func NewFactory(cfg *config.Config, log *logrus.Logger) *Factory {
	return &Factory{
		logger: logger.OrDiscard(log),
		config: cfg,
	}
}

// NewDataSource creates a new DataSource based on the provided configuration
func (f *Factory) NewDataSource(cfg config.DataSourceConfig) (DataSource, error) {
	switch cfg.Kind {
	case config.SourceKindFile:
		if cfg.Path == "" {
			return nil, fmt.Errorf("file data source %s requires a path", cfg.Name)
		}
		return NewFileSource(cfg.Name, cfg.Path, cfg.Enabled, f.logger), nil

	case config.SourceKindOddsAPI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("odds API key is required for %s", cfg.Name)
		}
		return NewOddsAPISource(NewRateLimitedHTTPClient(httpConfigFor(cfg), f.logger), OddsAPIConfig{
			Name:    cfg.Name,
			BaseURL: cfg.BaseURL,
			APIKey:  cfg.APIKey,
			Sports:  cfg.Sports,
			Regions: cfg.Regions,
			Enabled: cfg.Enabled,
		}, f.logger), nil

	default:
		return nil, fmt.Errorf("unknown data source kind: %s", cfg.Kind)
	}
}

// NewDataSources creates all enabled data sources from configuration
func (f *Factory) NewDataSources() ([]DataSource, error) {
	var sources []DataSource

	for _, srcCfg := range f.config.DataSources {
		if !srcCfg.Enabled {
			f.logger.WithField("source", srcCfg.Name).Debug("Skipping disabled data source")
			continue
		}

		source, err := f.NewDataSource(srcCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create data source %s: %w", srcCfg.Name, err)
		}

		sources = append(sources, source)
		f.logger.WithFields(logrus.Fields{"source": srcCfg.Name, "kind": srcCfg.Kind}).Info("Created data source")
	}

	if len(sources) == 0 {
		return nil, fmt.Errorf("no enabled data sources configured")
	}

	return sources, nil
}

// NewCollector builds a collector over every enabled source
func (f *Factory) NewCollector() (*Collector, error) {
	sources, err := f.NewDataSources()
	if err != nil {
		return nil, err
	}
	return NewCollector(sources, f.logger), nil
}

func httpConfigFor(cfg config.DataSourceConfig) HTTPClientConfig {
	httpCfg := DefaultHTTPClientConfig()
	if cfg.Timeout > 0 {
		httpCfg.Timeout = cfg.Timeout
	}
	if cfg.MaxRetries > 0 {
		httpCfg.MaxRetries = cfg.MaxRetries
	}
	if cfg.RateLimit > 0 {
		httpCfg.RateLimit = cfg.RateLimit
	}
	return httpCfg
}
