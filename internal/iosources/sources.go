package iosources

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/orenza/orenzadb/pkg/config"
	"github.com/orenza/orenzadb/pkg/sources"
	"gopkg.in/yaml.v3"
)

type iosources struct {
	cfg *config.Config
}

func New(cfg *config.Config) sources.Sources {
	res := iosources{cfg: cfg}
	return &res
}

func (s *iosources) Load() (*sources.SourcesConfig, error) {
	sourcesPath := config.SourcesFilePath(s.cfg.HomeDir)
	sourcesConfig, err := loadSourcesConfig(sourcesPath)
	if err != nil {
		return nil, SourcesConfigError(sourcesPath, err)
	}
	for _, w := range sourcesConfig.Warnings {
		slog.Warn("Sources configuration",
			"source", w.Source, "field", w.Field, "message", w.Message,
		)
	}
	return sourcesConfig, nil
}

// loadSourcesConfig reads sources.yaml on top of default locations, so
// a partial file only overrides what it names.
func loadSourcesConfig(path string) (*sources.SourcesConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources config file: %w", err)
	}

	res := sources.Default()
	if err = yaml.Unmarshal(data, res); err != nil {
		return nil, fmt.Errorf("failed to parse sources config file: %w", err)
	}

	if err = res.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sources config: %w", err)
	}
	return res, nil
}
