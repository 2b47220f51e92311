// Package file persists CLI settings as a TOML file in the shashin
// config directory.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/genba-labs/shashin-cli/internal/core/domain"
)

// Settings is the persisted CLI configuration.
type Settings struct {
	// Analysis configures the photo analysis pipeline.
	Analysis AnalysisSettings `toml:"analysis"`

	// Normalise configures the batch normaliser.
	Normalise NormaliseSettings `toml:"normalise"`
}

// AnalysisSettings configures scanning and provider calls.
type AnalysisSettings struct {
	// DataDir overrides the cache location; empty means ~/.shashin/data.
	DataDir string `toml:"data_dir"`

	// HierarchyCSV is the path to the work-classification master.
	HierarchyCSV string `toml:"hierarchy_csv"`
}

// NormaliseSettings mirrors domain.NormalisationOptions in TOML form.
type NormaliseSettings struct {
	Station             bool    `toml:"station"`
	WorkType            bool    `toml:"work_type"`
	Threshold           float64 `toml:"threshold"`
	ProtectMeasurements bool    `toml:"protect_measurements"`
}

// DefaultSettings returns the settings used when no config file exists.
func DefaultSettings() Settings {
	opts := domain.DefaultNormalisationOptions()
	return Settings{
		Normalise: NormaliseSettings{
			Station:             opts.NormaliseStation,
			WorkType:            opts.NormaliseWorkType,
			Threshold:           opts.Threshold,
			ProtectMeasurements: opts.ProtectMeasurements,
		},
	}
}

// Options converts the persisted form back to normaliser options.
func (s NormaliseSettings) Options() domain.NormalisationOptions {
	return domain.NormalisationOptions{
		NormaliseStation:    s.Station,
		NormaliseWorkType:   s.WorkType,
		Threshold:           s.Threshold,
		ProtectMeasurements: s.ProtectMeasurements,
	}
}

// ConfigStore reads and writes the TOML settings file.
type ConfigStore struct {
	mu       sync.Mutex
	filePath string
}

// NewConfigStore creates a store rooted at configDir.
// If configDir is empty, defaults to ~/.shashin.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		configDir = filepath.Join(home, ".shashin")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	return &ConfigStore{filePath: filepath.Join(configDir, "config.toml")}, nil
}

// Load reads the settings, returning defaults when no file exists yet.
func (s *ConfigStore) Load() (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return Settings{}, fmt.Errorf("reading config: %w", err)
	}

	settings := DefaultSettings()
	if err := toml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("parsing config: %w", err)
	}
	return settings, nil
}

// Save persists the settings with restricted permissions.
func (s *ConfigStore) Save(settings Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := toml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}
