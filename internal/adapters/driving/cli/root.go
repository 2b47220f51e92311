// Package cli wires the cobra command tree for the shashin CLI.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/genba-labs/shashin-cli/internal/adapters/driven/config/file"
	"github.com/genba-labs/shashin-cli/internal/core/domain"
	"github.com/genba-labs/shashin-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verbose   bool
	configDir string
)

var rootCmd = &cobra.Command{
	Use:   "shashin",
	Short: "Construction photo batch normaliser",
	Long: `shashin analyses construction site photographs, reconciles the
AI-read stations and classifications across a batch by majority vote,
and exports the result for the photo ledger.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default ~/.shashin)")
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

// loadSettings reads the persisted settings, falling back to defaults.
func loadSettings() (file.Settings, error) {
	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return file.Settings{}, err
	}
	return store.Load()
}

// loadBatch reads an analysis batch from a JSON file. Both a bare
// array and a single object are accepted.
func loadBatch(path string) ([]domain.AnalysisResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading batch: %w", err)
	}

	var batch []domain.AnalysisResult
	if err := json.Unmarshal(data, &batch); err != nil {
		var single domain.AnalysisResult
		if err2 := json.Unmarshal(data, &single); err2 != nil {
			return nil, fmt.Errorf("parsing batch: %w", err)
		}
		batch = []domain.AnalysisResult{single}
	}
	return batch, nil
}

// saveBatch writes an analysis batch back to a JSON file.
func saveBatch(path string, batch []domain.AnalysisResult) error {
	data, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding batch: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing batch: %w", err)
	}
	return nil
}
