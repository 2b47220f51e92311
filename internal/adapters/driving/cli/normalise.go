package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/genba-labs/shashin-cli/internal/logger"
	"github.com/genba-labs/shashin-cli/internal/normaliser"
	"github.com/genba-labs/shashin-cli/internal/report"
)

var (
	normaliseThreshold float64
	normaliseNoStation bool
	normaliseNoCats    bool
	normaliseNoProtect bool
	normaliseApply     bool
	normaliseOutput    string
)

var normaliseCmd = &cobra.Command{
	Use:   "normalise [results.json]",
	Short: "Reconcile stations and classifications across a batch",
	Long: `Reads an analysis batch and unifies near-duplicate stations and
classification values onto each field's majority value. Records whose
remarks carry measurement readings are never altered. Without --apply
the corrections are only reported.`,
	Args: cobra.ExactArgs(1),
	RunE: runNormalise,
}

func init() {
	normaliseCmd.Flags().Float64Var(&normaliseThreshold, "threshold", 0, "majority ratio required to correct (default from config)")
	normaliseCmd.Flags().BoolVar(&normaliseNoStation, "no-station", false, "skip station normalisation")
	normaliseCmd.Flags().BoolVar(&normaliseNoCats, "no-classification", false, "skip work type / variety / detail normalisation")
	normaliseCmd.Flags().BoolVar(&normaliseNoProtect, "no-protect", false, "allow corrections on measurement records")
	normaliseCmd.Flags().BoolVar(&normaliseApply, "apply", false, "write the corrected batch back")
	normaliseCmd.Flags().StringVarP(&normaliseOutput, "output", "o", "", "write the corrected batch to this file instead of in place")
	rootCmd.AddCommand(normaliseCmd)
}

func runNormalise(cmd *cobra.Command, args []string) error {
	path := args[0]

	settings, err := loadSettings()
	if err != nil {
		return err
	}

	opts := settings.Normalise.Options()
	if cmd.Flags().Changed("threshold") {
		opts.Threshold = normaliseThreshold
	}
	if normaliseNoStation {
		opts.NormaliseStation = false
	}
	if normaliseNoCats {
		opts.NormaliseWorkType = false
	}
	if normaliseNoProtect {
		opts.ProtectMeasurements = false
	}
	if opts.Threshold <= 0 || opts.Threshold > 1 {
		return fmt.Errorf("threshold must be in (0, 1], got %v", opts.Threshold)
	}

	batch, err := loadBatch(path)
	if err != nil {
		return err
	}

	logger.Stage("正規化")
	result := normaliser.NormaliseResults(batch, opts)
	report.WriteCorrections(cmd.OutOrStdout(), &result)

	if !normaliseApply {
		return nil
	}

	normaliser.ApplyCorrections(batch, result.Corrections)
	out := normaliseOutput
	if out == "" {
		out = path
	}
	if err := saveBatch(out, batch); err != nil {
		return err
	}
	cmd.Printf("補正結果を %s に保存しました\n", out)
	return nil
}
