package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/genba-labs/shashin-cli/internal/core/domain"
	"github.com/genba-labs/shashin-cli/internal/export/excel"
	"github.com/genba-labs/shashin-cli/internal/logger"
	"github.com/genba-labs/shashin-cli/internal/normaliser"
)

var (
	exportOutput      string
	exportNoNormalise bool
)

var exportCmd = &cobra.Command{
	Use:   "export [results.json]",
	Short: "Export a batch as an XLSX workbook",
	Long: `Writes the batch to an Excel workbook with a photo-list sheet and a
corrections sheet. Unless --no-normalise is given, the consensus pass
runs first and its corrections are applied to the exported rows.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "写真一覧.xlsx", "output workbook path")
	exportCmd.Flags().BoolVar(&exportNoNormalise, "no-normalise", false, "export the batch as-is")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	batch, err := loadBatch(args[0])
	if err != nil {
		return err
	}

	var corrections []domain.NormalisationCorrection
	if !exportNoNormalise {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		result := normaliser.NormaliseResults(batch, settings.Normalise.Options())
		normaliser.ApplyCorrections(batch, result.Corrections)
		corrections = result.Corrections
	}

	logger.Stage("エクスポート")
	data, err := excel.Workbook(batch, corrections)
	if err != nil {
		return err
	}
	if err := os.WriteFile(exportOutput, data, 0o644); err != nil {
		return err
	}

	cmd.Printf("%d件を %s に出力しました\n", len(batch), exportOutput)
	return nil
}
