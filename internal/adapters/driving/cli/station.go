package cli

import (
	"github.com/spf13/cobra"

	"github.com/genba-labs/shashin-cli/internal/normaliser"
	"github.com/genba-labs/shashin-cli/internal/station"
)

var stationOutput string

var stationCmd = &cobra.Command{
	Use:   "station",
	Short: "Work with station values",
}

var stationFillCmd = &cobra.Command{
	Use:   "fill [results.json]",
	Short: "Interactively fill in missing stations",
	Long: `Walks every record whose station could not be read from the photo
board and prompts for the value. Accepted values are written back to
the batch file.`,
	Args: cobra.ExactArgs(1),
	RunE: runStationFill,
}

func init() {
	stationFillCmd.Flags().StringVarP(&stationOutput, "output", "o", "", "write the filled batch to this file instead of in place")
	stationCmd.AddCommand(stationFillCmd)
	rootCmd.AddCommand(stationCmd)
}

func runStationFill(cmd *cobra.Command, args []string) error {
	path := args[0]

	batch, err := loadBatch(path)
	if err != nil {
		return err
	}

	corrections, err := station.Fill(batch)
	if err != nil {
		return err
	}
	if len(corrections) == 0 {
		cmd.Println("補充する測点はありません")
		return nil
	}

	normaliser.ApplyCorrections(batch, corrections)
	out := stationOutput
	if out == "" {
		out = path
	}
	if err := saveBatch(out, batch); err != nil {
		return err
	}
	cmd.Printf("%d件の測点を補充し %s に保存しました\n", len(corrections), out)
	return nil
}
