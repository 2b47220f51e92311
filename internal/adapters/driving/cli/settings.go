package cli

import (
	"github.com/spf13/cobra"

	"github.com/genba-labs/shashin-cli/internal/adapters/driven/config/file"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage persisted settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current settings",
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := file.NewConfigStore(configDir)
		if err != nil {
			return err
		}
		settings, err := store.Load()
		if err != nil {
			return err
		}

		cmd.Printf("設定ファイル: %s\n", store.Path())
		cmd.Printf("測点の正規化: %v\n", settings.Normalise.Station)
		cmd.Printf("分類の正規化: %v\n", settings.Normalise.WorkType)
		cmd.Printf("多数決しきい値: %v\n", settings.Normalise.Threshold)
		cmd.Printf("測定値の保護: %v\n", settings.Normalise.ProtectMeasurements)
		if settings.Analysis.HierarchyCSV != "" {
			cmd.Printf("工種マスタ: %s\n", settings.Analysis.HierarchyCSV)
		}
		return nil
	},
}

var settingsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a settings file with the defaults",
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := file.NewConfigStore(configDir)
		if err != nil {
			return err
		}
		if err := store.Save(file.DefaultSettings()); err != nil {
			return err
		}
		cmd.Printf("設定ファイルを作成しました: %s\n", store.Path())
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsInitCmd)
	rootCmd.AddCommand(settingsCmd)
}
