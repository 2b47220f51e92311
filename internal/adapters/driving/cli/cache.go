package cli

import (
	"github.com/spf13/cobra"

	"github.com/genba-labs/shashin-cli/internal/cache"
)

var cacheDataDir string

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the analysis cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache location and entry count",
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := cache.Open(cacheDataDir)
		if err != nil {
			return err
		}
		defer store.Close()

		n, err := store.Len()
		if err != nil {
			return err
		}
		cmd.Printf("キャッシュ: %s\n", store.Path())
		cmd.Printf("エントリ数: %d\n", n)
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached analysis results",
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := cache.Open(cacheDataDir)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Clear(); err != nil {
			return err
		}
		cmd.Println("キャッシュを削除しました")
		return nil
	},
}

func init() {
	cacheCmd.PersistentFlags().StringVar(&cacheDataDir, "data-dir", "", "cache directory (default ~/.shashin/data)")
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}
