package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/genba-labs/shashin-cli/internal/hierarchy"
)

var hierarchyCSV string

var hierarchyCmd = &cobra.Command{
	Use:   "hierarchy",
	Short: "Inspect the work-classification master",
}

var hierarchyListCmd = &cobra.Command{
	Use:   "list [work-type]",
	Short: "List work types, or one work type's varieties and details",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHierarchyList,
}

var hierarchyFindCmd = &cobra.Command{
	Use:   "find [text]",
	Short: "Find master rows whose search patterns match text",
	Args:  cobra.ExactArgs(1),
	RunE:  runHierarchyFind,
}

func init() {
	hierarchyCmd.PersistentFlags().StringVar(&hierarchyCSV, "master", "", "master CSV path (default from settings)")
	hierarchyCmd.AddCommand(hierarchyListCmd)
	hierarchyCmd.AddCommand(hierarchyFindCmd)
	rootCmd.AddCommand(hierarchyCmd)
}

// loadMaster resolves the master CSV path from the flag or settings.
func loadMaster() (*hierarchy.Master, error) {
	path := hierarchyCSV
	if path == "" {
		settings, err := loadSettings()
		if err != nil {
			return nil, err
		}
		path = settings.Analysis.HierarchyCSV
	}
	if path == "" {
		return nil, errors.New("no master CSV configured; pass --master or set analysis.hierarchy_csv")
	}
	return hierarchy.Load(path)
}

func runHierarchyList(cmd *cobra.Command, args []string) error {
	master, err := loadMaster()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		for _, wt := range master.WorkTypes() {
			cmd.Println(wt)
		}
		return nil
	}

	workType := args[0]
	for _, variety := range master.Varieties(workType) {
		cmd.Println(variety)
		for _, detail := range master.Details(workType, variety) {
			cmd.Printf("  %s\n", detail)
		}
	}
	return nil
}

func runHierarchyFind(cmd *cobra.Command, args []string) error {
	master, err := loadMaster()
	if err != nil {
		return err
	}

	rows := master.FindByPattern(args[0])
	if len(rows) == 0 {
		cmd.Println("該当なし")
		return nil
	}
	for _, row := range rows {
		cmd.Println(strings.Join([]string{row.WorkType, row.Variety, row.Detail, row.Remarks}, " / "))
	}
	return nil
}
