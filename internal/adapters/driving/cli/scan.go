package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/genba-labs/shashin-cli/internal/scanner"
)

var scanWatch bool

var scanCmd = &cobra.Command{
	Use:   "scan [dir]",
	Short: "List the image files in a photo folder",
	Args:  cobra.ExactArgs(1),
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().BoolVarP(&scanWatch, "watch", "w", false, "keep watching for new photos until interrupted")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	dir := args[0]

	images, err := scanner.Scan(dir)
	if err != nil {
		return err
	}

	for _, img := range images {
		cmd.Printf("%s\t%d\t%s\n", img.FileName, img.Size, img.ModTime.Format("2006-01-02 15:04"))
	}
	cmd.Printf("%d件の写真\n", len(images))

	if !scanWatch {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	events := make(chan string)
	go func() {
		for path := range events {
			cmd.Printf("新規: %s\n", path)
		}
	}()

	err = scanner.Watch(ctx, dir, events)
	close(events)
	if ctx.Err() != nil {
		// Interrupted by the operator, a normal exit.
		return nil
	}
	return err
}
