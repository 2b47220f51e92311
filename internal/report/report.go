// Package report prints normalisation outcomes for the terminal.
package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/genba-labs/shashin-cli/internal/core/domain"
)

// WriteCorrections renders the applied corrections as a table followed
// by a statistics line. A batch with no corrections prints only the
// statistics.
func WriteCorrections(w io.Writer, result *domain.NormalisationResult) {
	if len(result.Corrections) > 0 {
		fmt.Fprintln(w, renderCorrectionTable(result.Corrections))
	}
	WriteStats(w, result.Stats)
}

// WriteStats prints the one-line batch summary.
func WriteStats(w io.Writer, stats domain.NormalisationStats) {
	fmt.Fprintf(w, "%d件中%d件を補正（測点: %d, 分類: %d, 測定値保護: %d）\n",
		stats.TotalRecords,
		stats.CorrectedRecords,
		stats.StationCorrections,
		stats.WorkTypeCorrections,
		stats.SkippedMeasurements,
	)
}

func renderCorrectionTable(corrections []domain.NormalisationCorrection) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"ファイル名", "項目", "補正前", "補正後"})

	for _, c := range corrections {
		tw.AppendRow(table.Row{c.FileName, c.Field.Label(), c.Original, c.Corrected})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
