// Package excel renders an analysed photo batch into an XLSX workbook
// for the site office: one sheet listing the records, one listing the
// corrections the normaliser applied.
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/genba-labs/shashin-cli/internal/core/domain"
)

const (
	photoSheet      = "写真一覧"
	correctionSheet = "補正一覧"
)

// Workbook builds the export workbook and returns its bytes. The
// corrections argument may be empty; the corrections sheet is still
// written with just its header so reviewers see it was considered.
func Workbook(batch []domain.AnalysisResult, corrections []domain.NormalisationCorrection) ([]byte, error) {
	f := excelize.NewFile()

	if err := writePhotoSheet(f, batch); err != nil {
		return nil, err
	}
	if err := writeCorrectionSheet(f, corrections); err != nil {
		return nil, err
	}

	// Drop excelize's default sheet so the photo list opens first.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("removing default sheet: %w", err)
	}
	index, err := f.GetSheetIndex(photoSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

func writePhotoSheet(f *excelize.File, batch []domain.AnalysisResult) error {
	if _, err := f.NewSheet(photoSheet); err != nil {
		return fmt.Errorf("creating photo sheet: %w", err)
	}

	headers := []string{
		"ファイル名",
		"写真区分",
		"工種",
		"種別",
		"細別",
		"測点",
		"備考",
		"測定値",
		"黒板",
	}
	if err := writeRow(f, photoSheet, 1, headers); err != nil {
		return err
	}

	for i, result := range batch {
		board := ""
		if result.HasBoard {
			board = "あり"
		}
		row := []string{
			result.FileName,
			result.PhotoCategory,
			result.WorkType,
			result.Variety,
			result.Detail,
			result.Station,
			result.Remarks,
			result.Measurements,
			board,
		}
		if err := writeRow(f, photoSheet, i+2, row); err != nil {
			return err
		}
	}

	widths := []struct {
		col   string
		width float64
	}{
		{"A", 28}, {"B", 16}, {"C", 14}, {"D", 16}, {"E", 14},
		{"F", 14}, {"G", 36}, {"H", 24}, {"I", 8},
	}
	for _, w := range widths {
		if err := f.SetColWidth(photoSheet, w.col, w.col, w.width); err != nil {
			return fmt.Errorf("setting column width: %w", err)
		}
	}
	return nil
}

func writeCorrectionSheet(f *excelize.File, corrections []domain.NormalisationCorrection) error {
	if _, err := f.NewSheet(correctionSheet); err != nil {
		return fmt.Errorf("creating correction sheet: %w", err)
	}

	headers := []string{"ファイル名", "項目", "補正前", "補正後", "理由"}
	if err := writeRow(f, correctionSheet, 1, headers); err != nil {
		return err
	}

	for i, c := range corrections {
		row := []string{c.FileName, c.Field.Label(), c.Original, c.Corrected, c.Reason}
		if err := writeRow(f, correctionSheet, i+2, row); err != nil {
			return err
		}
	}

	widths := []struct {
		col   string
		width float64
	}{
		{"A", 28}, {"B", 10}, {"C", 18}, {"D", 18}, {"E", 52},
	}
	for _, w := range widths {
		if err := f.SetColWidth(correctionSheet, w.col, w.col, w.width); err != nil {
			return fmt.Errorf("setting column width: %w", err)
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []string) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("writing %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}
