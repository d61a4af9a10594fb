// Package xlsx renders an assembled report into a spreadsheet workbook.
package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/kingrea/licwatch/internal/report"
)

const minColumnWidth = 16

// Write saves the report to path as an xlsx workbook. Sheets keep their
// given order; the first sheet replaces the workbook default so no empty
// Sheet1 is left behind. Nothing is written to disk on error.
func Write(rep report.Report, path string) error {
	if len(rep.Sheets) == 0 {
		return fmt.Errorf("xlsx: report has no sheets")
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("xlsx: header style: %w", err)
	}

	titles := make([]string, len(rep.Sheets))
	for i, sheet := range rep.Sheets {
		titles[i] = sheet.Name
	}
	titles = uniqueSheetNames(titles)

	for i, sheet := range rep.Sheets {
		name := titles[i]
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return fmt.Errorf("xlsx: rename default sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return fmt.Errorf("xlsx: create sheet %q: %w", name, err)
			}
		}
		if err := writeSheet(f, name, sheet, headerStyle); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("xlsx: save %s: %w", path, err)
	}
	return nil
}

func writeSheet(f *excelize.File, name string, sheet report.Sheet, headerStyle int) error {
	header := make([]any, len(sheet.Columns))
	for i, col := range sheet.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return fmt.Errorf("xlsx: write header on %q: %w", name, err)
	}

	for i, row := range sheet.Rows {
		cells := make([]any, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		addr, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("xlsx: row address on %q: %w", name, err)
		}
		if err := f.SetSheetRow(name, addr, &cells); err != nil {
			return fmt.Errorf("xlsx: write row %d on %q: %w", i+2, name, err)
		}
	}

	if len(sheet.Columns) == 0 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(len(sheet.Columns), 1)
	if err != nil {
		return fmt.Errorf("xlsx: header range on %q: %w", name, err)
	}
	if err := f.SetCellStyle(name, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("xlsx: style header on %q: %w", name, err)
	}
	for i, col := range sheet.Columns {
		colName, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("xlsx: column name on %q: %w", name, err)
		}
		width := float64(len([]rune(col)) + 8)
		if width < minColumnWidth {
			width = minColumnWidth
		}
		if err := f.SetColWidth(name, colName, colName, width); err != nil {
			return fmt.Errorf("xlsx: column width on %q: %w", name, err)
		}
	}
	return nil
}
