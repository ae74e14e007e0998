package spreadsheet

import (
	"bytes"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Write renders headers and rows as a single-sheet xlsx workbook with a bold,
// filtered header row.
func Write(w io.Writer, sheet string, headers []string, rows [][]string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheet = "Sheet1"
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	all := append([][]string{headers}, rows...)
	for i, row := range all {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := formatHeader(f, sheet, all); err != nil {
		return err
	}
	return f.Write(w)
}

// Encode is Write into a byte slice.
func Encode(sheet string, headers []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, sheet, headers, rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatHeader(f *excelize.File, sheet string, rows [][]string) error {
	cols := 0
	for _, r := range rows {
		if len(r) > cols {
			cols = len(r)
		}
	}
	if cols == 0 {
		return nil
	}
	last, err := excelize.ColumnNumberToName(cols)
	if err != nil {
		return err
	}

	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetCellStyle(sheet, "A1", last+"1", style)
	}
	_ = f.AutoFilter(sheet, "A1:"+last+"1", nil)

	for c := 0; c < cols; c++ {
		width := 12.0
		for _, r := range rows {
			if c < len(r) {
				if w := float64(len([]rune(r[c]))) * 1.2; w > width {
					width = w
				}
			}
		}
		if width > 50 {
			width = 50
		}
		name, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return err
		}
		_ = f.SetColWidth(sheet, name, name, width)
	}
	return nil
}
