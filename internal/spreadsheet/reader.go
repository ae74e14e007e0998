// Package spreadsheet reads uploaded rosters and writes roster templates.
//
// Only the first worksheet is read. Row 1 is the header; every following row
// is data, including blank ones, so row positions stay aligned with the
// spreadsheet.
package spreadsheet

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

var (
	// ErrUnsupportedType is returned for file names outside AllowedExtensions.
	ErrUnsupportedType = errors.New("invalid file type")

	// ErrEmptyFile is returned when the first worksheet has no header row.
	ErrEmptyFile = errors.New("empty file: no header row")
)

// AllowedExtensions lists the accepted file extensions, lowercase without dot.
var AllowedExtensions = []string{"xlsx", "xls"}

// Sheet is the header row and data rows of one worksheet.
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]string
}

// Extension returns the lowercase extension of name without the dot.
func Extension(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

// Allowed reports whether name carries an accepted extension.
func Allowed(name string) bool {
	ext := Extension(name)
	for _, a := range AllowedExtensions {
		if ext == a {
			return true
		}
	}
	return false
}

// Read parses the first worksheet of an uploaded workbook. The format is
// chosen by the extension of name.
func Read(name string, r io.Reader) (*Sheet, error) {
	switch Extension(name) {
	case "xlsx":
		return readXLSX(r)
	case "xls":
		return readXLS(r)
	default:
		return nil, ErrUnsupportedType
	}
}

func readXLSX(r io.Reader) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return split(sheets[0], rows)
}

func readXLS(r io.Reader) (sheet *Sheet, err error) {
	// The BIFF decoder panics on some truncated files.
	defer func() {
		if p := recover(); p != nil {
			sheet, err = nil, fmt.Errorf("open workbook: corrupt xls: %v", p)
		}
	}()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	if wb.NumSheets() == 0 {
		return nil, ErrEmptyFile
	}

	ws := wb.GetSheet(0)
	if ws == nil {
		return nil, ErrEmptyFile
	}

	var rows [][]string
	for i := 0; i <= int(ws.MaxRow); i++ {
		row := ws.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, row.LastCol())
		for c := range cells {
			cells[c] = row.Col(c)
		}
		rows = append(rows, cells)
	}
	return split(ws.Name, rows)
}

func split(name string, rows [][]string) (*Sheet, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyFile
	}
	return &Sheet{
		Name:    name,
		Headers: rows[0],
		Rows:    rows[1:],
	}, nil
}
