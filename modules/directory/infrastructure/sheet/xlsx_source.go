package sheet

import (
	"context"
	"encoding/csv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/xuri/excelize/v2"
)

// XLSXSource renders one worksheet of a workbook as CSV text so it goes
// through the same header normalization as the published sheet.
type XLSXSource struct {
	path  string
	sheet string
}

// NewXLSXSource reads sheetName, or the first worksheet when sheetName is "".
func NewXLSXSource(path, sheetName string) *XLSXSource {
	return &XLSXSource{path: path, sheet: sheetName}
}

func (s *XLSXSource) Name() string {
	if s.sheet == "" {
		return "xlsx:" + s.path
	}
	return "xlsx:" + s.path + "#" + s.sheet
}

func (s *XLSXSource) Fetch(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return "", &FetchError{Source: s.Name(), URL: s.path, Err: err}
	}
	defer f.Close()

	name := s.sheet
	if name == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return "", &FetchError{Source: s.Name(), URL: s.path, Err: errors.New("workbook has no sheets")}
		}
		name = sheets[0]
	}

	rows, err := f.GetRows(name)
	if err != nil {
		return "", &FetchError{Source: s.Name(), URL: s.path, Err: errors.Wrapf(err, "read sheet %q", name)}
	}
	return rowsToCSV(rows)
}

var cellBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// rowsToCSV pads short rows to the header width; excelize trims trailing
// empty cells. Every output line is one worksheet row: line breaks inside a
// cell become spaces, and header cells lose their commas because header
// lines are split without quote handling.
func rowsToCSV(rows [][]string) (string, error) {
	width := 0
	if len(rows) > 0 {
		width = len(rows[0])
	}
	var b strings.Builder
	w := csv.NewWriter(&b)
	for i, row := range rows {
		out := make([]string, max(width, len(row)))
		for j, cell := range row {
			cell = cellBreaks.Replace(cell)
			if i == 0 {
				cell = strings.ReplaceAll(cell, ",", "")
			}
			out[j] = cell
		}
		if err := w.Write(out); err != nil {
			return "", errors.Wrap(err, "write csv row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", errors.Wrap(err, "flush csv")
	}
	return b.String(), nil
}
