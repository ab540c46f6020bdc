package reports

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Preview is a console-renderable summary of a downloaded workbook.
type Preview struct {
	Sheet   string
	Headers []string
	Rows    [][]string
	Total   int
}

// maxPreviewRows caps how much of a workbook the console prints.
const maxPreviewRows = 20

// OpenPreview reads the first sheet of a downloaded report so the console
// can show what the backend produced without leaving the terminal.
func OpenPreview(path string) (*Preview, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}

	p := &Preview{Sheet: sheet}
	if len(rows) == 0 {
		return p, nil
	}

	p.Headers = rows[0]
	body := rows[1:]
	p.Total = len(body)
	if len(body) > maxPreviewRows {
		body = body[:maxPreviewRows]
	}
	p.Rows = body
	return p, nil
}
