package corpus

import (
	"github.com/xuri/excelize/v2"
)

// readXLSX reads one worksheet of an Excel workbook. An empty sheet name
// selects the first sheet.
func readXLSX(path, sheet string) (*table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, malformed(path, "open Excel: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, malformed(path, "workbook has no sheets")
	}
	if sheet == "" {
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, malformed(path, "get rows for sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, malformed(path, "sheet %q is empty", sheet)
	}
	return newTable(rows), nil
}
