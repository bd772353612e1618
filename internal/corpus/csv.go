package corpus

import (
	"encoding/csv"
	"os"
)

// readDelimited reads a CSV (or TSV when comma is '\t') file with a header row.
func readDelimited(path string, comma rune) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, malformed(path, "open: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = comma
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, malformed(path, "parse: %w", err)
	}
	if len(rows) == 0 {
		return nil, malformed(path, "file is empty")
	}
	return newTable(rows), nil
}
