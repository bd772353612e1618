package corpus

import (
	"os"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/hyperjump/cancerqa/internal/keyword"
)

var sampleRows = [][]string{
	{"Queries", "Queries_Bengali", "Answers", "Ans_Bengali"},
	{"What are the early signs of breast cancer?", "স্তন ক্যান্সারের প্রাথমিক লক্ষণগুলি কী?", "A lump in the breast.", "স্তনে পিণ্ড।"},
	{"How is HPV transmitted?", "কীভাবে এইচপিভি সংক্রমণিত?", "Through skin contact.", "ত্বকের সংস্পর্শে।"},
}

func newTestLoader(t *testing.T, opts ...LoaderOption) *Loader {
	t.Helper()
	x, err := keyword.NewExtractor()
	if err != nil {
		t.Fatal(err)
	}
	return NewLoader(x, opts...)
}

func writeXLSX(t *testing.T, path, sheet string, rows [][]string) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if sheet != "" && sheet != "Sheet1" {
		if _, err := f.NewSheet(sheet); err != nil {
			t.Fatal(err)
		}
	}
	if sheet == "" {
		sheet = "Sheet1"
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
}

func writeCSV(t *testing.T, path string, rows [][]string, sep string) {
	t.Helper()
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(strings.Join(row, sep))
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0600); err != nil {
		t.Fatal(err)
	}
}

func columns(rows [][]string, from, to int) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = append([]string(nil), r[from:to]...)
	}
	return out
}
