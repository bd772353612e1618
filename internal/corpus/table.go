package corpus

import (
	"strings"

	"github.com/hyperjump/cancerqa/internal/models"
)

// table is a header row plus data rows, all padded to the header width.
type table struct {
	header []string
	rows   [][]string
}

// newTable splits raw rows into header and data, padding ragged rows.
func newTable(raw [][]string) *table {
	if len(raw) == 0 {
		return &table{}
	}
	t := &table{header: raw[0]}
	for _, r := range raw[1:] {
		t.rows = append(t.rows, pad(r, len(t.header)))
	}
	return t
}

func pad(row []string, width int) []string {
	out := make([]string, width)
	copy(out, row)
	return out
}

// joinColumns places tables side by side; row i of the result is row i of every
// input, with missing rows filled by empty cells.
func joinColumns(tables []*table) *table {
	if len(tables) == 1 {
		return tables[0]
	}
	out := &table{}
	maxRows := 0
	for _, t := range tables {
		out.header = append(out.header, t.header...)
		if len(t.rows) > maxRows {
			maxRows = len(t.rows)
		}
	}
	for i := 0; i < maxRows; i++ {
		row := make([]string, 0, len(out.header))
		for _, t := range tables {
			if i < len(t.rows) {
				row = append(row, t.rows[i]...)
			} else {
				row = append(row, make([]string, len(t.header))...)
			}
		}
		out.rows = append(out.rows, row)
	}
	return out
}

type column int

const (
	colQuestionEN column = iota
	colQuestionBN
	colAnswerEN
	colAnswerBN
	numColumns
)

var columnNames = [numColumns]string{
	colQuestionEN: "Queries",
	colQuestionBN: "Queries_Bengali",
	colAnswerEN:   "Answers",
	colAnswerBN:   "Ans_Bengali",
}

// headerAliases maps a normalized header to its column.
var headerAliases = map[string]column{
	"queries":         colQuestionEN,
	"question_en":     colQuestionEN,
	"queries_bengali": colQuestionBN,
	"question_bn":     colQuestionBN,
	"answers":         colAnswerEN,
	"answer_en":       colAnswerEN,
	"ans_bengali":     colAnswerBN,
	"answers_bengali": colAnswerBN,
	"answer_bn":       colAnswerBN,
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
	return strings.Join(strings.Fields(h), "_")
}

// entries maps the table onto aligned entries. Every required column must be
// present; cells are trimmed and fully blank rows are dropped.
func (t *table) entries(source string) ([]models.Entry, error) {
	var idx [numColumns]int
	for i := range idx {
		idx[i] = -1
	}
	for i, h := range t.header {
		c, ok := headerAliases[normalizeHeader(h)]
		if ok && idx[c] < 0 {
			idx[c] = i
		}
	}
	var missing []string
	for c, i := range idx {
		if i < 0 {
			missing = append(missing, columnNames[c])
		}
	}
	if len(missing) > 0 {
		return nil, malformed(source, "missing required columns: %s", strings.Join(missing, ", "))
	}

	entries := make([]models.Entry, 0, len(t.rows))
	for _, row := range t.rows {
		e := models.Entry{
			QuestionEN: strings.TrimSpace(row[idx[colQuestionEN]]),
			QuestionBN: strings.TrimSpace(row[idx[colQuestionBN]]),
			AnswerEN:   strings.TrimSpace(row[idx[colAnswerEN]]),
			AnswerBN:   strings.TrimSpace(row[idx[colAnswerBN]]),
		}
		if e.IsBlank() {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// entriesTable renders entries as a table with the canonical headers.
func entriesTable(entries []models.Entry) *table {
	t := &table{header: columnNames[:]}
	for _, e := range entries {
		t.rows = append(t.rows, []string{e.QuestionEN, e.QuestionBN, e.AnswerEN, e.AnswerBN})
	}
	return t
}
