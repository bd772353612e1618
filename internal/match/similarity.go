// Package match scores a query's keyword set against a corpus partition and
// selects the best answer. Each record is scored on its own; records with no
// answer in the query's language are never selected, so a match always carries
// a non-empty answer.
package match

import "github.com/hyperjump/cancerqa/internal/keyword"

// Jaccard returns |a ∩ b| / |a ∪ b|, or 0 when both sets are empty.
func Jaccard(a, b keyword.TokenSet) float64 {
	if len(a) > len(b) {
		a, b = b, a
	}
	inter := 0
	for t := range a {
		if _, ok := b[t]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
