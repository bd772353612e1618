// Package corpus loads the bilingual question-answer table and serves
// immutable, pre-tokenized snapshots of it.
package corpus

import (
	"time"

	"github.com/hyperjump/cancerqa/internal/keyword"
	"github.com/hyperjump/cancerqa/internal/models"
)

// Tokenizer produces the keyword set of a text in a language.
type Tokenizer interface {
	Extract(text string, lang models.Language) keyword.TokenSet
}

// Record is one candidate of a language partition: a question, its answer,
// and the question's cached keyword set.
type Record struct {
	Position int
	Question string
	Answer   string
	Tokens   keyword.TokenSet
}

// Corpus is an immutable snapshot of the question-answer table. Callers must
// not modify the slices or token sets it returns.
type Corpus struct {
	entries    []models.Entry
	partitions [2][]Record
	sources    []string
	loadedAt   time.Time
}

// Build creates a corpus from entries, tokenizing every question once.
func Build(entries []models.Entry, tok Tokenizer, sources ...string) *Corpus {
	c := &Corpus{
		entries:  append([]models.Entry(nil), entries...),
		sources:  append([]string(nil), sources...),
		loadedAt: time.Now(),
	}
	for _, lang := range models.Languages {
		records := make([]Record, len(c.entries))
		for i, e := range c.entries {
			q := e.Question(lang)
			records[i] = Record{
				Position: i,
				Question: q,
				Answer:   e.Answer(lang),
				Tokens:   tok.Extract(q, lang),
			}
		}
		c.partitions[lang.Index()] = records
	}
	return c
}

// Partition returns the records of lang in corpus order.
func (c *Corpus) Partition(lang models.Language) []Record {
	return c.partitions[lang.Index()]
}

// Entries returns the entries in source order.
func (c *Corpus) Entries() []models.Entry {
	return c.entries
}

// Len returns the number of entries.
func (c *Corpus) Len() int {
	return len(c.entries)
}

// Sources returns the paths the corpus was loaded from.
func (c *Corpus) Sources() []string {
	return c.sources
}

// LoadedAt returns when the snapshot was built.
func (c *Corpus) LoadedAt() time.Time {
	return c.loadedAt
}
