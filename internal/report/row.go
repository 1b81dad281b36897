// Package report turns term artifacts and extractor results into filtered,
// sorted and ranked tables ready for encoding.
package report

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/custodio78/termsuite-core/internal/domain"
	"github.com/custodio78/termsuite-core/internal/extractor"
	"github.com/custodio78/termsuite-core/internal/translation"
)

// Row is one report line. Extraction fields are zero for memory reports.
type Row struct {
	Rank        int
	Term        string
	Frequency   int
	Length      int
	WordCount   int
	Language    string
	Translation string
	Match       translation.MatchKind

	Pattern           string
	DocumentFrequency int
	Specificity       float64
	InReference       bool
	Components        string
}

// BuildRows converts an artifact into rows in stored term order.
func BuildRows(a domain.Artifact) []Row {
	lang := a.LanguageLabel()
	rows := make([]Row, 0, len(a.Terms))
	for _, term := range a.Terms {
		rows = append(rows, newRow(term, a.Frequency(term), lang))
	}
	return rows
}

// BuildExtractionRows converts delegated extractor terms into rows.
func BuildExtractionRows(terms []extractor.Term, lang string) []Row {
	rows := make([]Row, 0, len(terms))
	for _, t := range terms {
		r := newRow(t.GroupingKey, t.Frequency, lang)
		r.Pattern = t.Pattern
		r.DocumentFrequency = t.DocumentFrequency
		r.Specificity = math.Round(t.Specificity*10000) / 10000
		r.InReference = t.InReferenceMemory
		r.Components = t.Components()
		rows = append(rows, r)
	}
	return rows
}

func newRow(term string, freq int, lang string) Row {
	return Row{
		Term:      term,
		Frequency: freq,
		Length:    utf8.RuneCountInString(term),
		WordCount: len(strings.Fields(term)),
		Language:  lang,
	}
}
