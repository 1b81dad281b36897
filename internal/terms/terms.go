// Package terms aggregates parsed translation-memory segments into term sets,
// frequency tables and the persisted artifact.
package terms

import (
	"slices"
	"time"

	"github.com/custodio78/termsuite-core/internal/domain"
	"github.com/custodio78/termsuite-core/internal/tmx"
)

// FrequencyTable maps a term to the number of segments carrying it.
type FrequencyTable map[string]int

// Sum returns the total number of counted occurrences.
func (f FrequencyTable) Sum() int {
	var n int
	for _, c := range f {
		n += c
	}
	return n
}

// TermSet returns the distinct segment texts of doc for lang, sorted.
// An empty lang selects every variant.
func TermSet(doc *tmx.Document, lang string) []string {
	return sortedKeys(Frequencies(doc, lang))
}

// Frequencies counts every matching segment occurrence of doc for lang.
func Frequencies(doc *tmx.Document, lang string) FrequencyTable {
	freq := make(FrequencyTable)
	for _, s := range doc.Segments(lang) {
		freq[s.Text]++
	}
	return freq
}

// BuildArtifact produces the artifact for a freshly parsed document.
func BuildArtifact(doc *tmx.Document, lang string, now time.Time) domain.Artifact {
	a := domain.Artifact{
		AvailableLanguages: doc.Languages(),
		CreatedAt:          now,
	}
	apply(&a, doc, lang, now)
	return a
}

// Reextract rescopes a stored artifact to lang in place. Available languages
// are kept as recorded on the first parse.
func Reextract(a *domain.Artifact, doc *tmx.Document, lang string, now time.Time) {
	apply(a, doc, lang, now)
	a.Legacy = false
	if len(a.AvailableLanguages) == 0 {
		a.AvailableLanguages = doc.Languages()
	}
}

func apply(a *domain.Artifact, doc *tmx.Document, lang string, now time.Time) {
	freq := Frequencies(doc, lang)
	a.Language = lang
	a.Terms = sortedKeys(freq)
	a.Frequencies = freq
	a.Total = len(a.Terms)
	a.TotalOccurrences = freq.Sum()
	a.UpdatedAt = now
}

func sortedKeys(freq FrequencyTable) []string {
	out := make([]string, 0, len(freq))
	for term := range freq {
		out = append(out, term)
	}
	slices.Sort(out)
	return out
}
