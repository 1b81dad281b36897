// Package translation resolves report terms against source/target pairs
// taken from a translation memory.
package translation

import (
	"strings"

	"github.com/custodio78/termsuite-core/internal/tmx"
)

// MatchKind tells how a translation was found.
type MatchKind string

const (
	MatchExact   MatchKind = "exact"
	MatchPartial MatchKind = "partial"
	MatchNone    MatchKind = "none"
	// MatchError marks a row whose lookup could not run.
	MatchError   MatchKind = "error"
)

func (k MatchKind) String() string { return string(k) }

type entry struct {
	source      string
	target      string
	lowerSource string
}

// Index answers translation lookups for one export.
type Index struct {
	exact   map[string]string
	entries []entry
}

// NewIndex builds an index from pairs. When two pairs share a lowercased
// source, the later one wins the exact lookup; both stay in the substring
// scan in insertion order.
func NewIndex(pairs []tmx.Pair) *Index {
	idx := &Index{
		exact:   make(map[string]string, len(pairs)),
		entries: make([]entry, 0, len(pairs)),
	}
	for _, p := range pairs {
		lower := strings.ToLower(p.Source)
		idx.exact[lower] = p.Target
		idx.entries = append(idx.entries, entry{
			source:      p.Source,
			target:      p.Target,
			lowerSource: lower,
		})
	}
	return idx
}

// Len returns the number of indexed pairs.
func (idx *Index) Len() int { return len(idx.entries) }

// Resolve looks term up case-insensitively: an exact source match first,
// then the first pair, in insertion order, whose source contains term.
func (idx *Index) Resolve(term string) (string, MatchKind) {
	lower := strings.ToLower(term)
	if lower == "" {
		return "", MatchNone
	}
	if target, ok := idx.exact[lower]; ok {
		return target, MatchExact
	}
	for _, e := range idx.entries {
		if strings.Contains(e.lowerSource, lower) {
			return e.target, MatchPartial
		}
	}
	return "", MatchNone
}
