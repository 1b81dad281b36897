package report

import (
	"strings"

	"github.com/custodio78/termsuite-core/internal/domain"
)

// Column is one projected report column.
type Column struct {
	Key     string
	Label   string
	Aliases []string
	Width   float64
	Value   func(Row) any
}

// Layout is the full, ordered column set of one report kind.
type Layout struct {
	Name    string
	Sheet   string
	Columns []Column
}

const (
	yes = "Sí"
	no  = "No"
)

var (
	colRank = Column{
		Key: "rank", Label: "Número", Aliases: []string{"Rank", "Number", "#"}, Width: 10,
		Value: func(r Row) any { return r.Rank },
	}
	colTerm = Column{
		Key: "term", Label: "Término", Aliases: []string{"Term"}, Width: 50,
		Value: func(r Row) any { return r.Term },
	}
	colFrequency = Column{
		Key: "frequency", Label: "Frecuencia", Aliases: []string{"Frequency", "Freq"}, Width: 12,
		Value: func(r Row) any { return r.Frequency },
	}
	colLength = Column{
		Key: "length", Label: "Longitud", Aliases: []string{"Length"}, Width: 12,
		Value: func(r Row) any { return r.Length },
	}
	colWords = Column{
		Key: "words", Label: "Palabras", Aliases: []string{"Words", "Word count"}, Width: 12,
		Value: func(r Row) any { return r.WordCount },
	}
	colLanguage = Column{
		Key: "language", Label: "Idioma", Aliases: []string{"Language", "Lang"}, Width: 12,
		Value: func(r Row) any { return r.Language },
	}
	colTranslation = Column{
		Key: "translation", Label: "Traducción", Aliases: []string{"Translation"}, Width: 50,
		Value: func(r Row) any { return r.Translation },
	}
	colMatch = Column{
		Key: "match", Label: "Coincidencia", Aliases: []string{"Match", "Match type"}, Width: 14,
		Value: func(r Row) any { return string(r.Match) },
	}
	colPattern = Column{
		Key: "pattern", Label: "Patrón", Aliases: []string{"Pattern"}, Width: 20,
		Value: func(r Row) any { return r.Pattern },
	}
	colDocFrequency = Column{
		Key: "document_frequency", Label: "Frec. Documentos", Aliases: []string{"Document frequency", "Doc frequency"}, Width: 18,
		Value: func(r Row) any { return r.DocumentFrequency },
	}
	colSpecificity = Column{
		Key: "specificity", Label: "Especificidad", Aliases: []string{"Specificity"}, Width: 15,
		Value: func(r Row) any { return r.Specificity },
	}
	colInReference = Column{
		Key: "in_tmx", Label: "En TMX", Aliases: []string{"In TMX", "In reference"}, Width: 10,
		Value: func(r Row) any {
			if r.InReference {
				return yes
			}
			return no
		},
	}
	colComponents = Column{
		Key: "components", Label: "Componentes", Aliases: []string{"Components"}, Width: 30,
		Value: func(r Row) any { return r.Components },
	}
)

// MemoryLayout is the column set of a translation-memory report.
// Translation columns are present only when translations are requested.
func MemoryLayout(withTranslation bool) Layout {
	cols := []Column{colRank, colTerm, colFrequency, colLength, colWords, colLanguage}
	if withTranslation {
		cols = append(cols, colTranslation, colMatch)
	}
	return Layout{Name: "memory", Sheet: "Términos TMX", Columns: cols}
}

// ExtractionLayout is the column set of a corpus extraction report.
func ExtractionLayout() Layout {
	return Layout{
		Name:  "extraction",
		Sheet: "Términos Extraídos",
		Columns: []Column{
			colRank, colTerm, colPattern, colFrequency, colDocFrequency,
			colSpecificity, colInReference, colComponents,
		},
	}
}

// Labels returns the header labels of cols.
func Labels(cols []Column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Label
	}
	return out
}

func (c Column) matches(name string) bool {
	if strings.EqualFold(name, c.Label) || strings.EqualFold(name, c.Key) {
		return true
	}
	for _, a := range c.Aliases {
		if strings.EqualFold(name, a) {
			return true
		}
	}
	return false
}

// Project selects the requested columns of l in request order. Unknown
// names are dropped; when none is known the full layout is returned. In
// strict mode any unknown name is a validation error.
func Project(l Layout, names []string, strict bool) ([]Column, error) {
	var (
		out     []Column
		unknown []string
		seen    = make(map[string]bool)
	)
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		col, ok := l.lookup(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		if seen[col.Key] {
			continue
		}
		seen[col.Key] = true
		out = append(out, col)
	}

	if strict && len(unknown) > 0 {
		return nil, domain.NewValidationError("columns", "unknown columns: "+strings.Join(unknown, ", "))
	}
	if len(out) == 0 {
		return l.Columns, nil
	}
	return out, nil
}

func (l Layout) lookup(name string) (Column, bool) {
	for _, c := range l.Columns {
		if c.matches(name) {
			return c, true
		}
	}
	return Column{}, false
}
