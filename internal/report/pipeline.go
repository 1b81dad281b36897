package report

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/custodio78/termsuite-core/internal/domain"
	"github.com/custodio78/termsuite-core/internal/translation"
)

// TranslationErrorMarker replaces the translation of every row when the
// translation index could not be built.
const TranslationErrorMarker = "[error: translation unavailable]"

// SortKey selects the sort field.
type SortKey string

const (
	SortFrequency    SortKey = "frequency"
	SortAlphabetical SortKey = "alphabetical"
	SortLength       SortKey = "length"
	SortWordCount    SortKey = "word_count"
)

func (k SortKey) IsValid() bool {
	switch k {
	case SortFrequency, SortAlphabetical, SortLength, SortWordCount:
		return true
	}
	return false
}

// Order is the sort direction.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

func (o Order) IsValid() bool { return o == OrderAsc || o == OrderDesc }

// FilterOptions are AND-combined row predicates. Zero values disable a predicate.
type FilterOptions struct {
	MinFrequency   int
	MinWords       int
	MaxWords       int
	ExcludeNumbers bool
	Contains       string
}

// Options drive a full pipeline run.
type Options struct {
	Filter  FilterOptions
	SortBy  SortKey
	Order   Order
	TopN    int
	Columns []string
	Strict  bool
}

// DefaultOptions sorts by frequency, descending, with no filter.
func DefaultOptions() Options {
	return Options{SortBy: SortFrequency, Order: OrderDesc}
}

// Validate checks option ranges.
func (o Options) Validate() error {
	var errs []domain.FieldError
	if o.Filter.MinFrequency < 0 {
		errs = append(errs, domain.FieldError{Field: "min_frequency", Message: "must not be negative"})
	}
	if o.Filter.MinWords < 0 {
		errs = append(errs, domain.FieldError{Field: "min_words", Message: "must not be negative"})
	}
	if o.Filter.MaxWords < 0 {
		errs = append(errs, domain.FieldError{Field: "max_words", Message: "must not be negative"})
	}
	if o.Filter.MinWords > 0 && o.Filter.MaxWords > 0 && o.Filter.MinWords > o.Filter.MaxWords {
		errs = append(errs, domain.FieldError{Field: "max_words", Message: "must be >= min_words"})
	}
	if o.TopN < 0 {
		errs = append(errs, domain.FieldError{Field: "top_n", Message: "must not be negative"})
	}
	if o.SortBy != "" && !o.SortBy.IsValid() {
		errs = append(errs, domain.FieldError{Field: "sort_by", Message: fmt.Sprintf("unsupported value %q", o.SortBy)})
	}
	if o.Order != "" && !o.Order.IsValid() {
		errs = append(errs, domain.FieldError{Field: "order", Message: fmt.Sprintf("unsupported value %q", o.Order)})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// Filter keeps rows satisfying every enabled predicate, preserving order.
func Filter(rows []Row, f FilterOptions) []Row {
	contains := strings.ToLower(strings.TrimSpace(f.Contains))
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if f.MinFrequency > 0 && r.Frequency < f.MinFrequency {
			continue
		}
		if f.MinWords > 0 && r.WordCount < f.MinWords {
			continue
		}
		if f.MaxWords > 0 && r.WordCount > f.MaxWords {
			continue
		}
		if f.ExcludeNumbers && strings.IndexFunc(r.Term, unicode.IsDigit) >= 0 {
			continue
		}
		if contains != "" && !strings.Contains(strings.ToLower(r.Term), contains) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Sort orders rows in place. Equal keys keep their relative order in both
// directions.
func Sort(rows []Row, key SortKey, order Order) {
	compare := comparator(key)
	if order == OrderDesc {
		slices.SortStableFunc(rows, func(a, b Row) int { return compare(b, a) })
		return
	}
	slices.SortStableFunc(rows, compare)
}

func comparator(key SortKey) func(a, b Row) int {
	switch key {
	case SortAlphabetical:
		return func(a, b Row) int { return strings.Compare(strings.ToLower(a.Term), strings.ToLower(b.Term)) }
	case SortLength:
		return func(a, b Row) int { return cmp.Compare(a.Length, b.Length) }
	case SortWordCount:
		return func(a, b Row) int { return cmp.Compare(a.WordCount, b.WordCount) }
	default:
		return func(a, b Row) int { return cmp.Compare(a.Frequency, b.Frequency) }
	}
}

// Truncate keeps the first n rows. n <= 0 keeps all.
func Truncate(rows []Row, n int) []Row {
	if n <= 0 || n >= len(rows) {
		return rows
	}
	return rows[:n]
}

// Rank numbers rows from 1 in their current order.
func Rank(rows []Row) {
	for i := range rows {
		rows[i].Rank = i + 1
	}
}

// Resolver looks up the translation of a term.
type Resolver interface {
	Resolve(term string) (string, translation.MatchKind)
}

// Enrich fills translations from res. A non-nil indexErr marks every row
// with TranslationErrorMarker instead.
func Enrich(rows []Row, res Resolver, indexErr error) {
	for i := range rows {
		if indexErr != nil || res == nil {
			rows[i].Translation = TranslationErrorMarker
			rows[i].Match = translation.MatchError
			continue
		}
		rows[i].Translation, rows[i].Match = res.Resolve(rows[i].Term)
	}
}

// Table is a projected report ready for encoding.
type Table struct {
	Sheet   string
	Columns []Column
	Rows    []Row
}

// Enrichment carries the translation step of a run. A nil *Enrichment
// skips the step.
type Enrichment struct {
	Resolver Resolver
	Err      error
}

// Run applies filter, sort, truncate, rank, optional enrichment and
// projection. An empty result after filtering is domain.ErrEmptyResult.
func Run(rows []Row, layout Layout, opts Options, enrich *Enrichment) (Table, error) {
	if err := opts.Validate(); err != nil {
		return Table{}, err
	}
	cols, err := Project(layout, opts.Columns, opts.Strict)
	if err != nil {
		return Table{}, err
	}

	rows = Filter(rows, opts.Filter)
	if len(rows) == 0 {
		return Table{}, domain.ErrEmptyResult
	}

	sortBy, order := opts.SortBy, opts.Order
	if sortBy == "" {
		sortBy = SortFrequency
	}
	if order == "" {
		order = OrderDesc
	}
	Sort(rows, sortBy, order)
	rows = Truncate(rows, opts.TopN)
	Rank(rows)

	if enrich != nil {
		Enrich(rows, enrich.Resolver, enrich.Err)
	}

	return Table{Sheet: layout.Sheet, Columns: cols, Rows: rows}, nil
}
