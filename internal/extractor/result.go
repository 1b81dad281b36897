package extractor

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tidwall/gjson"
)

// Result is the JSON document written by the extractor.
type Result struct {
	Terms []Term `json:"terms"`
}

// Term is one extracted term.
type Term struct {
	GroupingKey       string          `json:"groupingKey"`
	Pattern           string          `json:"pattern"`
	Frequency         int             `json:"frequency"`
	DocumentFrequency int             `json:"documentFrequency"`
	Specificity       float64         `json:"specificity"`
	Words             json.RawMessage `json:"words,omitempty"`
	InReferenceMemory bool            `json:"in_tmx"`
}

// Components renders the words field, which the extractor emits either as
// a string, a list of strings or a list of word objects.
func (t Term) Components() string {
	if len(t.Words) == 0 {
		return ""
	}
	w := gjson.ParseBytes(t.Words)
	if !w.IsArray() {
		return w.String()
	}
	var parts []string
	for _, item := range w.Array() {
		switch {
		case item.IsObject():
			for _, key := range []string{"lemma", "substring", "word", "text"} {
				if v := item.Get(key); v.Exists() {
					parts = append(parts, v.String())
					break
				}
			}
		default:
			parts = append(parts, item.String())
		}
	}
	return strings.Join(parts, " ")
}

// DecodeResult reads an extractor result document.
func DecodeResult(r io.Reader) (*Result, error) {
	var res Result
	if err := json.NewDecoder(r).Decode(&res); err != nil {
		return nil, fmt.Errorf("decode extractor result: %w", err)
	}
	return &res, nil
}

// ReadResult reads the result document at path.
func ReadResult(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open extractor result: %w", err)
	}
	defer f.Close()
	return DecodeResult(f)
}

// MarkReference flags terms whose grouping key appears, case-insensitively,
// in reference.
func MarkReference(terms []Term, reference []string) {
	set := make(map[string]struct{}, len(reference))
	for _, r := range reference {
		set[strings.ToLower(r)] = struct{}{}
	}
	for i := range terms {
		_, ok := set[strings.ToLower(terms[i].GroupingKey)]
		terms[i].InReferenceMemory = ok
	}
}
