package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// UnknownLanguage labels rows of an artifact that was built without a target language.
const UnknownLanguage = "unknown"

// Artifact is the persisted intermediate produced by parsing a translation memory.
// Re-extracting for another language replaces Language, Terms, Frequencies, Total
// and TotalOccurrences; AvailableLanguages is kept from the first parse.
type Artifact struct {
	ID                 uuid.UUID
	Language           string // "" when no language was requested
	Terms              []string
	Frequencies        map[string]int
	Total              int
	TotalOccurrences   int
	AvailableLanguages []string
	SourceFile         string
	Checksum           string
	Legacy             bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// LanguageLabel returns the language shown in reports.
func (a Artifact) LanguageLabel() string {
	if a.Language == "" {
		return UnknownLanguage
	}
	return a.Language
}

// Frequency returns the stored count for term, defaulting to 1 when the
// artifact carries no count for it.
func (a Artifact) Frequency(term string) int {
	if n, ok := a.Frequencies[term]; ok {
		return n
	}
	return 1
}

// artifactPayload is the current on-disk shape.
type artifactPayload struct {
	Language           *string        `json:"language"`
	Terms              []string       `json:"terms"`
	Frequencies        map[string]int `json:"frequencies"`
	Total              int            `json:"total"`
	TotalOccurrences   int            `json:"total_occurrences"`
	AvailableLanguages []string       `json:"available_languages"`
	SourceFile         string         `json:"source_file,omitempty"`
	Checksum           string         `json:"checksum,omitempty"`
	CreatedAt          *time.Time     `json:"created_at,omitempty"`
	UpdatedAt          *time.Time     `json:"updated_at,omitempty"`
}

// EncodeArtifact serializes an artifact in the current shape. ID is the
// storage key and is not part of the payload.
func EncodeArtifact(a Artifact) ([]byte, error) {
	p := artifactPayload{
		Terms:              a.Terms,
		Frequencies:        a.Frequencies,
		Total:              a.Total,
		TotalOccurrences:   a.TotalOccurrences,
		AvailableLanguages: a.AvailableLanguages,
		SourceFile:         a.SourceFile,
		Checksum:           a.Checksum,
	}
	if a.Language != "" {
		lang := a.Language
		p.Language = &lang
	}
	if p.Terms == nil {
		p.Terms = []string{}
	}
	if p.Frequencies == nil {
		p.Frequencies = map[string]int{}
	}
	if p.AvailableLanguages == nil {
		p.AvailableLanguages = []string{}
	}
	if !a.CreatedAt.IsZero() {
		p.CreatedAt = &a.CreatedAt
	}
	if !a.UpdatedAt.IsZero() {
		p.UpdatedAt = &a.UpdatedAt
	}
	return json.MarshalIndent(p, "", "  ")
}

// DecodeArtifact normalizes both stored shapes into an Artifact: the legacy
// shape is a bare JSON array of terms, the current one an object.
func DecodeArtifact(raw []byte) (Artifact, error) {
	if !gjson.ValidBytes(raw) {
		return Artifact{}, errors.New("decode artifact: invalid JSON")
	}

	doc := gjson.ParseBytes(raw)
	switch {
	case doc.IsArray():
		return decodeLegacyArtifact(raw)
	case doc.IsObject():
		return decodeCurrentArtifact(raw)
	default:
		return Artifact{}, fmt.Errorf("decode artifact: unexpected JSON %s", doc.Type)
	}
}

func decodeLegacyArtifact(raw []byte) (Artifact, error) {
	var terms []string
	if err := json.Unmarshal(raw, &terms); err != nil {
		return Artifact{}, fmt.Errorf("decode legacy artifact: %w", err)
	}
	return Artifact{
		Terms:              terms,
		Frequencies:        map[string]int{},
		Total:              len(terms),
		AvailableLanguages: []string{},
		Legacy:             true,
	}, nil
}

func decodeCurrentArtifact(raw []byte) (Artifact, error) {
	var p artifactPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return Artifact{}, fmt.Errorf("decode artifact: %w", err)
	}

	a := Artifact{
		Terms:              p.Terms,
		Frequencies:        p.Frequencies,
		Total:              p.Total,
		TotalOccurrences:   p.TotalOccurrences,
		AvailableLanguages: p.AvailableLanguages,
		SourceFile:         p.SourceFile,
		Checksum:           p.Checksum,
	}
	if p.Language != nil {
		a.Language = *p.Language
	}
	if a.Frequencies == nil {
		a.Frequencies = map[string]int{}
	}
	if a.AvailableLanguages == nil {
		a.AvailableLanguages = []string{}
	}
	if a.Total == 0 {
		a.Total = len(a.Terms)
	}
	if p.CreatedAt != nil {
		a.CreatedAt = *p.CreatedAt
	}
	if p.UpdatedAt != nil {
		a.UpdatedAt = *p.UpdatedAt
	}
	return a, nil
}

// ArtifactSummary is the listing view of a stored artifact.
type ArtifactSummary struct {
	ID        uuid.UUID `db:"id"`
	Language  *string   `db:"language"`
	Total     int       `db:"total"`
	UpdatedAt time.Time `db:"updated_at"`
}
