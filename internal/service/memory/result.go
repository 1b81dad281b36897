package memory

import "github.com/google/uuid"

// UploadResult describes a stored translation memory.
type UploadResult struct {
	FileID   uuid.UUID `json:"file_id"`
	Filename string    `json:"filename"`
	Size     int64     `json:"size"`
	Checksum string    `json:"checksum"`
	Language *string   `json:"language"`
	Total    int       `json:"total"`
	Message  string    `json:"message"`
}

// LanguagesResult lists the languages of a stored translation memory.
type LanguagesResult struct {
	TMXID              uuid.UUID `json:"tmx_id"`
	AvailableLanguages []string  `json:"available_languages"`
	CurrentLanguage    *string   `json:"current_language"`
	TotalTerms         int       `json:"total_terms"`
	TotalOccurrences   int       `json:"total_occurrences"`
}

// ExtractLanguageResult reports a rescoped artifact.
type ExtractLanguageResult struct {
	TMXID            uuid.UUID `json:"tmx_id"`
	Language         string    `json:"language"`
	Total            int       `json:"total"`
	TotalOccurrences int       `json:"total_occurrences"`
	Message          string    `json:"message"`
}

// Report is an encoded export.
type Report struct {
	Filename    string
	ContentType string
	Body        []byte
	Rows        int
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
