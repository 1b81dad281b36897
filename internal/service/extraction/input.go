package extraction

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/custodio78/termsuite-core/internal/domain"
)

// DefaultMinFrequency applies when a request leaves min_frequency unset.
const DefaultMinFrequency = 2

// UploadCorpusInput holds an uploaded corpus: a single .txt file or a .zip
// archive of them.
type UploadCorpusInput struct {
	Filename string
	Body     io.Reader
}

func (i UploadCorpusInput) ext() string {
	return strings.ToLower(filepath.Ext(i.Filename))
}

// Validate checks all fields and collects all errors.
func (i UploadCorpusInput) Validate() error {
	var errs []domain.FieldError
	switch {
	case strings.TrimSpace(i.Filename) == "":
		errs = append(errs, domain.FieldError{Field: "file", Message: "required"})
	case i.ext() != ".txt" && i.ext() != ".zip":
		errs = append(errs, domain.FieldError{Field: "file", Message: "only .txt or .zip files are accepted"})
	}
	if i.Body == nil {
		errs = append(errs, domain.FieldError{Field: "file", Message: "empty body"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// validateRequest checks an extraction request and collects all errors.
func validateRequest(r domain.ExtractionRequest) error {
	var errs []domain.FieldError
	if r.CorpusID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "corpus_id", Message: "required"})
	}
	if !r.Language.IsValid() {
		errs = append(errs, domain.FieldError{Field: "language", Message: "must be one of en, es, fr, de, it, pt"})
	}
	if r.MinFrequency < 1 {
		errs = append(errs, domain.FieldError{Field: "min_frequency", Message: "must be >= 1"})
	}
	if r.MaxTerms != nil && *r.MaxTerms < 1 {
		errs = append(errs, domain.FieldError{Field: "max_terms", Message: "must be >= 1"})
	}
	if r.UseTMX && r.TMXID == nil {
		errs = append(errs, domain.FieldError{Field: "tmx_id", Message: "required when use_tmx is set"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
