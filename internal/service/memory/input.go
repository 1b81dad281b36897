package memory

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/custodio78/termsuite-core/internal/domain"
	"github.com/custodio78/termsuite-core/internal/report"
)

// UploadInput holds an uploaded translation memory.
type UploadInput struct {
	Filename string
	Language string
	Body     io.Reader
}

// Validate checks all fields and collects all errors.
func (i UploadInput) Validate() error {
	var errs []domain.FieldError
	if strings.TrimSpace(i.Filename) == "" {
		errs = append(errs, domain.FieldError{Field: "file", Message: "required"})
	} else if !strings.EqualFold(filepath.Ext(i.Filename), ".tmx") {
		errs = append(errs, domain.FieldError{Field: "file", Message: "only .tmx files are accepted"})
	}
	if i.Body == nil {
		errs = append(errs, domain.FieldError{Field: "file", Message: "empty body"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ExtractLanguageInput selects the language an artifact is rescoped to.
type ExtractLanguageInput struct {
	TMXID    uuid.UUID
	Language string
}

// Validate checks all fields and collects all errors.
func (i ExtractLanguageInput) Validate() error {
	var errs []domain.FieldError
	if i.TMXID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "tmx_id", Message: "required"})
	}
	if strings.TrimSpace(i.Language) == "" {
		errs = append(errs, domain.FieldError{Field: "language", Message: "required"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ExportInput describes a report over a stored artifact.
type ExportInput struct {
	TMXID   uuid.UUID
	Format  string
	Options report.Options

	// IncludeTranslation adds translation and match columns resolved from
	// the source document. SourceLanguage defaults to the artifact language.
	IncludeTranslation bool
	SourceLanguage     string
}

// Validate checks all fields and collects all errors.
func (i ExportInput) Validate() error {
	if i.TMXID == uuid.Nil {
		return domain.NewValidationError("tmx_id", "required")
	}
	return i.Options.Validate()
}
