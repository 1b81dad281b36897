package domain

import (
	"time"

	"github.com/google/uuid"
)

// JobStatus is the lifecycle state of an extraction job.
// PENDING → PROCESSING → COMPLETED | FAILED.
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

func (s JobStatus) String() string { return string(s) }

func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusPending, JobStatusProcessing, JobStatusCompleted, JobStatusFailed:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is allowed.
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// CanTransitionTo reports whether next is a legal successor of s.
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	switch s {
	case JobStatusPending:
		return next == JobStatusProcessing || next == JobStatusFailed
	case JobStatusProcessing:
		return next == JobStatusProcessing || next == JobStatusCompleted || next == JobStatusFailed
	}
	return false
}

// CorpusLanguage is a language the delegated extractor supports.
type CorpusLanguage string

const (
	CorpusLanguageEN CorpusLanguage = "en"
	CorpusLanguageES CorpusLanguage = "es"
	CorpusLanguageFR CorpusLanguage = "fr"
	CorpusLanguageDE CorpusLanguage = "de"
	CorpusLanguageIT CorpusLanguage = "it"
	CorpusLanguagePT CorpusLanguage = "pt"
)

func (l CorpusLanguage) String() string { return string(l) }

func (l CorpusLanguage) IsValid() bool {
	switch l {
	case CorpusLanguageEN, CorpusLanguageES, CorpusLanguageFR,
		CorpusLanguageDE, CorpusLanguageIT, CorpusLanguagePT:
		return true
	}
	return false
}

// ExtractionRequest describes a corpus extraction job.
type ExtractionRequest struct {
	CorpusID     uuid.UUID      `json:"corpus_id"`
	Language     CorpusLanguage `json:"language"`
	MinFrequency int            `json:"min_frequency"`
	MaxTerms     *int           `json:"max_terms,omitempty"`
	UseTMX       bool           `json:"use_tmx"`
	TMXID        *uuid.UUID     `json:"tmx_id,omitempty"`
}

// Job is the status record of one extraction run.
type Job struct {
	ID         uuid.UUID         `json:"job_id"`
	Status     JobStatus         `json:"status"`
	Progress   int               `json:"progress"`
	Message    string            `json:"message"`
	ResultFile string            `json:"result_file,omitempty"`
	Error      string            `json:"error,omitempty"`
	Request    ExtractionRequest `json:"request"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}
