package rest

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodio78/termsuite-core/internal/domain"
	"github.com/custodio78/termsuite-core/internal/report"
	"github.com/custodio78/termsuite-core/internal/service/memory"
)

//go:generate moq -out memory_service_mock_test.go -pkg rest . memoryService

// memoryService defines the translation-memory operations MemoryHandler needs.
type memoryService interface {
	Upload(ctx context.Context, input memory.UploadInput) (*memory.UploadResult, error)
	List(ctx context.Context) ([]domain.ArtifactSummary, error)
	Languages(ctx context.Context, id uuid.UUID) (*memory.LanguagesResult, error)
	ExtractLanguage(ctx context.Context, input memory.ExtractLanguageInput) (*memory.ExtractLanguageResult, error)
	ExportReport(ctx context.Context, input memory.ExportInput) (*memory.Report, error)
}

// ExportDefaults fill report parameters the caller leaves out.
type ExportDefaults struct {
	Format string
	TopN   int
}

// MemoryHandler serves the translation-memory endpoints.
type MemoryHandler struct {
	svc       memoryService
	log       *slog.Logger
	maxUpload int64
	defaults  ExportDefaults
}

// NewMemoryHandler creates a MemoryHandler. maxUpload bounds the request
// body of uploads; <= 0 disables the bound.
func NewMemoryHandler(svc memoryService, logger *slog.Logger, maxUpload int64, defaults ExportDefaults) *MemoryHandler {
	return &MemoryHandler{
		svc:       svc,
		log:       logger.With("handler", "memory"),
		maxUpload: maxUpload,
		defaults:  defaults,
	}
}

type artifactResponse struct {
	TMXID     string    `json:"tmx_id"`
	Language  *string   `json:"language"`
	Total     int       `json:"total"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Upload handles POST /api/upload-tmx?language=.
func (h *MemoryHandler) Upload(w http.ResponseWriter, r *http.Request) {
	file, header, ok := readUpload(w, r, h.maxUpload)
	if !ok {
		return
	}
	defer file.Close()

	result, err := h.svc.Upload(r.Context(), memory.UploadInput{
		Filename: header.Filename,
		Language: strings.TrimSpace(r.URL.Query().Get("language")),
		Body:     file,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// List handles GET /api/tmx.
func (h *MemoryHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := make([]artifactResponse, 0, len(items))
	for _, it := range items {
		resp = append(resp, artifactResponse{
			TMXID:     it.ID.String(),
			Language:  it.Language,
			Total:     it.Total,
			UpdatedAt: it.UpdatedAt,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// Languages handles GET /api/tmx-languages/{tmx_id}.
func (h *MemoryHandler) Languages(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r.PathValue("tmx_id"), "tmx_id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	result, err := h.svc.Languages(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ExtractLanguage handles POST /api/extract-tmx-language?tmx_id=&language=.
func (h *MemoryHandler) ExtractLanguage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	id, err := uuidParam(q.Get("tmx_id"), "tmx_id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	result, err := h.svc.ExtractLanguage(r.Context(), memory.ExtractLanguageInput{
		TMXID:    id,
		Language: strings.TrimSpace(q.Get("language")),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Export handles GET /api/export/tmx-excel/{tmx_id}.
func (h *MemoryHandler) Export(w http.ResponseWriter, r *http.Request) {
	input, err := h.exportInput(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	rep, err := h.svc.ExportReport(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	h.log.InfoContext(r.Context(), "report exported",
		slog.String("tmx_id", input.TMXID.String()),
		slog.String("filename", rep.Filename),
		slog.Int("rows", rep.Rows),
	)
	writeAttachment(w, rep.ContentType, rep.Filename, rep.Body)
}

// exportInput collects every query parameter error before failing.
func (h *MemoryHandler) exportInput(r *http.Request) (memory.ExportInput, error) {
	q := r.URL.Query()
	id, err := uuidParam(r.PathValue("tmx_id"), "tmx_id")
	if err != nil {
		return memory.ExportInput{}, err
	}

	var fieldErrs []domain.FieldError
	collect := func(err error) {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			fieldErrs = append(fieldErrs, verr.Errors...)
		}
	}

	opts := report.DefaultOptions()
	var perr error
	if opts.Filter.MinFrequency, perr = intParam(r, "min_frequency", 0); perr != nil {
		collect(perr)
	}
	if opts.Filter.MinWords, perr = intParam(r, "min_words", 0); perr != nil {
		collect(perr)
	}
	if opts.Filter.MaxWords, perr = intParam(r, "max_words", 0); perr != nil {
		collect(perr)
	}
	if opts.TopN, perr = intParam(r, "top_n", h.defaults.TopN); perr != nil {
		collect(perr)
	}
	if opts.Filter.ExcludeNumbers, perr = boolParam(r, "exclude_numbers"); perr != nil {
		collect(perr)
	}
	if opts.Strict, perr = boolParam(r, "strict_columns"); perr != nil {
		collect(perr)
	}
	includeTranslation, perr := boolParam(r, "include_translation")
	if perr != nil {
		collect(perr)
	}
	if len(fieldErrs) > 0 {
		return memory.ExportInput{}, domain.NewValidationErrors(fieldErrs)
	}

	opts.Filter.Contains = q.Get("contains")
	if v := q.Get("sort_by"); v != "" {
		opts.SortBy = report.SortKey(strings.ToLower(v))
	}
	if v := q.Get("order"); v != "" {
		opts.Order = report.Order(strings.ToLower(v))
	}
	opts.Columns = splitColumns(q["columns"])

	format := q.Get("format")
	if format == "" {
		format = h.defaults.Format
	}

	return memory.ExportInput{
		TMXID:              id,
		Format:             format,
		Options:            opts,
		IncludeTranslation: includeTranslation,
		SourceLanguage:     strings.TrimSpace(q.Get("source_language")),
	}, nil
}

// splitColumns accepts both repeated and comma-separated column parameters.
func splitColumns(values []string) []string {
	var cols []string
	for _, v := range values {
		for _, c := range strings.Split(v, ",") {
			if c = strings.TrimSpace(c); c != "" {
				cols = append(cols, c)
			}
		}
	}
	return cols
}

// readUpload extracts the "file" part of a multipart request. It writes the
// error response itself and reports whether the caller may proceed.
func readUpload(w http.ResponseWriter, r *http.Request, maxUpload int64) (multipart.File, *multipart.FileHeader, bool) {
	if maxUpload > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxUpload+multipartOverhead)
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, "file too large")
		case errors.Is(err, http.ErrMissingFile):
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Error:  "validation: file: required",
				Fields: []fieldError{{Field: "file", Message: "required"}},
			})
		default:
			writeError(w, http.StatusBadRequest, "invalid multipart body")
		}
		return nil, nil, false
	}
	return file, header, true
}

// multipartOverhead leaves room for part headers and boundaries.
const multipartOverhead = 1 << 20
