package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/custodio78/termsuite-core/internal/domain"
	"github.com/custodio78/termsuite-core/internal/report/export"
	"github.com/custodio78/termsuite-core/internal/service/extraction"
)

//go:generate moq -out extraction_service_mock_test.go -pkg rest . extractionService

// extractionService defines the corpus and job operations ExtractionHandler needs.
type extractionService interface {
	UploadCorpus(ctx context.Context, input extraction.UploadCorpusInput) (*extraction.UploadCorpusResult, error)
	Start(ctx context.Context, req domain.ExtractionRequest) (domain.Job, error)
	Status(ctx context.Context, id uuid.UUID) (domain.Job, error)
	ResultPath(ctx context.Context, id uuid.UUID) (string, error)
}

// ExtractionHandler serves corpus upload, extraction jobs and their reports.
type ExtractionHandler struct {
	svc       extractionService
	log       *slog.Logger
	maxUpload int64
}

// NewExtractionHandler creates an ExtractionHandler.
func NewExtractionHandler(svc extractionService, logger *slog.Logger, maxUpload int64) *ExtractionHandler {
	return &ExtractionHandler{svc: svc, log: logger.With("handler", "extraction"), maxUpload: maxUpload}
}

type extractRequest struct {
	CorpusID     string     `json:"corpus_id"`
	Language     string     `json:"language"`
	MinFrequency *int       `json:"min_frequency"`
	MaxTerms     *int       `json:"max_terms"`
	UseTMX       bool       `json:"use_tmx"`
	TMXID        *uuid.UUID `json:"tmx_id"`
}

type extractResponse struct {
	JobID   string           `json:"job_id"`
	Status  domain.JobStatus `json:"status"`
	Message string           `json:"message"`
}

// maxExtractBody bounds the JSON body of POST /api/extract.
const maxExtractBody = 64 << 10

// UploadCorpus handles POST /api/upload-corpus.
func (h *ExtractionHandler) UploadCorpus(w http.ResponseWriter, r *http.Request) {
	file, header, ok := readUpload(w, r, h.maxUpload)
	if !ok {
		return
	}
	defer file.Close()

	result, err := h.svc.UploadCorpus(r.Context(), extraction.UploadCorpusInput{
		Filename: header.Filename,
		Body:     file,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Extract handles POST /api/extract.
func (h *ExtractionHandler) Extract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxExtractBody))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	corpusID, err := uuidParam(strings.TrimSpace(req.CorpusID), "corpus_id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	minFreq := extraction.DefaultMinFrequency
	if req.MinFrequency != nil {
		minFreq = *req.MinFrequency
	}

	job, err := h.svc.Start(r.Context(), domain.ExtractionRequest{
		CorpusID:     corpusID,
		Language:     domain.CorpusLanguage(strings.ToLower(strings.TrimSpace(req.Language))),
		MinFrequency: minFreq,
		MaxTerms:     req.MaxTerms,
		UseTMX:       req.UseTMX,
		TMXID:        req.TMXID,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, extractResponse{
		JobID:   job.ID.String(),
		Status:  job.Status,
		Message: "Extracción iniciada",
	})
}

// Status handles GET /api/status/{job_id}.
func (h *ExtractionHandler) Status(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r.PathValue("job_id"), "job_id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	job, err := h.svc.Status(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// Export handles GET /api/export/excel/{job_id}. Only completed jobs have a
// report.
func (h *ExtractionHandler) Export(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r.PathValue("job_id"), "job_id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	path, err := h.svc.ResultPath(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.Header().Set("Content-Type", export.FormatXLSX.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="terms_%s.xlsx"`, id))
	http.ServeFile(w, r, path)
}
