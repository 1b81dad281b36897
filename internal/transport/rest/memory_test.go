package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodio78/termsuite-core/internal/domain"
	"github.com/custodio78/termsuite-core/internal/report"
	"github.com/custodio78/termsuite-core/internal/service/memory"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newMemoryHandler(svc memoryService) *MemoryHandler {
	return NewMemoryHandler(svc, testLogger(), 1<<20, ExportDefaults{Format: "xlsx"})
}

// multipartRequest builds a request with a single "file" part.
func multipartRequest(t *testing.T, target, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestMemoryHandler_Upload(t *testing.T) {
	t.Parallel()

	fileID := uuid.New()
	lang := "es"
	var gotBody string
	svc := &memoryServiceMock{
		UploadFunc: func(_ context.Context, input memory.UploadInput) (*memory.UploadResult, error) {
			b, err := io.ReadAll(input.Body)
			require.NoError(t, err)
			gotBody = string(b)
			return &memory.UploadResult{FileID: fileID, Filename: input.Filename, Language: &lang, Total: 3}, nil
		},
	}

	rec := httptest.NewRecorder()
	newMemoryHandler(svc).Upload(rec, multipartRequest(t, "/api/upload-tmx?language=es", "glossary.tmx", []byte("<tmx/>")))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, svc.UploadCalls(), 1)
	call := svc.UploadCalls()[0].Input
	assert.Equal(t, "glossary.tmx", call.Filename)
	assert.Equal(t, "es", call.Language)
	assert.Equal(t, "<tmx/>", gotBody)

	var resp memory.UploadResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, fileID, resp.FileID)
	assert.Equal(t, 3, resp.Total)
}

func TestMemoryHandler_Upload_MissingFile(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("language", "en"))
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/api/upload-tmx", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	svc := &memoryServiceMock{}
	rec := httptest.NewRecorder()
	newMemoryHandler(svc).Upload(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeError(t, rec)
	require.Len(t, resp.Fields, 1)
	assert.Equal(t, "file", resp.Fields[0].Field)
	assert.Empty(t, svc.UploadCalls())
}

func TestMemoryHandler_Upload_NotMultipart(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/api/upload-tmx", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	newMemoryHandler(&memoryServiceMock{}).Upload(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMemoryHandler_Upload_BodyOverLimit(t *testing.T) {
	t.Parallel()

	svc := &memoryServiceMock{}
	h := NewMemoryHandler(svc, testLogger(), 16, ExportDefaults{})
	big := bytes.Repeat([]byte("a"), multipartOverhead+1024)

	rec := httptest.NewRecorder()
	h.Upload(rec, multipartRequest(t, "/api/upload-tmx", "big.tmx", big))

	assert.GreaterOrEqual(t, rec.Code, 400)
	assert.Less(t, rec.Code, 500)
	assert.Empty(t, svc.UploadCalls())
}

func TestMemoryHandler_Upload_ServiceErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"parse", &domain.ParseError{Path: "x.tmx", Err: io.ErrUnexpectedEOF}, http.StatusBadRequest},
		{"validation", domain.NewValidationError("file", "only .tmx files are accepted"), http.StatusBadRequest},
		{"internal", fmt.Errorf("disk full"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &memoryServiceMock{
				UploadFunc: func(context.Context, memory.UploadInput) (*memory.UploadResult, error) {
					return nil, tt.err
				},
			}
			rec := httptest.NewRecorder()
			newMemoryHandler(svc).Upload(rec, multipartRequest(t, "/api/upload-tmx", "a.tmx", []byte("x")))

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusInternalServerError {
				assert.Equal(t, "internal server error", decodeError(t, rec).Error)
			}
		})
	}
}

func TestMemoryHandler_List(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	lang := "fr"
	updated := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	svc := &memoryServiceMock{
		ListFunc: func(context.Context) ([]domain.ArtifactSummary, error) {
			return []domain.ArtifactSummary{{ID: id, Language: &lang, Total: 7, UpdatedAt: updated}}, nil
		},
	}

	rec := httptest.NewRecorder()
	newMemoryHandler(svc).List(rec, httptest.NewRequest(http.MethodGet, "/api/tmx", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, fmt.Sprintf(`[{"tmx_id":%q,"language":"fr","total":7,"updated_at":"2026-01-02T03:04:05Z"}]`, id), rec.Body.String())
}

func TestMemoryHandler_List_Empty(t *testing.T) {
	t.Parallel()

	svc := &memoryServiceMock{
		ListFunc: func(context.Context) ([]domain.ArtifactSummary, error) { return nil, nil },
	}

	rec := httptest.NewRecorder()
	newMemoryHandler(svc).List(rec, httptest.NewRequest(http.MethodGet, "/api/tmx", nil))

	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestMemoryHandler_Languages(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	svc := &memoryServiceMock{
		LanguagesFunc: func(_ context.Context, got uuid.UUID) (*memory.LanguagesResult, error) {
			if got != id {
				return nil, domain.ErrNotFound
			}
			return &memory.LanguagesResult{TMXID: id, AvailableLanguages: []string{"en", "es"}}, nil
		},
	}
	h := newMemoryHandler(svc)

	tests := []struct {
		name   string
		pathID string
		want   int
	}{
		{"found", id.String(), http.StatusOK},
		{"unknown", uuid.NewString(), http.StatusNotFound},
		{"malformed", "not-a-uuid", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/api/tmx-languages/"+tt.pathID, nil)
			req.SetPathValue("tmx_id", tt.pathID)
			rec := httptest.NewRecorder()

			h.Languages(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestMemoryHandler_ExtractLanguage(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	svc := &memoryServiceMock{
		ExtractLanguageFunc: func(_ context.Context, input memory.ExtractLanguageInput) (*memory.ExtractLanguageResult, error) {
			return &memory.ExtractLanguageResult{TMXID: input.TMXID, Language: input.Language, Total: 2}, nil
		},
	}

	rec := httptest.NewRecorder()
	target := fmt.Sprintf("/api/extract-tmx-language?tmx_id=%s&language=%%20de%%20", id)
	newMemoryHandler(svc).ExtractLanguage(rec, httptest.NewRequest(http.MethodPost, target, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, svc.ExtractLanguageCalls(), 1)
	assert.Equal(t, memory.ExtractLanguageInput{TMXID: id, Language: "de"}, svc.ExtractLanguageCalls()[0].Input)
}

func TestMemoryHandler_ExtractLanguage_MissingID(t *testing.T) {
	t.Parallel()

	svc := &memoryServiceMock{}
	rec := httptest.NewRecorder()
	newMemoryHandler(svc).ExtractLanguage(rec, httptest.NewRequest(http.MethodPost, "/api/extract-tmx-language?language=de", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "tmx_id", decodeError(t, rec).Fields[0].Field)
	assert.Empty(t, svc.ExtractLanguageCalls())
}

func exportRequest(id uuid.UUID, query string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/export/tmx-excel/"+id.String()+"?"+query, nil)
	req.SetPathValue("tmx_id", id.String())
	return req
}

func TestMemoryHandler_Export_ParsesQuery(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	svc := &memoryServiceMock{
		ExportReportFunc: func(context.Context, memory.ExportInput) (*memory.Report, error) {
			return &memory.Report{
				Filename:    "terminos_tmx_es.csv",
				ContentType: "text/csv; charset=utf-8",
				Body:        []byte("a,b\n"),
				Rows:        1,
			}, nil
		},
	}

	query := "min_frequency=2&top_n=5&min_words=1&max_words=3&sort_by=Alphabetical&order=asc" +
		"&format=csv&exclude_numbers=true&contains=file&include_translation=1&source_language=en" +
		"&columns=term,%20frequency&columns=translation&strict_columns=true"
	rec := httptest.NewRecorder()
	newMemoryHandler(svc).Export(rec, exportRequest(id, query))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename=terminos_tmx_es.csv`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "a,b\n", rec.Body.String())

	require.Len(t, svc.ExportReportCalls(), 1)
	got := svc.ExportReportCalls()[0].Input
	assert.Equal(t, id, got.TMXID)
	assert.Equal(t, "csv", got.Format)
	assert.True(t, got.IncludeTranslation)
	assert.Equal(t, "en", got.SourceLanguage)
	assert.Equal(t, report.Options{
		Filter: report.FilterOptions{
			MinFrequency:   2,
			MinWords:       1,
			MaxWords:       3,
			ExcludeNumbers: true,
			Contains:       "file",
		},
		SortBy:  report.SortAlphabetical,
		Order:   report.OrderAsc,
		TopN:    5,
		Columns: []string{"term", "frequency", "translation"},
		Strict:  true,
	}, got.Options)
}

func TestMemoryHandler_Export_Defaults(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	svc := &memoryServiceMock{
		ExportReportFunc: func(context.Context, memory.ExportInput) (*memory.Report, error) {
			return &memory.Report{Filename: "r.xlsx", ContentType: "application/octet-stream"}, nil
		},
	}
	h := NewMemoryHandler(svc, testLogger(), 0, ExportDefaults{Format: "json", TopN: 50})

	rec := httptest.NewRecorder()
	h.Export(rec, exportRequest(id, ""))

	require.Equal(t, http.StatusOK, rec.Code)
	got := svc.ExportReportCalls()[0].Input
	assert.Equal(t, "json", got.Format)
	assert.Equal(t, 50, got.Options.TopN)
	assert.Equal(t, report.SortFrequency, got.Options.SortBy)
	assert.Equal(t, report.OrderDesc, got.Options.Order)
	assert.False(t, got.IncludeTranslation)
}

func TestMemoryHandler_Export_InvalidQueryCollectsErrors(t *testing.T) {
	t.Parallel()

	svc := &memoryServiceMock{}
	rec := httptest.NewRecorder()
	newMemoryHandler(svc).Export(rec, exportRequest(uuid.New(), "min_frequency=lots&top_n=x&exclude_numbers=maybe"))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeError(t, rec)
	fields := make([]string, 0, len(resp.Fields))
	for _, f := range resp.Fields {
		fields = append(fields, f.Field)
	}
	assert.ElementsMatch(t, []string{"min_frequency", "top_n", "exclude_numbers"}, fields)
	assert.Empty(t, svc.ExportReportCalls())
}

func TestMemoryHandler_Export_ErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"empty result", domain.ErrEmptyResult, http.StatusUnprocessableEntity},
		{"not found", fmt.Errorf("artifact: %w", domain.ErrNotFound), http.StatusNotFound},
		{"unknown column", domain.NewValidationError("columns", `unknown column "x"`), http.StatusBadRequest},
		{"conflict", domain.ErrConflict, http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &memoryServiceMock{
				ExportReportFunc: func(context.Context, memory.ExportInput) (*memory.Report, error) {
					return nil, tt.err
				},
			}
			rec := httptest.NewRecorder()
			newMemoryHandler(svc).Export(rec, exportRequest(uuid.New(), ""))

			assert.Equal(t, tt.want, rec.Code)
			assert.NotEmpty(t, decodeError(t, rec).Error)
		})
	}
}

func TestSplitColumns(t *testing.T) {
	t.Parallel()

	assert.Nil(t, splitColumns(nil))
	assert.Nil(t, splitColumns([]string{" , "}))
	assert.Equal(t, []string{"a", "b", "c"}, splitColumns([]string{"a, b", "c"}))
}
