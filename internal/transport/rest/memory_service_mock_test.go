package rest

import (
	"context"
	"sync"

	"github.com/custodio78/termsuite-core/internal/domain"
	"github.com/custodio78/termsuite-core/internal/service/memory"
	"github.com/google/uuid"
)

var _ memoryService = &memoryServiceMock{}

type memoryServiceMock struct {
	UploadFunc          func(ctx context.Context, input memory.UploadInput) (*memory.UploadResult, error)
	ListFunc            func(ctx context.Context) ([]domain.ArtifactSummary, error)
	LanguagesFunc       func(ctx context.Context, id uuid.UUID) (*memory.LanguagesResult, error)
	ExtractLanguageFunc func(ctx context.Context, input memory.ExtractLanguageInput) (*memory.ExtractLanguageResult, error)
	ExportReportFunc    func(ctx context.Context, input memory.ExportInput) (*memory.Report, error)

	calls struct {
		Upload []struct {
			Ctx   context.Context
			Input memory.UploadInput
		}
		List []struct {
			Ctx context.Context
		}
		Languages []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		ExtractLanguage []struct {
			Ctx   context.Context
			Input memory.ExtractLanguageInput
		}
		ExportReport []struct {
			Ctx   context.Context
			Input memory.ExportInput
		}
	}
	lockUpload          sync.RWMutex
	lockList            sync.RWMutex
	lockLanguages       sync.RWMutex
	lockExtractLanguage sync.RWMutex
	lockExportReport    sync.RWMutex
}

func (mock *memoryServiceMock) Upload(ctx context.Context, input memory.UploadInput) (*memory.UploadResult, error) {
	if mock.UploadFunc == nil {
		panic("memoryServiceMock.UploadFunc: method is nil but memoryService.Upload was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input memory.UploadInput
	}{Ctx: ctx, Input: input}
	mock.lockUpload.Lock()
	mock.calls.Upload = append(mock.calls.Upload, callInfo)
	mock.lockUpload.Unlock()
	return mock.UploadFunc(ctx, input)
}

func (mock *memoryServiceMock) UploadCalls() []struct {
	Ctx   context.Context
	Input memory.UploadInput
} {
	mock.lockUpload.RLock()
	calls := mock.calls.Upload
	mock.lockUpload.RUnlock()
	return calls
}

func (mock *memoryServiceMock) List(ctx context.Context) ([]domain.ArtifactSummary, error) {
	if mock.ListFunc == nil {
		panic("memoryServiceMock.ListFunc: method is nil but memoryService.List was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx)
}

func (mock *memoryServiceMock) ListCalls() []struct {
	Ctx context.Context
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *memoryServiceMock) Languages(ctx context.Context, id uuid.UUID) (*memory.LanguagesResult, error) {
	if mock.LanguagesFunc == nil {
		panic("memoryServiceMock.LanguagesFunc: method is nil but memoryService.Languages was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockLanguages.Lock()
	mock.calls.Languages = append(mock.calls.Languages, callInfo)
	mock.lockLanguages.Unlock()
	return mock.LanguagesFunc(ctx, id)
}

func (mock *memoryServiceMock) LanguagesCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockLanguages.RLock()
	calls := mock.calls.Languages
	mock.lockLanguages.RUnlock()
	return calls
}

func (mock *memoryServiceMock) ExtractLanguage(ctx context.Context, input memory.ExtractLanguageInput) (*memory.ExtractLanguageResult, error) {
	if mock.ExtractLanguageFunc == nil {
		panic("memoryServiceMock.ExtractLanguageFunc: method is nil but memoryService.ExtractLanguage was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input memory.ExtractLanguageInput
	}{Ctx: ctx, Input: input}
	mock.lockExtractLanguage.Lock()
	mock.calls.ExtractLanguage = append(mock.calls.ExtractLanguage, callInfo)
	mock.lockExtractLanguage.Unlock()
	return mock.ExtractLanguageFunc(ctx, input)
}

func (mock *memoryServiceMock) ExtractLanguageCalls() []struct {
	Ctx   context.Context
	Input memory.ExtractLanguageInput
} {
	mock.lockExtractLanguage.RLock()
	calls := mock.calls.ExtractLanguage
	mock.lockExtractLanguage.RUnlock()
	return calls
}

func (mock *memoryServiceMock) ExportReport(ctx context.Context, input memory.ExportInput) (*memory.Report, error) {
	if mock.ExportReportFunc == nil {
		panic("memoryServiceMock.ExportReportFunc: method is nil but memoryService.ExportReport was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input memory.ExportInput
	}{Ctx: ctx, Input: input}
	mock.lockExportReport.Lock()
	mock.calls.ExportReport = append(mock.calls.ExportReport, callInfo)
	mock.lockExportReport.Unlock()
	return mock.ExportReportFunc(ctx, input)
}

func (mock *memoryServiceMock) ExportReportCalls() []struct {
	Ctx   context.Context
	Input memory.ExportInput
} {
	mock.lockExportReport.RLock()
	calls := mock.calls.ExportReport
	mock.lockExportReport.RUnlock()
	return calls
}
