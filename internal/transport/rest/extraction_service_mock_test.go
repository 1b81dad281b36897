package rest

import (
	"context"
	"sync"

	"github.com/custodio78/termsuite-core/internal/domain"
	"github.com/custodio78/termsuite-core/internal/service/extraction"
	"github.com/google/uuid"
)

var _ extractionService = &extractionServiceMock{}

type extractionServiceMock struct {
	UploadCorpusFunc func(ctx context.Context, input extraction.UploadCorpusInput) (*extraction.UploadCorpusResult, error)
	StartFunc        func(ctx context.Context, req domain.ExtractionRequest) (domain.Job, error)
	StatusFunc       func(ctx context.Context, id uuid.UUID) (domain.Job, error)
	ResultPathFunc   func(ctx context.Context, id uuid.UUID) (string, error)

	calls struct {
		UploadCorpus []struct {
			Ctx   context.Context
			Input extraction.UploadCorpusInput
		}
		Start []struct {
			Ctx context.Context
			Req domain.ExtractionRequest
		}
		Status []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		ResultPath []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lockUploadCorpus sync.RWMutex
	lockStart        sync.RWMutex
	lockStatus       sync.RWMutex
	lockResultPath   sync.RWMutex
}

func (mock *extractionServiceMock) UploadCorpus(ctx context.Context, input extraction.UploadCorpusInput) (*extraction.UploadCorpusResult, error) {
	if mock.UploadCorpusFunc == nil {
		panic("extractionServiceMock.UploadCorpusFunc: method is nil but extractionService.UploadCorpus was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input extraction.UploadCorpusInput
	}{Ctx: ctx, Input: input}
	mock.lockUploadCorpus.Lock()
	mock.calls.UploadCorpus = append(mock.calls.UploadCorpus, callInfo)
	mock.lockUploadCorpus.Unlock()
	return mock.UploadCorpusFunc(ctx, input)
}

func (mock *extractionServiceMock) UploadCorpusCalls() []struct {
	Ctx   context.Context
	Input extraction.UploadCorpusInput
} {
	mock.lockUploadCorpus.RLock()
	calls := mock.calls.UploadCorpus
	mock.lockUploadCorpus.RUnlock()
	return calls
}

func (mock *extractionServiceMock) Start(ctx context.Context, req domain.ExtractionRequest) (domain.Job, error) {
	if mock.StartFunc == nil {
		panic("extractionServiceMock.StartFunc: method is nil but extractionService.Start was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Req domain.ExtractionRequest
	}{Ctx: ctx, Req: req}
	mock.lockStart.Lock()
	mock.calls.Start = append(mock.calls.Start, callInfo)
	mock.lockStart.Unlock()
	return mock.StartFunc(ctx, req)
}

func (mock *extractionServiceMock) StartCalls() []struct {
	Ctx context.Context
	Req domain.ExtractionRequest
} {
	mock.lockStart.RLock()
	calls := mock.calls.Start
	mock.lockStart.RUnlock()
	return calls
}

func (mock *extractionServiceMock) Status(ctx context.Context, id uuid.UUID) (domain.Job, error) {
	if mock.StatusFunc == nil {
		panic("extractionServiceMock.StatusFunc: method is nil but extractionService.Status was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockStatus.Lock()
	mock.calls.Status = append(mock.calls.Status, callInfo)
	mock.lockStatus.Unlock()
	return mock.StatusFunc(ctx, id)
}

func (mock *extractionServiceMock) StatusCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockStatus.RLock()
	calls := mock.calls.Status
	mock.lockStatus.RUnlock()
	return calls
}

func (mock *extractionServiceMock) ResultPath(ctx context.Context, id uuid.UUID) (string, error) {
	if mock.ResultPathFunc == nil {
		panic("extractionServiceMock.ResultPathFunc: method is nil but extractionService.ResultPath was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockResultPath.Lock()
	mock.calls.ResultPath = append(mock.calls.ResultPath, callInfo)
	mock.lockResultPath.Unlock()
	return mock.ResultPathFunc(ctx, id)
}

func (mock *extractionServiceMock) ResultPathCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockResultPath.RLock()
	calls := mock.calls.ResultPath
	mock.lockResultPath.RUnlock()
	return calls
}
