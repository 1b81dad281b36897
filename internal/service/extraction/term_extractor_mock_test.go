package extraction

import (
	"context"
	"sync"

	"github.com/custodio78/termsuite-core/internal/extractor"
)

var _ termExtractor = &termExtractorMock{}

type termExtractorMock struct {
	RunFunc func(ctx context.Context, req extractor.Request) (*extractor.Result, error)

	calls struct {
		Run []struct {
			Ctx context.Context
			Req extractor.Request
		}
	}
	lockRun sync.RWMutex
}

func (mock *termExtractorMock) Run(ctx context.Context, req extractor.Request) (*extractor.Result, error) {
	if mock.RunFunc == nil {
		panic("termExtractorMock.RunFunc: method is nil but termExtractor.Run was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Req extractor.Request
	}{Ctx: ctx, Req: req}
	mock.lockRun.Lock()
	mock.calls.Run = append(mock.calls.Run, callInfo)
	mock.lockRun.Unlock()
	return mock.RunFunc(ctx, req)
}

func (mock *termExtractorMock) RunCalls() []struct {
	Ctx context.Context
	Req extractor.Request
} {
	mock.lockRun.RLock()
	calls := mock.calls.Run
	mock.lockRun.RUnlock()
	return calls
}
