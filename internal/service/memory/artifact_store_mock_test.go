package memory

import (
	"context"
	"sync"

	"github.com/custodio78/termsuite-core/internal/domain"
	"github.com/google/uuid"
)

var _ artifactStore = &artifactStoreMock{}

type artifactStoreMock struct {
	GetFunc    func(ctx context.Context, id uuid.UUID) (domain.Artifact, error)
	PutFunc    func(ctx context.Context, a domain.Artifact) error
	UpdateFunc func(ctx context.Context, id uuid.UUID, fn func(*domain.Artifact) error) (domain.Artifact, error)
	ListFunc   func(ctx context.Context) ([]domain.ArtifactSummary, error)

	calls struct {
		Get []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		Put []struct {
			Ctx context.Context
			A   domain.Artifact
		}
		Update []struct {
			Ctx context.Context
			ID  uuid.UUID
			Fn  func(*domain.Artifact) error
		}
		List []struct {
			Ctx context.Context
		}
	}
	lockGet    sync.RWMutex
	lockPut    sync.RWMutex
	lockUpdate sync.RWMutex
	lockList   sync.RWMutex
}

func (mock *artifactStoreMock) Get(ctx context.Context, id uuid.UUID) (domain.Artifact, error) {
	if mock.GetFunc == nil {
		panic("artifactStoreMock.GetFunc: method is nil but artifactStore.Get was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, id)
}

func (mock *artifactStoreMock) GetCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *artifactStoreMock) Put(ctx context.Context, a domain.Artifact) error {
	if mock.PutFunc == nil {
		panic("artifactStoreMock.PutFunc: method is nil but artifactStore.Put was just called")
	}
	callInfo := struct {
		Ctx context.Context
		A   domain.Artifact
	}{Ctx: ctx, A: a}
	mock.lockPut.Lock()
	mock.calls.Put = append(mock.calls.Put, callInfo)
	mock.lockPut.Unlock()
	return mock.PutFunc(ctx, a)
}

func (mock *artifactStoreMock) PutCalls() []struct {
	Ctx context.Context
	A   domain.Artifact
} {
	mock.lockPut.RLock()
	calls := mock.calls.Put
	mock.lockPut.RUnlock()
	return calls
}

func (mock *artifactStoreMock) Update(ctx context.Context, id uuid.UUID, fn func(*domain.Artifact) error) (domain.Artifact, error) {
	if mock.UpdateFunc == nil {
		panic("artifactStoreMock.UpdateFunc: method is nil but artifactStore.Update was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
		Fn  func(*domain.Artifact) error
	}{Ctx: ctx, ID: id, Fn: fn}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, id, fn)
}

func (mock *artifactStoreMock) UpdateCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
	Fn  func(*domain.Artifact) error
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *artifactStoreMock) List(ctx context.Context) ([]domain.ArtifactSummary, error) {
	if mock.ListFunc == nil {
		panic("artifactStoreMock.ListFunc: method is nil but artifactStore.List was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx)
}

func (mock *artifactStoreMock) ListCalls() []struct {
	Ctx context.Context
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}
