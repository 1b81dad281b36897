// Package jobstore holds extraction job records. Both implementations share
// the same semantics: Set stores unconditionally, CompareAndSwap replaces a
// record only while its status still equals the expected one and the status
// change is a legal transition.
package jobstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/custodio78/termsuite-core/internal/domain"
)

// Memory is a process-local job store.
type Memory struct {
	mu   sync.RWMutex
	jobs map[uuid.UUID]domain.Job
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{jobs: make(map[uuid.UUID]domain.Job)}
}

func (m *Memory) Get(_ context.Context, id uuid.UUID) (domain.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	job, ok := m.jobs[id]
	if !ok {
		return domain.Job{}, fmt.Errorf("job %s: %w", id, domain.ErrNotFound)
	}
	return job, nil
}

func (m *Memory) Set(_ context.Context, job domain.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.jobs[job.ID] = job
	return nil
}

func (m *Memory) CompareAndSwap(_ context.Context, from domain.JobStatus, next domain.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur, ok := m.jobs[next.ID]
	if !ok {
		return fmt.Errorf("job %s: %w", next.ID, domain.ErrNotFound)
	}
	if err := checkSwap(cur, from, next); err != nil {
		return err
	}
	m.jobs[next.ID] = next
	return nil
}

func checkSwap(cur domain.Job, from domain.JobStatus, next domain.Job) error {
	if cur.Status != from {
		return fmt.Errorf("job %s: status is %s, expected %s: %w", cur.ID, cur.Status, from, domain.ErrConflict)
	}
	if !from.CanTransitionTo(next.Status) {
		return fmt.Errorf("job %s: %s -> %s: %w", cur.ID, from, next.Status, domain.ErrConflict)
	}
	return nil
}
