// Package extraction runs corpus term extraction jobs through the delegated
// extractor. Jobs execute in the background, bounded by a worker semaphore,
// and report progress through the job store.
package extraction

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/custodio78/termsuite-core/internal/adapter/filestore"
	"github.com/custodio78/termsuite-core/internal/domain"
	"github.com/custodio78/termsuite-core/internal/extractor"
)

type jobStore interface {
	Get(ctx context.Context, id uuid.UUID) (domain.Job, error)
	Set(ctx context.Context, job domain.Job) error
	CompareAndSwap(ctx context.Context, from domain.JobStatus, next domain.Job) error
}

type corpusStore interface {
	SaveUpload(kind filestore.Kind, id uuid.UUID, filename string, r io.Reader) (filestore.Upload, error)
	ExtractCorpus(zipPath string, id uuid.UUID) (int, error)
	CorpusPath(id uuid.UUID) (string, error)
	OutputPath(name string) string
}

type artifactReader interface {
	Get(ctx context.Context, id uuid.UUID) (domain.Artifact, error)
}

type termExtractor interface {
	Run(ctx context.Context, req extractor.Request) (*extractor.Result, error)
}

type recorder interface {
	JobStarted()
	JobFinished(status string)
	ObserveExtractor(elapsed time.Duration)
}

// Service provides extraction job operations.
type Service struct {
	jobs      jobStore
	files     corpusStore
	artifacts artifactReader
	extractor termExtractor
	metrics   recorder
	log       *slog.Logger
	now       func() time.Time

	sem    *semaphore.Weighted
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex // guards closed and wg.Add against Shutdown
	closed bool
}

// NewService creates a new extraction service running at most maxConcurrent
// extractor processes at a time.
func NewService(
	log *slog.Logger,
	jobs jobStore,
	files corpusStore,
	artifacts artifactReader,
	ext termExtractor,
	metrics recorder,
	maxConcurrent int64,
) *Service {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		jobs:      jobs,
		files:     files,
		artifacts: artifacts,
		extractor: ext,
		metrics:   metrics,
		log:       log.With("service", "extraction"),
		now:       func() time.Time { return time.Now().UTC() },
		sem:       semaphore.NewWeighted(maxConcurrent),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Shutdown cancels running jobs and waits for their workers to record the
// outcome, or for ctx to expire.
func (s *Service) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// track registers a worker unless Shutdown has begun. Callers that do not
// go on to start the worker must call s.wg.Done.
func (s *Service) track() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.wg.Add(1)
	return true
}

// Wait blocks until every started job has finished.
func (s *Service) Wait() { s.wg.Wait() }
