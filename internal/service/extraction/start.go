package extraction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/custodio78/termsuite-core/internal/domain"
)

const queuedMessage = "Trabajo en cola"

// Start validates req, records a pending job and schedules it. The job
// outlives the calling request; Shutdown cancels it.
func (s *Service) Start(ctx context.Context, req domain.ExtractionRequest) (domain.Job, error) {
	if err := validateRequest(req); err != nil {
		return domain.Job{}, err
	}
	if _, err := s.files.CorpusPath(req.CorpusID); err != nil {
		return domain.Job{}, err
	}
	if req.UseTMX {
		if _, err := s.artifacts.Get(ctx, *req.TMXID); err != nil {
			return domain.Job{}, err
		}
	}
	if !s.track() {
		return domain.Job{}, fmt.Errorf("extraction service stopped: %w", context.Canceled)
	}

	now := s.now()
	job := domain.Job{
		ID:        uuid.New(),
		Status:    domain.JobStatusPending,
		Message:   queuedMessage,
		Request:   req,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.jobs.Set(ctx, job); err != nil {
		s.wg.Done()
		return domain.Job{}, fmt.Errorf("store job: %w", err)
	}

	go s.process(job)

	s.log.InfoContext(ctx, "extraction job queued",
		slog.String("job_id", job.ID.String()),
		slog.String("corpus_id", req.CorpusID.String()),
		slog.String("language", req.Language.String()),
	)
	return job, nil
}

// Status returns the current record of a job.
func (s *Service) Status(ctx context.Context, id uuid.UUID) (domain.Job, error) {
	return s.jobs.Get(ctx, id)
}

// ResultPath returns the report of a completed job. Jobs in any other state
// yield domain.ErrConflict.
func (s *Service) ResultPath(ctx context.Context, id uuid.UUID) (string, error) {
	job, err := s.jobs.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if job.Status != domain.JobStatusCompleted || job.ResultFile == "" {
		return "", fmt.Errorf("job %s is %s: %w", id, job.Status, domain.ErrConflict)
	}

	path := s.files.OutputPath(job.ResultFile)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("report %s: %w", job.ResultFile, domain.ErrNotFound)
		}
		return "", fmt.Errorf("report %s: %w", job.ResultFile, err)
	}
	return path, nil
}
