package extraction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/custodio78/termsuite-core/internal/domain"
	"github.com/custodio78/termsuite-core/internal/extractor"
	"github.com/custodio78/termsuite-core/internal/report"
	"github.com/custodio78/termsuite-core/internal/report/export"
	"github.com/custodio78/termsuite-core/pkg/ctxutil"
)

// Progress milestones of a job.
const (
	stepStarting   = 10
	stepExtracting = 30
	stepProcessing = 70
	stepReporting  = 90
	stepDone       = 100
)

const recordTimeout = 5 * time.Second

func (s *Service) process(job domain.Job) {
	defer s.wg.Done()
	ctx := ctxutil.WithJobID(s.ctx, job.ID)

	if err := s.sem.Acquire(ctx, 1); err != nil {
		s.fail(job, err)
		return
	}
	defer s.sem.Release(1)

	s.metrics.JobStarted()
	start := time.Now()

	job, err := s.run(ctx, job)
	if err != nil {
		s.log.ErrorContext(ctx, "extraction job failed", slog.String("error", err.Error()))
		s.fail(job, err)
		s.metrics.JobFinished(domain.JobStatusFailed.String())
		return
	}

	s.metrics.JobFinished(domain.JobStatusCompleted.String())
	s.log.InfoContext(ctx, "extraction job completed",
		slog.String("result_file", job.ResultFile),
		slog.Duration("elapsed", time.Since(start)),
	)
}

func (s *Service) run(ctx context.Context, job domain.Job) (domain.Job, error) {
	req := job.Request

	if err := s.advance(ctx, &job, stepStarting, "Iniciando TermSuite..."); err != nil {
		return job, err
	}
	corpusDir, err := s.files.CorpusPath(req.CorpusID)
	if err != nil {
		return job, err
	}

	if err := s.advance(ctx, &job, stepExtracting, "Extrayendo términos..."); err != nil {
		return job, err
	}
	started := time.Now()
	result, err := s.extractor.Run(ctx, extractor.Request{
		CorpusDir:    corpusDir,
		OutputPath:   s.files.OutputPath(job.ID.String() + ".json"),
		Language:     req.Language.String(),
		MinFrequency: req.MinFrequency,
	})
	s.metrics.ObserveExtractor(time.Since(started))
	if err != nil {
		return job, err
	}

	if err := s.advance(ctx, &job, stepProcessing, "Procesando resultados..."); err != nil {
		return job, err
	}
	if req.UseTMX && req.TMXID != nil {
		art, err := s.artifacts.Get(ctx, *req.TMXID)
		if err != nil {
			return job, err
		}
		extractor.MarkReference(result.Terms, art.Terms)
	}

	if err := s.advance(ctx, &job, stepReporting, "Generando Excel..."); err != nil {
		return job, err
	}
	name, err := s.writeReport(job, result)
	if err != nil {
		return job, err
	}

	next := job
	next.Status = domain.JobStatusCompleted
	next.Progress = stepDone
	next.Message = "Extracción completada"
	next.ResultFile = name
	next.UpdatedAt = s.now()
	if err := s.jobs.CompareAndSwap(ctx, job.Status, next); err != nil {
		return job, fmt.Errorf("complete job: %w", err)
	}
	return next, nil
}

// advance moves a job to processing at the given milestone.
func (s *Service) advance(ctx context.Context, job *domain.Job, progress int, message string) error {
	next := *job
	next.Status = domain.JobStatusProcessing
	next.Progress = progress
	next.Message = message
	next.UpdatedAt = s.now()
	if err := s.jobs.CompareAndSwap(ctx, job.Status, next); err != nil {
		return fmt.Errorf("update job progress: %w", err)
	}
	*job = next
	return nil
}

// writeReport encodes the extraction table, most frequent terms first,
// truncated to max_terms. A result without terms yields a header-only sheet.
func (s *Service) writeReport(job domain.Job, result *extractor.Result) (string, error) {
	layout := report.ExtractionLayout()
	opts := report.DefaultOptions()
	if job.Request.MaxTerms != nil {
		opts.TopN = *job.Request.MaxTerms
	}

	rows := report.BuildExtractionRows(result.Terms, job.Request.Language.String())
	table, err := report.Run(rows, layout, opts, nil)
	if errors.Is(err, domain.ErrEmptyResult) {
		table, err = report.Table{Sheet: layout.Sheet, Columns: layout.Columns}, nil
	}
	if err != nil {
		return "", err
	}

	name := job.ID.String() + "." + export.FormatXLSX.Extension()
	f, err := os.Create(s.files.OutputPath(name))
	if err != nil {
		return "", fmt.Errorf("create report: %w", err)
	}
	if err := export.EncodeXLSX(f, table); err != nil {
		f.Close()
		return "", fmt.Errorf("write report: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close report: %w", err)
	}
	return name, nil
}

// fail records err on the job. It runs detached from the service context so
// that cancelled jobs are still marked failed.
func (s *Service) fail(job domain.Job, cause error) {
	ctx, cancel := context.WithTimeout(ctxutil.WithJobID(context.WithoutCancel(s.ctx), job.ID), recordTimeout)
	defer cancel()

	next := job
	next.Status = domain.JobStatusFailed
	next.Error = cause.Error()
	next.Message = "Error: " + cause.Error()
	next.UpdatedAt = s.now()
	if err := s.jobs.CompareAndSwap(ctx, job.Status, next); err != nil {
		s.log.ErrorContext(ctx, "record job failure", slog.String("error", err.Error()))
	}
}
