package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/custodio78/termsuite-core/internal/adapter/filestore"
	"github.com/custodio78/termsuite-core/internal/adapter/jobstore"
	"github.com/custodio78/termsuite-core/internal/adapter/postgres"
	"github.com/custodio78/termsuite-core/internal/adapter/postgres/artifact"
	"github.com/custodio78/termsuite-core/internal/config"
	"github.com/custodio78/termsuite-core/internal/domain"
	"github.com/custodio78/termsuite-core/internal/transport/rest"
)

// artifactStore is satisfied by both artifact backends.
type artifactStore interface {
	Get(ctx context.Context, id uuid.UUID) (domain.Artifact, error)
	Put(ctx context.Context, a domain.Artifact) error
	Update(ctx context.Context, id uuid.UUID, fn func(*domain.Artifact) error) (domain.Artifact, error)
	List(ctx context.Context) ([]domain.ArtifactSummary, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}

// jobStore is satisfied by both job backends.
type jobStore interface {
	Get(ctx context.Context, id uuid.UUID) (domain.Job, error)
	Set(ctx context.Context, job domain.Job) error
	CompareAndSwap(ctx context.Context, from domain.JobStatus, next domain.Job) error
}

// storage is the data directory plus the selected artifact backend.
type storage struct {
	files     *filestore.Store
	artifacts artifactStore
	checks    map[string]rest.Pinger
	closers   []func()
}

func (s *storage) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// openStorage prepares the data directory and connects the artifact
// backend. The postgres backend is migrated before use.
func openStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*storage, error) {
	files, err := filestore.New(cfg.Storage.DataDir, cfg.Storage.MaxUploadBytes())
	if err != nil {
		return nil, err
	}
	s := &storage{
		files:  files,
		checks: map[string]rest.Pinger{"storage": files},
	}

	if !cfg.UsesPostgres() {
		s.artifacts = filestore.NewArtifactStore(files, logger)
		logger.Info("artifact backend ready", slog.String("backend", config.ArtifactBackendFile))
		return s, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	s.closers = append(s.closers, pool.Close)

	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	s.artifacts = artifact.New(pool)
	s.checks["database"] = pool
	logger.Info("artifact backend ready",
		slog.String("backend", config.ArtifactBackendPostgres),
		slog.Int("migrations_applied", applied),
	)
	return s, nil
}

// openJobs connects the job status backend. The returned close function is
// never nil.
func openJobs(ctx context.Context, cfg *config.Config, logger *slog.Logger) (jobStore, rest.Pinger, func(), error) {
	if !strings.EqualFold(cfg.Jobs.Backend, config.JobBackendRedis) {
		logger.Info("job backend ready", slog.String("backend", config.JobBackendMemory))
		return jobstore.NewMemory(), nil, func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	ping := rest.PingFunc(func(ctx context.Context) error { return client.Ping(ctx).Err() })
	if err := ping(ctx); err != nil {
		client.Close() //nolint:errcheck
		return nil, nil, nil, fmt.Errorf("connect to redis: %w", err)
	}

	logger.Info("job backend ready",
		slog.String("backend", config.JobBackendRedis),
		slog.String("addr", cfg.Redis.Addr),
	)
	closeFn := func() { client.Close() } //nolint:errcheck
	return jobstore.NewRedis(client, cfg.Redis.KeyPrefix, cfg.Redis.JobTTL), ping, closeFn, nil
}
