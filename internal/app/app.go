package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/custodio78/termsuite-core/internal/config"
	"github.com/custodio78/termsuite-core/internal/extractor"
	"github.com/custodio78/termsuite-core/internal/metrics"
	"github.com/custodio78/termsuite-core/internal/service/extraction"
	"github.com/custodio78/termsuite-core/internal/service/memory"
	"github.com/custodio78/termsuite-core/internal/transport/middleware"
	"github.com/custodio78/termsuite-core/internal/transport/rest"
)

// Run is the API server entry point. It loads configuration, connects the
// configured backends, serves HTTP until ctx is cancelled and then drains
// in-flight requests and extraction jobs within the shutdown timeout.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("artifacts", cfg.Storage.Artifacts),
		slog.String("jobs", cfg.Jobs.Backend),
	)

	store, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	jobs, jobsPing, closeJobs, err := openJobs(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeJobs()

	runner, err := extractor.NewRunner(logger, extractor.Config{
		JavaBin:  cfg.Extractor.JavaBin,
		JarPath:  cfg.Extractor.JarPath,
		JavaOpts: cfg.Extractor.JavaOpts,
		Timeout:  cfg.Extractor.Timeout,
	})
	if err != nil {
		return fmt.Errorf("extractor: %w", err)
	}

	m := metrics.New()
	memorySvc := memory.NewService(logger, store.artifacts, store.files, m)
	extractionSvc := extraction.NewService(logger, jobs, store.files, store.artifacts, runner, m, cfg.Jobs.MaxConcurrent)

	checks := store.checks
	if jobsPing != nil {
		checks["redis"] = jobsPing
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	defer limiter.Stop()

	maxUpload := cfg.Storage.MaxUploadBytes()
	handler := rest.NewRouter(rest.RouterDeps{
		Logger: logger,
		CORS:   cfg.CORS,
		Health: rest.NewHealthHandler(BuildVersion(), checks),
		Memory: rest.NewMemoryHandler(memorySvc, logger, maxUpload, rest.ExportDefaults{
			Format: cfg.Export.DefaultFormat,
			TopN:   cfg.Export.DefaultTopN,
		}),
		Extraction:     rest.NewExtractionHandler(extractionSvc, logger, maxUpload),
		Metrics:        m,
		MetricsHandler: m.Handler(),
		UploadLimit:    limiter.Limit(cfg.RateLimit.UploadsPerMinute),
	})

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           handler,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		return errors.Join(
			srv.Shutdown(shutdownCtx),
			extractionSvc.Shutdown(shutdownCtx),
		)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped with error", slog.String("error", err.Error()))
		return err
	}
	logger.Info("server stopped")
	return nil
}
