package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/custodio78/termsuite-core/internal/config"
)

// SweepResult counts what a retention sweep removed.
type SweepResult struct {
	Cutoff    time.Time
	Files     int
	Artifacts int
}

// Sweep removes uploads, extracted corpora, reports and artifacts not
// touched since the retention period. A retention of zero days disables it.
func Sweep(ctx context.Context, cfg *config.Config, logger *slog.Logger, now time.Time) (SweepResult, error) {
	res := SweepResult{Cutoff: now.AddDate(0, 0, -cfg.Storage.RetentionDays)}
	if cfg.Storage.RetentionDays == 0 {
		logger.Info("retention sweep disabled")
		return res, nil
	}

	store, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return res, err
	}
	defer store.Close()

	var errs []error
	res.Artifacts, err = store.artifacts.DeleteOlderThan(ctx, res.Cutoff)
	if err != nil {
		errs = append(errs, fmt.Errorf("delete artifacts: %w", err))
	}
	res.Files, err = store.files.Cleanup(ctx, res.Cutoff)
	if err != nil {
		errs = append(errs, fmt.Errorf("delete files: %w", err))
	}
	return res, errors.Join(errs...)
}
