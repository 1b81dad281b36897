// Command cleanup removes uploads, extracted corpora, reports and term
// artifacts older than the configured retention period. It is intended to
// be invoked by an external cron job, not as an in-process goroutine.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/custodio78/termsuite-core/internal/app"
	"github.com/custodio78/termsuite-core/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	res, err := app.Sweep(ctx, cfg, logger, time.Now().UTC())
	if err != nil {
		logger.Error("retention sweep failed",
			slog.String("error", err.Error()),
			slog.Time("cutoff", res.Cutoff),
			slog.Int("files", res.Files),
			slog.Int("artifacts", res.Artifacts),
		)
		os.Exit(1)
	}

	logger.Info("retention sweep completed",
		slog.Time("cutoff", res.Cutoff),
		slog.Int("files", res.Files),
		slog.Int("artifacts", res.Artifacts),
	)
}
