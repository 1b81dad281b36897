// Package memory implements the translation-memory use cases: upload and
// parse a TMX document, rescope its artifact to another language and export
// term reports.
package memory

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/custodio78/termsuite-core/internal/adapter/filestore"
	"github.com/custodio78/termsuite-core/internal/domain"
)

type artifactStore interface {
	Get(ctx context.Context, id uuid.UUID) (domain.Artifact, error)
	Put(ctx context.Context, a domain.Artifact) error
	Update(ctx context.Context, id uuid.UUID, fn func(*domain.Artifact) error) (domain.Artifact, error)
	List(ctx context.Context) ([]domain.ArtifactSummary, error)
}

type uploadStore interface {
	SaveUpload(kind filestore.Kind, id uuid.UUID, filename string, r io.Reader) (filestore.Upload, error)
	UploadPath(kind filestore.Kind, id uuid.UUID, ext string) string
}

type recorder interface {
	ObserveParse(strategy string, terms int)
	ObserveReport(format string, err error)
}

// Service provides translation-memory operations.
type Service struct {
	artifacts artifactStore
	files     uploadStore
	metrics   recorder
	log       *slog.Logger
	now       func() time.Time
}

// NewService creates a new memory service.
func NewService(
	log *slog.Logger,
	artifacts artifactStore,
	files uploadStore,
	metrics recorder,
) *Service {
	return &Service{
		artifacts: artifacts,
		files:     files,
		metrics:   metrics,
		log:       log.With("service", "memory"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// sourcePath locates the uploaded document an artifact was built from.
func (s *Service) sourcePath(a domain.Artifact) string {
	if a.SourceFile != "" {
		return a.SourceFile
	}
	return s.files.UploadPath(filestore.KindTMX, a.ID, ".tmx")
}
