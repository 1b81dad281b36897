package memory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/custodio78/termsuite-core/internal/adapter/filestore"
	"github.com/custodio78/termsuite-core/internal/terms"
	"github.com/custodio78/termsuite-core/internal/tmx"
)

// Upload stores a translation memory, parses it and persists its artifact
// scoped to input.Language ("" keeps every variant).
func (s *Service) Upload(ctx context.Context, input UploadInput) (*UploadResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New()
	up, err := s.files.SaveUpload(filestore.KindTMX, id, input.Filename, input.Body)
	if err != nil {
		return nil, fmt.Errorf("save upload: %w", err)
	}

	doc, err := tmx.ParseFile(up.Path)
	if err != nil {
		s.metrics.ObserveParse("", 0)
		return nil, err
	}

	art := terms.BuildArtifact(doc, input.Language, s.now())
	art.ID = id
	art.SourceFile = up.Path
	art.Checksum = up.Checksum
	s.metrics.ObserveParse(doc.Strategy, art.Total)

	if err := s.artifacts.Put(ctx, art); err != nil {
		return nil, fmt.Errorf("store artifact: %w", err)
	}

	s.log.InfoContext(ctx, "translation memory uploaded",
		slog.String("tmx_id", id.String()),
		slog.String("language", input.Language),
		slog.String("strategy", doc.Strategy),
		slog.Int("terms", art.Total),
		slog.Int64("size", up.Size),
	)

	return &UploadResult{
		FileID:   id,
		Filename: input.Filename,
		Size:     up.Size,
		Checksum: up.Checksum,
		Language: optionalString(input.Language),
		Total:    art.Total,
		Message:  uploadMessage(art.Total, input.Language),
	}, nil
}

func uploadMessage(total int, lang string) string {
	scope := ""
	if lang != "" {
		scope = fmt.Sprintf(" del idioma '%s'", lang)
	}
	return fmt.Sprintf("TMX subido exitosamente. %d términos%s encontrados.", total, scope)
}
