package memory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/custodio78/termsuite-core/internal/domain"
	"github.com/custodio78/termsuite-core/internal/terms"
	"github.com/custodio78/termsuite-core/internal/tmx"
)

// List returns summaries of every stored artifact.
func (s *Service) List(ctx context.Context) ([]domain.ArtifactSummary, error) {
	list, err := s.artifacts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list artifacts: %w", err)
	}
	return list, nil
}

// Languages reports the languages of a stored memory. Artifacts written
// before languages were recorded fall back to re-reading the source document.
func (s *Service) Languages(ctx context.Context, id uuid.UUID) (*LanguagesResult, error) {
	art, err := s.artifacts.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	langs := art.AvailableLanguages
	if len(langs) == 0 {
		doc, err := tmx.ParseFile(s.sourcePath(art))
		if err != nil {
			return nil, err
		}
		langs = doc.Languages()
	}

	return &LanguagesResult{
		TMXID:              id,
		AvailableLanguages: langs,
		CurrentLanguage:    optionalString(art.Language),
		TotalTerms:         art.Total,
		TotalOccurrences:   art.TotalOccurrences,
	}, nil
}

// ExtractLanguage rescopes a stored artifact to another language in place.
func (s *Service) ExtractLanguage(ctx context.Context, input ExtractLanguageInput) (*ExtractLanguageResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	art, err := s.artifacts.Update(ctx, input.TMXID, func(a *domain.Artifact) error {
		doc, err := tmx.ParseFile(s.sourcePath(*a))
		if err != nil {
			return err
		}
		terms.Reextract(a, doc, input.Language, s.now())
		s.metrics.ObserveParse(doc.Strategy, a.Total)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "translation memory rescoped",
		slog.String("tmx_id", input.TMXID.String()),
		slog.String("language", input.Language),
		slog.Int("terms", art.Total),
	)

	return &ExtractLanguageResult{
		TMXID:            input.TMXID,
		Language:         art.Language,
		Total:            art.Total,
		TotalOccurrences: art.TotalOccurrences,
		Message:          fmt.Sprintf("%d términos del idioma '%s' extraídos.", art.Total, art.Language),
	}, nil
}
