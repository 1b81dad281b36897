package memory

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/custodio78/termsuite-core/internal/domain"
	"github.com/custodio78/termsuite-core/internal/report"
	"github.com/custodio78/termsuite-core/internal/report/export"
	"github.com/custodio78/termsuite-core/internal/tmx"
	"github.com/custodio78/termsuite-core/internal/translation"
)

// ExportReport runs the report pipeline over a stored artifact and encodes
// the result. A translation index that cannot be built marks every row
// instead of failing the export.
func (s *Service) ExportReport(ctx context.Context, input ExportInput) (*Report, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	format, err := export.ParseFormat(input.Format)
	if err != nil {
		return nil, err
	}

	art, err := s.artifacts.Get(ctx, input.TMXID)
	if err != nil {
		return nil, err
	}

	var enrich *report.Enrichment
	if input.IncludeTranslation {
		enrich = s.enrichment(ctx, art, input.SourceLanguage)
	}

	table, err := report.Run(report.BuildRows(art), report.MemoryLayout(input.IncludeTranslation), input.Options, enrich)
	if err != nil {
		s.metrics.ObserveReport(format.String(), err)
		return nil, err
	}

	var buf bytes.Buffer
	if err := export.Encode(&buf, format, table); err != nil {
		s.metrics.ObserveReport(format.String(), err)
		return nil, fmt.Errorf("encode report: %w", err)
	}
	s.metrics.ObserveReport(format.String(), nil)

	return &Report{
		Filename:    fmt.Sprintf("terminos_tmx_%s.%s", art.LanguageLabel(), format.Extension()),
		ContentType: format.ContentType(),
		Body:        buf.Bytes(),
		Rows:        len(table.Rows),
	}, nil
}

func (s *Service) enrichment(ctx context.Context, art domain.Artifact, sourceLang string) *report.Enrichment {
	if sourceLang == "" {
		sourceLang = art.Language
	}

	doc, err := tmx.ParseFile(s.sourcePath(art))
	if err != nil {
		s.log.WarnContext(ctx, "translation index unavailable",
			slog.String("tmx_id", art.ID.String()),
			slog.String("error", err.Error()),
		)
		return &report.Enrichment{Err: fmt.Errorf("%w: %v", domain.ErrResolver, err)}
	}

	return &report.Enrichment{Resolver: translation.NewIndex(doc.Pairs(sourceLang))}
}
