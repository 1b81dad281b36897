package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/custodio78/termsuite-core/internal/domain"
)

// SeedArtifact inserts an artifact for language with the given term
// frequencies and returns it as stored.
func SeedArtifact(t *testing.T, pool *pgxpool.Pool, language string, freqs map[string]int) domain.Artifact {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	a := domain.Artifact{
		ID:                 uuid.New(),
		Language:           language,
		Frequencies:        freqs,
		AvailableLanguages: []string{language},
		SourceFile:         "uploads/tmx/seed-" + uuid.New().String()[:8] + ".tmx",
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	for term, n := range freqs {
		a.Terms = append(a.Terms, term)
		a.TotalOccurrences += n
	}
	a.Total = len(a.Terms)

	payload, err := domain.EncodeArtifact(a)
	if err != nil {
		t.Fatalf("testhelper: SeedArtifact encode: %v", err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO tmx_artifacts (id, language, total, payload, source_file, checksum, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.Language, a.Total, payload, a.SourceFile, a.Checksum, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedArtifact insert: %v", err)
	}

	return a
}
