// Package artifact implements the term artifact repository using PostgreSQL.
// The full artifact lives in a JSONB payload; language, total and timestamps
// are mirrored into columns for listing and retention sweeps.
package artifact

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/custodio78/termsuite-core/internal/adapter/postgres"
	"github.com/custodio78/termsuite-core/internal/domain"
)

const (
	table  = "tmx_artifacts"
	entity = "tmx_artifact"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repo provides artifact persistence backed by PostgreSQL.
type Repo struct {
	db postgres.DB
	tx *postgres.TxManager
}

// New creates a new artifact repository.
func New(db postgres.DB) *Repo {
	return &Repo{db: db, tx: postgres.NewTxManager(db)}
}

type payloadRow struct {
	ID        uuid.UUID `db:"id"`
	Payload   []byte    `db:"payload"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (row payloadRow) toDomain() (domain.Artifact, error) {
	a, err := domain.DecodeArtifact(row.Payload)
	if err != nil {
		return domain.Artifact{}, err
	}
	a.ID = row.ID
	a.CreatedAt = row.CreatedAt
	a.UpdatedAt = row.UpdatedAt
	return a, nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// Get returns the artifact stored under id.
// Returns domain.ErrNotFound if no artifact exists.
func (r *Repo) Get(ctx context.Context, id uuid.UUID) (domain.Artifact, error) {
	return r.get(ctx, id, false)
}

func (r *Repo) get(ctx context.Context, id uuid.UUID, lock bool) (domain.Artifact, error) {
	qb := psql.Select("id", "payload", "created_at", "updated_at").
		From(table).
		Where(squirrel.Eq{"id": id})
	if lock {
		qb = qb.Suffix("FOR UPDATE")
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return domain.Artifact{}, fmt.Errorf("build select artifact: %w", err)
	}

	var row payloadRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return domain.Artifact{}, fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
		}
		return domain.Artifact{}, postgres.MapError(err, entity, id)
	}

	a, err := row.toDomain()
	if err != nil {
		return domain.Artifact{}, fmt.Errorf("%s %s: %w", entity, id, err)
	}
	return a, nil
}

// List returns summaries of every stored artifact, most recently updated first.
// Returns an empty slice (not nil) when nothing is stored.
func (r *Repo) List(ctx context.Context) ([]domain.ArtifactSummary, error) {
	query, args, err := psql.Select("id", "language", "total", "updated_at").
		From(table).
		OrderBy("updated_at DESC", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list artifacts: %w", err)
	}

	summaries := []domain.ArtifactSummary{}
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &summaries, query, args...); err != nil {
		return nil, fmt.Errorf("list artifacts: %w", err)
	}
	return summaries, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Put inserts or replaces the artifact keyed by a.ID.
func (r *Repo) Put(ctx context.Context, a domain.Artifact) error {
	if a.ID == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}

	payload, err := domain.EncodeArtifact(a)
	if err != nil {
		return fmt.Errorf("%s %s: %w", entity, a.ID, err)
	}

	now := time.Now().UTC()
	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	updatedAt := a.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = now
	}

	query, args, err := psql.Insert(table).
		Columns("id", "language", "total", "payload", "source_file", "checksum", "created_at", "updated_at").
		Values(a.ID, nullableLanguage(a.Language), a.Total, payload, a.SourceFile, a.Checksum, createdAt, updatedAt).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			language = EXCLUDED.language,
			total = EXCLUDED.total,
			payload = EXCLUDED.payload,
			source_file = EXCLUDED.source_file,
			checksum = EXCLUDED.checksum,
			updated_at = EXCLUDED.updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert artifact: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, entity, a.ID)
	}
	return nil
}

// Update loads the artifact under a row lock, applies fn and writes the
// result back in the same transaction. fn's error aborts the update.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, fn func(*domain.Artifact) error) (domain.Artifact, error) {
	var out domain.Artifact
	err := r.tx.RunInTx(ctx, func(ctx context.Context) error {
		a, err := r.get(ctx, id, true)
		if err != nil {
			return err
		}
		if err := fn(&a); err != nil {
			return err
		}
		a.ID = id
		a.UpdatedAt = time.Now().UTC()
		if err := r.Put(ctx, a); err != nil {
			return err
		}
		out = a
		return nil
	})
	if err != nil {
		return domain.Artifact{}, err
	}
	return out, nil
}

// Delete removes the artifact under id.
// Returns domain.ErrNotFound if no artifact exists.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := psql.Delete(table).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete artifact: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, entity, id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}
	return nil
}

// DeleteOlderThan removes artifacts not updated since cutoff and returns
// how many were removed.
func (r *Repo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	query, args, err := psql.Delete(table).Where(squirrel.Lt{"updated_at": cutoff}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete old artifacts: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete old artifacts: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func nullableLanguage(lang string) *string {
	if lang == "" {
		return nil
	}
	return &lang
}
