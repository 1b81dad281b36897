package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodio78/termsuite-core/internal/domain"
)

const artifactSuffix = "_terms.json"

// ArtifactStore persists artifacts as JSON files next to their uploads.
// Writes go through a temp file and rename; Update serializes per id.
type ArtifactStore struct {
	dir   string
	log   *slog.Logger
	locks sync.Map // uuid.UUID -> *sync.Mutex
}

// NewArtifactStore stores artifacts in the TMX upload directory of s.
func NewArtifactStore(s *Store, log *slog.Logger) *ArtifactStore {
	return &ArtifactStore{
		dir: filepath.Join(s.root, dirUploads, string(KindTMX)),
		log: log.With("store", "tmx_artifacts"),
	}
}

func (a *ArtifactStore) path(id uuid.UUID) string {
	return filepath.Join(a.dir, id.String()+artifactSuffix)
}

func (a *ArtifactStore) lock(id uuid.UUID) func() {
	m, _ := a.locks.LoadOrStore(id, &sync.Mutex{})
	mu := m.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// Get returns the artifact stored under id.
// Returns domain.ErrNotFound if no artifact exists.
func (a *ArtifactStore) Get(_ context.Context, id uuid.UUID) (domain.Artifact, error) {
	raw, err := os.ReadFile(a.path(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Artifact{}, fmt.Errorf("tmx_artifact %s: %w", id, domain.ErrNotFound)
		}
		return domain.Artifact{}, fmt.Errorf("tmx_artifact %s: %w", id, err)
	}

	art, err := domain.DecodeArtifact(raw)
	if err != nil {
		return domain.Artifact{}, fmt.Errorf("tmx_artifact %s: %w", id, err)
	}
	art.ID = id
	if art.UpdatedAt.IsZero() {
		if info, err := os.Stat(a.path(id)); err == nil {
			art.UpdatedAt = info.ModTime().UTC()
		}
	}
	return art, nil
}

// Put writes the artifact keyed by art.ID, replacing any previous one.
func (a *ArtifactStore) Put(_ context.Context, art domain.Artifact) error {
	if art.ID == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}
	return a.write(art)
}

func (a *ArtifactStore) write(art domain.Artifact) error {
	now := time.Now().UTC()
	if art.CreatedAt.IsZero() {
		art.CreatedAt = now
	}
	if art.UpdatedAt.IsZero() {
		art.UpdatedAt = now
	}

	data, err := domain.EncodeArtifact(art)
	if err != nil {
		return fmt.Errorf("tmx_artifact %s: %w", art.ID, err)
	}

	path := a.path(art.ID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("tmx_artifact %s: write: %w", art.ID, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("tmx_artifact %s: commit: %w", art.ID, err)
	}
	return nil
}

// Update applies fn to the stored artifact and writes the result back.
// Concurrent updates of the same id are serialized.
func (a *ArtifactStore) Update(ctx context.Context, id uuid.UUID, fn func(*domain.Artifact) error) (domain.Artifact, error) {
	unlock := a.lock(id)
	defer unlock()

	art, err := a.Get(ctx, id)
	if err != nil {
		return domain.Artifact{}, err
	}
	if err := fn(&art); err != nil {
		return domain.Artifact{}, err
	}
	art.ID = id
	art.UpdatedAt = time.Now().UTC()
	if err := a.write(art); err != nil {
		return domain.Artifact{}, err
	}
	return art, nil
}

// Delete removes the artifact under id.
// Returns domain.ErrNotFound if no artifact exists.
func (a *ArtifactStore) Delete(_ context.Context, id uuid.UUID) error {
	if err := os.Remove(a.path(id)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("tmx_artifact %s: %w", id, domain.ErrNotFound)
		}
		return fmt.Errorf("tmx_artifact %s: %w", id, err)
	}
	return nil
}

// List returns summaries of every readable artifact, most recently updated
// first. Unreadable files are skipped with a warning.
func (a *ArtifactStore) List(ctx context.Context) ([]domain.ArtifactSummary, error) {
	ids, err := a.ids()
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.ArtifactSummary, 0, len(ids))
	for _, id := range ids {
		art, err := a.Get(ctx, id)
		if err != nil {
			a.log.WarnContext(ctx, "skip unreadable artifact",
				slog.String("id", id.String()),
				slog.String("error", err.Error()),
			)
			continue
		}
		s := domain.ArtifactSummary{ID: id, Total: art.Total, UpdatedAt: art.UpdatedAt}
		if art.Language != "" {
			lang := art.Language
			s.Language = &lang
		}
		summaries = append(summaries, s)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].UpdatedAt.After(summaries[j].UpdatedAt)
	})
	return summaries, nil
}

// DeleteOlderThan removes artifacts not updated since cutoff.
func (a *ArtifactStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	list, err := a.List(ctx)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, s := range list {
		if !s.UpdatedAt.Before(cutoff) {
			continue
		}
		if err := a.Delete(ctx, s.ID); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

func (a *ArtifactStore) ids() ([]uuid.UUID, error) {
	entries, err := os.ReadDir(a.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("list artifacts: %w", err)
	}

	var ids []uuid.UUID
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, artifactSuffix) {
			continue
		}
		id, err := uuid.Parse(strings.TrimSuffix(name, artifactSuffix))
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}
