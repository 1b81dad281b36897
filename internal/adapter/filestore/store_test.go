package filestore

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/blake2b"

	"github.com/custodio78/termsuite-core/internal/domain"
)

func newStore(t *testing.T, limit int64) *Store {
	t.Helper()
	s, err := New(t.TempDir(), limit)
	require.NoError(t, err)
	return s
}

func TestNew_CreatesLayout(t *testing.T) {
	t.Parallel()
	s := newStore(t, 0)

	for _, dir := range []string{"uploads/tmx", "uploads/corpus", "corpus", "outputs"} {
		info, err := os.Stat(filepath.Join(s.Root(), dir))
		require.NoError(t, err, dir)
		assert.True(t, info.IsDir(), dir)
	}
}

func TestPing(t *testing.T) {
	t.Parallel()

	s := newStore(t, 0)
	require.NoError(t, s.Ping(context.Background()))

	require.NoError(t, os.RemoveAll(filepath.Join(s.Root(), dirOutputs)))
	assert.Error(t, s.Ping(context.Background()))
}

func TestSaveUpload(t *testing.T) {
	t.Parallel()
	s := newStore(t, 1024)
	id := uuid.New()
	body := []byte("<tmx version=\"1.4\"/>")

	up, err := s.SaveUpload(KindTMX, id, "Memory.TMX", bytes.NewReader(body))
	require.NoError(t, err)

	sum := blake2b.Sum256(body)
	assert.Equal(t, hex.EncodeToString(sum[:]), up.Checksum)
	assert.Equal(t, int64(len(body)), up.Size)
	assert.Equal(t, filepath.Join(s.Root(), "uploads", "tmx", id.String()+".tmx"), up.Path)

	stored, err := os.ReadFile(up.Path)
	require.NoError(t, err)
	assert.Equal(t, body, stored)
}

func TestSaveUpload_TooLarge(t *testing.T) {
	t.Parallel()
	s := newStore(t, 4)
	id := uuid.New()

	_, err := s.SaveUpload(KindCorpus, id, "big.txt", strings.NewReader("0123456789"))
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, statErr := os.Stat(s.UploadPath(KindCorpus, id, ".txt"))
	assert.True(t, os.IsNotExist(statErr), "partial upload must be removed")
}

func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, body := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
}

func TestExtractCorpus(t *testing.T) {
	t.Parallel()
	s := newStore(t, 0)
	id := uuid.New()
	zipPath := s.UploadPath(KindCorpus, id, ".zip")

	writeZip(t, zipPath, map[string]string{
		"a.txt":            "first document",
		"nested/b.TXT":     "second document",
		"image.png":        "binary",
		"../../escape.txt": "nope",
	})

	n, err := s.ExtractCorpus(zipPath, id)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	dir, err := s.CorpusPath(id)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "a.txt"))
	assert.FileExists(t, filepath.Join(dir, "nested", "b.TXT"))
	assert.NoFileExists(t, filepath.Join(dir, "image.png"))
	assert.NoFileExists(t, filepath.Join(s.Root(), "escape.txt"))
}

func TestExtractCorpus_NotAZip(t *testing.T) {
	t.Parallel()
	s := newStore(t, 0)
	id := uuid.New()
	path := s.UploadPath(KindCorpus, id, ".zip")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0o644))

	_, err := s.ExtractCorpus(path, id)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCorpusPath_SingleText(t *testing.T) {
	t.Parallel()
	s := newStore(t, 0)
	id := uuid.New()

	_, err := s.SaveUpload(KindCorpus, id, "corpus.txt", strings.NewReader("some words"))
	require.NoError(t, err)

	dir, err := s.CorpusPath(id)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, id.String()+".txt"))
}

func TestCorpusPath_NotFound(t *testing.T) {
	t.Parallel()
	s := newStore(t, 0)

	_, err := s.CorpusPath(uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSafeJoin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ok   bool
	}{
		{"a.txt", true},
		{"dir/a.txt", true},
		{"../a.txt", false},
		{"dir/../../a.txt", false},
		{"/etc/passwd.txt", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, ok := safeJoin("/data/corpus/x", tt.name)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestCleanup(t *testing.T) {
	t.Parallel()
	s := newStore(t, 0)

	oldFile := s.OutputPath("old.xlsx")
	newFile := s.OutputPath("new.xlsx")
	require.NoError(t, os.WriteFile(oldFile, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(newFile, []byte("x"), 0o644))
	past := time.Now().Add(-10 * 24 * time.Hour)
	require.NoError(t, os.Chtimes(oldFile, past, past))

	n, err := s.Cleanup(context.Background(), time.Now().Add(-7*24*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, 1, n)
	assert.NoFileExists(t, oldFile)
	assert.FileExists(t, newFile)
}
