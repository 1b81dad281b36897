// Package filestore keeps uploads, extracted corpora, generated reports and
// (for the file backend) term artifacts under a single data directory:
//
//	<data>/uploads/tmx/<id>.tmx
//	<data>/uploads/tmx/<id>_terms.json
//	<data>/uploads/corpus/<id>.txt|.zip
//	<data>/corpus/<id>/*.txt
//	<data>/outputs/<job>.xlsx
package filestore

import (
	"archive/zip"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"

	"github.com/custodio78/termsuite-core/internal/domain"
)

// Kind selects the upload directory.
type Kind string

const (
	KindTMX    Kind = "tmx"
	KindCorpus Kind = "corpus"
)

const (
	dirUploads = "uploads"
	dirCorpus  = "corpus"
	dirOutputs = "outputs"
)

// Upload describes a file persisted by SaveUpload.
type Upload struct {
	Path     string
	Size     int64
	Checksum string
}

// Store is the data directory.
type Store struct {
	root      string
	maxUpload int64
}

// New creates the directory layout under root. maxUpload <= 0 disables the
// upload size limit.
func New(root string, maxUpload int64) (*Store, error) {
	s := &Store{root: root, maxUpload: maxUpload}
	for _, dir := range s.layout() {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("filestore: create %s: %w", dir, err)
		}
	}
	return s, nil
}

func (s *Store) layout() []string {
	return []string{
		filepath.Join(s.root, dirUploads, string(KindTMX)),
		filepath.Join(s.root, dirUploads, string(KindCorpus)),
		filepath.Join(s.root, dirCorpus),
		filepath.Join(s.root, dirOutputs),
	}
}

// Root returns the data directory.
func (s *Store) Root() string { return s.root }

// Ping reports whether every directory of the layout is still present.
func (s *Store) Ping(ctx context.Context) error {
	for _, dir := range s.layout() {
		if err := ctx.Err(); err != nil {
			return err
		}
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("filestore: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("filestore: %s is not a directory", dir)
		}
	}
	return nil
}

// UploadPath returns where an upload of kind with the given extension is stored.
func (s *Store) UploadPath(kind Kind, id uuid.UUID, ext string) string {
	return filepath.Join(s.root, dirUploads, string(kind), id.String()+strings.ToLower(ext))
}

// OutputPath returns the path of a generated report.
func (s *Store) OutputPath(name string) string {
	return filepath.Join(s.root, dirOutputs, filepath.Base(name))
}

// SaveUpload streams r into the upload directory of kind, named after id and
// the extension of filename. The blake2b-256 checksum is computed while
// writing. Exceeding the size limit removes the partial file and returns a
// validation error.
func (s *Store) SaveUpload(kind Kind, id uuid.UUID, filename string, r io.Reader) (Upload, error) {
	path := s.UploadPath(kind, id, filepath.Ext(filename))

	f, err := os.Create(path)
	if err != nil {
		return Upload{}, fmt.Errorf("filestore: create upload: %w", err)
	}

	h, err := blake2b.New256(nil)
	if err != nil {
		f.Close()
		return Upload{}, fmt.Errorf("filestore: init checksum: %w", err)
	}

	src := r
	if s.maxUpload > 0 {
		src = io.LimitReader(r, s.maxUpload+1)
	}
	n, err := io.Copy(io.MultiWriter(f, h), src)
	closeErr := f.Close()

	switch {
	case err != nil:
		os.Remove(path)
		return Upload{}, fmt.Errorf("filestore: write upload: %w", err)
	case closeErr != nil:
		os.Remove(path)
		return Upload{}, fmt.Errorf("filestore: close upload: %w", closeErr)
	case s.maxUpload > 0 && n > s.maxUpload:
		os.Remove(path)
		return Upload{}, domain.NewValidationError("file", fmt.Sprintf("exceeds the %d byte upload limit", s.maxUpload))
	}

	return Upload{Path: path, Size: n, Checksum: hex.EncodeToString(h.Sum(nil))}, nil
}

// ExtractCorpus unpacks the .txt members of a zip archive into the corpus
// directory of id and returns how many were written. Members whose path
// would escape the corpus directory are skipped.
func (s *Store) ExtractCorpus(zipPath string, id uuid.UUID) (int, error) {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return 0, domain.NewValidationError("file", "not a valid zip archive")
	}
	defer zr.Close()

	dest := s.corpusDir(id)
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return 0, fmt.Errorf("filestore: create corpus dir: %w", err)
	}

	written := 0
	for _, member := range zr.File {
		if member.FileInfo().IsDir() || !strings.HasSuffix(strings.ToLower(member.Name), ".txt") {
			continue
		}
		target, ok := safeJoin(dest, member.Name)
		if !ok {
			continue
		}
		if err := extractMember(member, target); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

func extractMember(member *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("filestore: create %s: %w", filepath.Dir(target), err)
	}
	rc, err := member.Open()
	if err != nil {
		return fmt.Errorf("filestore: open member %s: %w", member.Name, err)
	}
	defer rc.Close()

	out, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("filestore: create %s: %w", target, err)
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return fmt.Errorf("filestore: extract %s: %w", member.Name, err)
	}
	return out.Close()
}

// safeJoin joins name under dir and reports false when the result escapes dir.
func safeJoin(dir, name string) (string, bool) {
	if filepath.IsAbs(name) || strings.HasPrefix(name, "/") {
		return "", false
	}
	target := filepath.Join(dir, filepath.FromSlash(name))
	rel, err := filepath.Rel(dir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return target, true
}

func (s *Store) corpusDir(id uuid.UUID) string {
	return filepath.Join(s.root, dirCorpus, id.String())
}

// CorpusPath returns the directory holding the corpus of id. A corpus
// uploaded as a single .txt file is copied into its directory on first use.
// Returns domain.ErrNotFound when nothing was uploaded under id.
func (s *Store) CorpusPath(id uuid.UUID) (string, error) {
	dir := s.corpusDir(id)
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return dir, nil
	}

	txt := s.UploadPath(KindCorpus, id, ".txt")
	if _, err := os.Stat(txt); err != nil {
		return "", fmt.Errorf("corpus %s: %w", id, domain.ErrNotFound)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("filestore: create corpus dir: %w", err)
	}
	if err := copyFile(txt, filepath.Join(dir, filepath.Base(txt))); err != nil {
		return "", err
	}
	return dir, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("filestore: open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("filestore: create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("filestore: copy %s: %w", src, err)
	}
	return out.Close()
}

// Cleanup removes files under uploads, corpus and outputs whose modification
// time is before cutoff and returns how many were removed.
func (s *Store) Cleanup(ctx context.Context, cutoff time.Time) (int, error) {
	removed := 0
	for _, dir := range []string{dirUploads, dirCorpus, dirOutputs} {
		err := filepath.WalkDir(filepath.Join(s.root, dir), func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					return nil
				}
				return err
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if d.IsDir() {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return nil
			}
			if info.ModTime().Before(cutoff) {
				if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
					return err
				}
				removed++
			}
			return nil
		})
		if err != nil {
			return removed, fmt.Errorf("filestore: cleanup %s: %w", dir, err)
		}
	}
	return removed, nil
}
