package extraction

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/custodio78/termsuite-core/internal/adapter/filestore"
	"github.com/custodio78/termsuite-core/internal/domain"
)

// UploadCorpusResult describes a stored corpus.
type UploadCorpusResult struct {
	FileID   uuid.UUID `json:"file_id"`
	Filename string    `json:"filename"`
	Size     int64     `json:"size"`
	Checksum string    `json:"checksum"`
	Files    int       `json:"files"`
	Message  string    `json:"message"`
}

// UploadCorpus stores a corpus. Archives are unpacked immediately, keeping
// only their .txt members.
func (s *Service) UploadCorpus(ctx context.Context, input UploadCorpusInput) (*UploadCorpusResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New()
	up, err := s.files.SaveUpload(filestore.KindCorpus, id, input.Filename, input.Body)
	if err != nil {
		return nil, fmt.Errorf("save corpus: %w", err)
	}

	files := 1
	if input.ext() == ".zip" {
		files, err = s.files.ExtractCorpus(up.Path, id)
		if err != nil {
			return nil, err
		}
		if files == 0 {
			return nil, domain.NewValidationError("file", "archive contains no .txt files")
		}
	}

	s.log.InfoContext(ctx, "corpus uploaded",
		slog.String("corpus_id", id.String()),
		slog.Int("files", files),
		slog.Int64("size", up.Size),
	)

	return &UploadCorpusResult{
		FileID:   id,
		Filename: input.Filename,
		Size:     up.Size,
		Checksum: up.Checksum,
		Files:    files,
		Message:  "Corpus subido exitosamente",
	}, nil
}
