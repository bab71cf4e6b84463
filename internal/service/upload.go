package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"blog_cms/internal/domain"
)

// UploadService persists image payloads and writes the bookkeeping
// record for each one. Oversized images are downscaled on the way in.
type UploadService struct {
	files     FileStore
	blobs     BlobStore
	processor ImageProcessor
	logger    *slog.Logger
}

func NewUploadService(files FileStore, blobs BlobStore, processor ImageProcessor, logger *slog.Logger) *UploadService {
	return &UploadService{
		files:     files,
		blobs:     blobs,
		processor: processor,
		logger:    logger.With("service", "upload"),
	}
}

var extByMime = map[string]string{
	"image/jpeg":    ".jpg",
	"image/png":     ".png",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
}

// Upload sniffs the real content type from the payload's magic bytes; the
// declared type is not trusted. The blob is stored under a generated name
// so user-supplied filenames can never collide or traverse paths.
func (s *UploadService) Upload(ctx context.Context, filename, declaredMime string, data []byte) (*domain.StoredFile, error) {
	if len(data) == 0 {
		return nil, domain.ValidationError("image", "is required")
	}

	sniffed := http.DetectContentType(data)
	if !strings.HasPrefix(sniffed, "image/") {
		return nil, domain.ValidationError("image", "must be an image")
	}

	if s.processor != nil {
		processed, err := s.processor.Process(data, sniffed)
		if err != nil {
			return nil, domain.ValidationError("image", "could not be processed")
		}
		data = processed.Data
		sniffed = processed.MimeType
	}

	ext, ok := extByMime[sniffed]
	if !ok {
		ext = filepath.Ext(filename)
	}

	id := uuid.NewString()
	url, err := s.blobs.Save(ctx, id+ext, data)
	if err != nil {
		s.logger.Error("save blob", "error", err)
		return nil, fmt.Errorf("%w: save upload", domain.ErrStorage)
	}

	record := &domain.StoredFile{
		ID:         id,
		Filename:   filename,
		URL:        url,
		Size:       int64(len(data)),
		MimeType:   sniffed,
		UploadedAt: time.Now().UTC(),
	}

	if err := s.files.Create(ctx, record); err != nil {
		s.logger.Error("record upload", "error", err)
		return nil, fmt.Errorf("%w: record upload", domain.ErrStorage)
	}

	s.logger.Info("image uploaded",
		"filename", filename,
		"declared_mime", declaredMime,
		"sniffed_mime", sniffed,
		"size", record.Size,
	)
	return record, nil
}
