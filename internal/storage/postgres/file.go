package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"blog_cms/internal/domain"
)

// FileStore keeps the insert-only upload bookkeeping records.
type FileStore struct {
	db *sqlx.DB
}

func NewFileStore(db *sqlx.DB) *FileStore {
	return &FileStore{db: db}
}

func (s *FileStore) Create(ctx context.Context, file *domain.StoredFile) error {
	query := `
		INSERT INTO files (id, filename, url, size, mimetype, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := s.db.ExecContext(ctx, query,
		file.ID,
		file.Filename,
		file.URL,
		file.Size,
		file.MimeType,
		file.UploadedAt,
	)
	return err
}
