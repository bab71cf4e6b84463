package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"blog_cms/internal/domain"
)

type PrincipalStore struct {
	db *sqlx.DB
}

func NewPrincipalStore(db *sqlx.DB) *PrincipalStore {
	return &PrincipalStore{db: db}
}

func (s *PrincipalStore) Create(ctx context.Context, principal *domain.Principal) error {
	query := `
		INSERT INTO principals (id, username, password_hash, created_at)
		VALUES ($1, $2, $3, $4)`

	_, err := s.db.ExecContext(ctx, query,
		principal.ID,
		principal.Username,
		principal.PasswordHash,
		principal.CreatedAt,
	)
	return err
}

func (s *PrincipalStore) GetByUsername(ctx context.Context, username string) (*domain.Principal, error) {
	query := `
		SELECT id, username, password_hash, created_at
		FROM principals
		WHERE username = $1`

	var principal domain.Principal
	err := s.db.GetContext(ctx, &principal, query, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &principal, nil
}

func (s *PrincipalStore) GetByID(ctx context.Context, id string) (*domain.Principal, error) {
	query := `
		SELECT id, username, password_hash, created_at
		FROM principals
		WHERE id = $1`

	var principal domain.Principal
	err := s.db.GetContext(ctx, &principal, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &principal, nil
}

func (s *PrincipalStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM principals")
	return count, err
}
