package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"blog_cms/internal/domain"
)

type ArticleStore struct {
	db *sqlx.DB
}

func NewArticleStore(db *sqlx.DB) *ArticleStore {
	return &ArticleStore{db: db}
}

func (s *ArticleStore) Create(ctx context.Context, article *domain.Article) error {
	query := `
		INSERT INTO articles (
			id, title, slug, content, excerpt, cover_image, is_published,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, query,
		article.ID,
		article.Title,
		article.Slug,
		article.Content,
		article.Excerpt,
		article.CoverImage,
		article.IsPublished,
		article.CreatedAt,
		article.UpdatedAt,
	)
	return err
}

func (s *ArticleStore) GetByID(ctx context.Context, id string) (*domain.Article, error) {
	query := `
		SELECT id, title, slug, content, excerpt, cover_image, is_published,
		       created_at, updated_at
		FROM articles
		WHERE id = $1`

	var article domain.Article
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &article, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// List returns summaries newest-first. The content body is deliberately
// not selected. limit <= 0 means no limit.
func (s *ArticleStore) List(ctx context.Context, limit int) ([]domain.ArticleSummary, error) {
	query := `
		SELECT id, title, slug, excerpt, cover_image, is_published,
		       created_at, updated_at
		FROM articles
		ORDER BY created_at DESC`

	var summaries []domain.ArticleSummary
	var err error
	if limit > 0 {
		err = s.db.SelectContext(ctx, &summaries, query+" LIMIT $1", limit)
	} else {
		err = s.db.SelectContext(ctx, &summaries, query)
	}
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// Update overwrites the full record. Last write wins; there is no
// optimistic concurrency token.
func (s *ArticleStore) Update(ctx context.Context, article *domain.Article) error {
	query := `
		UPDATE articles SET
			title = $2,
			slug = $3,
			content = $4,
			excerpt = $5,
			cover_image = $6,
			is_published = $7,
			updated_at = $8
		WHERE id = $1`

	res, err := GetExecutor(ctx, s.db).ExecContext(ctx, query,
		article.ID,
		article.Title,
		article.Slug,
		article.Content,
		article.Excerpt,
		article.CoverImage,
		article.IsPublished,
		article.UpdatedAt,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *ArticleStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM articles WHERE id = $1", id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SlugExists reports whether another article already holds the slug.
// excludeID skips the record being updated.
func (s *ArticleStore) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM articles WHERE slug = $1 AND id <> $2)`

	var exists bool
	row := GetExecutor(ctx, s.db).QueryRowxContext(ctx, query, slug, excludeID)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
