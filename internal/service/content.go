package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"blog_cms/internal/config"
	"blog_cms/internal/domain"
	"blog_cms/internal/publisher"
	"blog_cms/internal/render"
	"blog_cms/internal/slug"
)

// ContentService owns the article lifecycle: validation, slug derivation,
// content sanitization, and write-through persistence.
type ContentService struct {
	articles  ArticleStore
	txManager TransactionManager
	events    EventPublisher
	sanitizer *bluemonday.Policy
	logger    *slog.Logger
	config    config.ContentConfig
}

// NewContentService wires the content service. events may be nil when
// lifecycle fan-out is disabled.
func NewContentService(
	articles ArticleStore,
	txManager TransactionManager,
	events EventPublisher,
	logger *slog.Logger,
	cfg config.ContentConfig,
) *ContentService {
	return &ContentService{
		articles:  articles,
		txManager: txManager,
		events:    events,
		sanitizer: bluemonday.UGCPolicy(),
		logger:    logger.With("service", "content"),
		config:    cfg,
	}
}

// List returns article summaries newest-first. limit <= 0 returns all.
func (s *ContentService) List(ctx context.Context, limit int) ([]domain.ArticleSummary, error) {
	summaries, err := s.articles.List(ctx, limit)
	if err != nil {
		s.logger.Error("list articles", "error", err)
		return nil, fmt.Errorf("%w: list articles", domain.ErrStorage)
	}
	if summaries == nil {
		summaries = []domain.ArticleSummary{}
	}
	return summaries, nil
}

func (s *ContentService) Get(ctx context.Context, id string) (*domain.Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return article, nil
}

func (s *ContentService) Create(ctx context.Context, input domain.ArticleInput) (*domain.Article, error) {
	title := deref(input.Title)
	content := deref(input.Content)

	if strings.TrimSpace(title) == "" {
		return nil, domain.ValidationError("title", "is required")
	}
	if strings.TrimSpace(content) == "" {
		return nil, domain.ValidationError("content", "is required")
	}
	if s.config.RequireCoverImage && deref(input.CoverImage) == "" {
		return nil, domain.ValidationError("coverImage", "is required")
	}

	now := time.Now().UTC()
	article := &domain.Article{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(title),
		Content:     s.sanitizer.Sanitize(content),
		Excerpt:     s.resolveExcerpt(input.Excerpt, content),
		CoverImage:  input.CoverImage,
		IsPublished: deref(input.IsPublished),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		slugVal, err := s.resolveSlug(txCtx, article.Title, article.ID)
		if err != nil {
			return err
		}
		article.Slug = slugVal
		return s.articles.Create(txCtx, article)
	})
	if err != nil {
		s.logger.Error("create article", "error", err)
		return nil, fmt.Errorf("%w: create article", domain.ErrStorage)
	}

	s.publish(ctx, publisher.ActionCreated, article)

	s.logger.Info("article created", "id", article.ID, "slug", article.Slug)
	return article, nil
}

// Update merges only the supplied fields into the stored record. The slug
// is re-derived whenever a title is supplied; client slug fields are never
// honored.
func (s *ContentService) Update(ctx context.Context, id string, input domain.ArticleInput) (*domain.Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, domain.ValidationError("title", "must not be empty")
		}
		article.Title = strings.TrimSpace(*input.Title)
	}
	if input.Content != nil {
		if strings.TrimSpace(*input.Content) == "" {
			return nil, domain.ValidationError("content", "must not be empty")
		}
		article.Content = s.sanitizer.Sanitize(*input.Content)
	}
	if input.Excerpt != nil {
		article.Excerpt = input.Excerpt
	}
	if input.CoverImage != nil {
		article.CoverImage = input.CoverImage
	}
	if input.IsPublished != nil {
		article.IsPublished = *input.IsPublished
	}
	article.UpdatedAt = time.Now().UTC()

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if input.Title != nil {
			slugVal, err := s.resolveSlug(txCtx, article.Title, article.ID)
			if err != nil {
				return err
			}
			article.Slug = slugVal
		}
		return s.articles.Update(txCtx, article)
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		s.logger.Error("update article", "id", id, "error", err)
		return nil, fmt.Errorf("%w: update article", domain.ErrStorage)
	}

	s.publish(ctx, publisher.ActionUpdated, article)

	s.logger.Info("article updated", "id", article.ID, "slug", article.Slug)
	return article, nil
}

// Delete removes the article. Deleting an already-deleted id reports
// ErrNotFound, not success.
func (s *ContentService) Delete(ctx context.Context, id string) error {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.articles.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		s.logger.Error("delete article", "id", id, "error", err)
		return fmt.Errorf("%w: delete article", domain.ErrStorage)
	}

	s.publish(ctx, publisher.ActionDeleted, article)

	s.logger.Info("article deleted", "id", id)
	return nil
}

// resolveExcerpt keeps a supplied excerpt, otherwise derives one from the
// first words of the content with markup stripped.
func (s *ContentService) resolveExcerpt(explicit *string, content string) *string {
	if explicit != nil && strings.TrimSpace(*explicit) != "" {
		return explicit
	}
	derived := render.Excerpt("", content, s.config.ExcerptWordLimit)
	if derived == "" {
		return explicit
	}
	return &derived
}

// resolveSlug derives the slug from the title and keeps it unique: an
// empty derivation falls back to the record id, a collision gets an id
// suffix. The unique index on articles.slug is the backstop.
func (s *ContentService) resolveSlug(ctx context.Context, title, articleID string) (string, error) {
	derived := slug.Derive(title)
	if derived == "" {
		derived = articleID
	}

	exists, err := s.articles.SlugExists(ctx, derived, articleID)
	if err != nil {
		return "", fmt.Errorf("check slug: %w", err)
	}
	if exists {
		suffix := articleID
		if len(suffix) > 8 {
			suffix = suffix[:8]
		}
		derived = derived + "-" + suffix
	}

	return derived, nil
}

func (s *ContentService) publish(ctx context.Context, action string, article *domain.Article) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishArticleEvent(ctx, action, article); err != nil {
		s.logger.Warn("publish article event", "action", action, "id", article.ID, "error", err)
	}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
