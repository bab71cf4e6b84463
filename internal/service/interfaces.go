package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"blog_cms/internal/domain"
	"blog_cms/internal/imaging"
	"blog_cms/internal/token"
)

type ArticleStore interface {
	Create(ctx context.Context, article *domain.Article) error
	GetByID(ctx context.Context, id string) (*domain.Article, error)
	List(ctx context.Context, limit int) ([]domain.ArticleSummary, error)
	Update(ctx context.Context, article *domain.Article) error
	Delete(ctx context.Context, id string) error
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
}

type PrincipalStore interface {
	Create(ctx context.Context, principal *domain.Principal) error
	GetByUsername(ctx context.Context, username string) (*domain.Principal, error)
	GetByID(ctx context.Context, id string) (*domain.Principal, error)
	Count(ctx context.Context) (int64, error)
}

type FileStore interface {
	Create(ctx context.Context, file *domain.StoredFile) error
}

type BlobStore interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
}

type ImageProcessor interface {
	Process(data []byte, mimeType string) (*imaging.Result, error)
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type EventPublisher interface {
	PublishArticleEvent(ctx context.Context, action string, article *domain.Article) error
	Close() error
}

type TokenIssuer interface {
	Issue(principalID, username string) (string, error)
	Verify(tokenStr string) (*token.Claims, error)
}
