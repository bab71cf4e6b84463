//go:build integration

package postgres

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"blog_cms/internal/domain"
	"blog_cms/testdata/utils"
)

type PostgresIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *postgres.PostgresContainer
	db        *sqlx.DB
}

func (s *PostgresIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	migrationsPath, err := filepath.Abs("../../../migrations")
	s.Require().NoError(err)

	container, err := postgres.Run(s.ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		postgres.WithInitScripts(
			filepath.Join(migrationsPath, "001_create_articles.up.sql"),
			filepath.Join(migrationsPath, "002_create_principals.up.sql"),
			filepath.Join(migrationsPath, "003_create_files.up.sql"),
		),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := sqlx.Connect("postgres", connStr)
	s.Require().NoError(err)
	s.db = db
}

func (s *PostgresIntegrationSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *PostgresIntegrationSuite) SetupTest() {
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM files")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM principals")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM articles")
}

func TestPostgresIntegrationSuite(t *testing.T) {
	suite.Run(t, new(PostgresIntegrationSuite))
}

func (s *PostgresIntegrationSuite) newArticle(title, slug string) *domain.Article {
	now := time.Now().Truncate(time.Microsecond)
	return &domain.Article{
		ID:          uuid.NewString(),
		Title:       title,
		Slug:        slug,
		Content:     "<p>body</p>",
		Excerpt:     utils.Ptr("short summary"),
		CoverImage:  utils.Ptr("/uploads/cover.jpg"),
		IsPublished: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (s *PostgresIntegrationSuite) TestArticleStore_CreateAndGet() {
	store := NewArticleStore(s.db)

	article := s.newArticle("Test Article", "test-article")
	s.Require().NoError(store.Create(s.ctx, article))

	got, err := store.GetByID(s.ctx, article.ID)
	s.Require().NoError(err)
	s.Equal(article.Title, got.Title)
	s.Equal(article.Slug, got.Slug)
	s.Equal(article.Content, got.Content)
	s.Equal(*article.Excerpt, *got.Excerpt)
	s.True(got.IsPublished)
}

func (s *PostgresIntegrationSuite) TestArticleStore_GetByID_NotFound() {
	store := NewArticleStore(s.db)

	_, err := store.GetByID(s.ctx, uuid.NewString())
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *PostgresIntegrationSuite) TestArticleStore_List_NewestFirstWithoutContent() {
	store := NewArticleStore(s.db)

	older := s.newArticle("Older", "older")
	older.CreatedAt = older.CreatedAt.Add(-time.Hour)
	older.UpdatedAt = older.CreatedAt
	newer := s.newArticle("Newer", "newer")

	s.Require().NoError(store.Create(s.ctx, older))
	s.Require().NoError(store.Create(s.ctx, newer))

	summaries, err := store.List(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(summaries, 2)
	s.Equal("Newer", summaries[0].Title)
	s.Equal("Older", summaries[1].Title)

	limited, err := store.List(s.ctx, 1)
	s.Require().NoError(err)
	s.Len(limited, 1)
}

func (s *PostgresIntegrationSuite) TestArticleStore_Update() {
	store := NewArticleStore(s.db)

	article := s.newArticle("Before", "before")
	s.Require().NoError(store.Create(s.ctx, article))

	article.Title = "After"
	article.Slug = "after"
	article.UpdatedAt = time.Now().Truncate(time.Microsecond)
	s.Require().NoError(store.Update(s.ctx, article))

	got, err := store.GetByID(s.ctx, article.ID)
	s.Require().NoError(err)
	s.Equal("After", got.Title)
	s.Equal("after", got.Slug)
	s.True(got.UpdatedAt.After(got.CreatedAt) || got.UpdatedAt.Equal(got.CreatedAt))
}

func (s *PostgresIntegrationSuite) TestArticleStore_Update_NotFound() {
	store := NewArticleStore(s.db)

	missing := s.newArticle("Ghost", "ghost")
	s.ErrorIs(store.Update(s.ctx, missing), domain.ErrNotFound)
}

func (s *PostgresIntegrationSuite) TestArticleStore_DeleteThenGet() {
	store := NewArticleStore(s.db)

	article := s.newArticle("Doomed", "doomed")
	s.Require().NoError(store.Create(s.ctx, article))

	s.Require().NoError(store.Delete(s.ctx, article.ID))

	_, err := store.GetByID(s.ctx, article.ID)
	s.ErrorIs(err, domain.ErrNotFound)

	s.ErrorIs(store.Delete(s.ctx, article.ID), domain.ErrNotFound)
}

func (s *PostgresIntegrationSuite) TestArticleStore_SlugExists() {
	store := NewArticleStore(s.db)

	article := s.newArticle("Taken", "taken")
	s.Require().NoError(store.Create(s.ctx, article))

	exists, err := store.SlugExists(s.ctx, "taken", "")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = store.SlugExists(s.ctx, "taken", article.ID)
	s.Require().NoError(err)
	s.False(exists)

	exists, err = store.SlugExists(s.ctx, "free", "")
	s.Require().NoError(err)
	s.False(exists)
}

// Concurrent updates are last-write-wins: the row ends up holding exactly
// one of the competing titles, never a mixture.
func (s *PostgresIntegrationSuite) TestArticleStore_ConcurrentUpdate_LastWriteWins() {
	store := NewArticleStore(s.db)

	article := s.newArticle("Original", "original")
	s.Require().NoError(store.Create(s.ctx, article))

	titles := []string{"First Writer", "Second Writer"}
	slugs := []string{"first-writer", "second-writer"}

	var wg sync.WaitGroup
	for i := range titles {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			update := *article
			update.Title = titles[i]
			update.Slug = slugs[i]
			update.UpdatedAt = time.Now()
			_ = store.Update(s.ctx, &update)
		}(i)
	}
	wg.Wait()

	got, err := store.GetByID(s.ctx, article.ID)
	s.Require().NoError(err)
	s.Contains(titles, got.Title)
	s.Contains(slugs, got.Slug)
}

func (s *PostgresIntegrationSuite) TestPrincipalStore_Lifecycle() {
	store := NewPrincipalStore(s.db)

	count, err := store.Count(s.ctx)
	s.Require().NoError(err)
	s.EqualValues(0, count)

	principal := &domain.Principal{
		ID:           uuid.NewString(),
		Username:     "admin",
		PasswordHash: "$2a$10$fakefakefakefakefakefake",
		CreatedAt:    time.Now().Truncate(time.Microsecond),
	}
	s.Require().NoError(store.Create(s.ctx, principal))

	count, err = store.Count(s.ctx)
	s.Require().NoError(err)
	s.EqualValues(1, count)

	byName, err := store.GetByUsername(s.ctx, "admin")
	s.Require().NoError(err)
	s.Equal(principal.ID, byName.ID)
	s.Equal(principal.PasswordHash, byName.PasswordHash)

	byID, err := store.GetByID(s.ctx, principal.ID)
	s.Require().NoError(err)
	s.Equal("admin", byID.Username)

	_, err = store.GetByUsername(s.ctx, "nobody")
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *PostgresIntegrationSuite) TestFileStore_Create() {
	store := NewFileStore(s.db)

	file := &domain.StoredFile{
		ID:         uuid.NewString(),
		Filename:   "cat.jpg",
		URL:        "/uploads/abc123.jpg",
		Size:       2048,
		MimeType:   "image/jpeg",
		UploadedAt: time.Now().Truncate(time.Microsecond),
	}
	s.Require().NoError(store.Create(s.ctx, file))

	var count int
	s.Require().NoError(s.db.GetContext(s.ctx, &count, "SELECT COUNT(*) FROM files"))
	s.Equal(1, count)
}

func (s *PostgresIntegrationSuite) TestTransactionManager_RollsBackOnError() {
	store := NewArticleStore(s.db)
	tm := NewTransactionManager(s.db)

	article := s.newArticle("Rolled Back", "rolled-back")

	err := tm.WithTransaction(s.ctx, func(txCtx context.Context) error {
		if err := store.Create(txCtx, article); err != nil {
			return err
		}
		return domain.ErrStorage
	})
	s.ErrorIs(err, domain.ErrStorage)

	_, err = store.GetByID(s.ctx, article.ID)
	s.ErrorIs(err, domain.ErrNotFound)
}
