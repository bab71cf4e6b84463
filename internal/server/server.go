// Package server exposes the content, auth, and upload services over HTTP.
package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"blog_cms/internal/config"
	"blog_cms/internal/domain"
)

// ContentService is the article lifecycle surface the handlers need.
type ContentService interface {
	List(ctx context.Context, limit int) ([]domain.ArticleSummary, error)
	Get(ctx context.Context, id string) (*domain.Article, error)
	Create(ctx context.Context, input domain.ArticleInput) (*domain.Article, error)
	Update(ctx context.Context, id string, input domain.ArticleInput) (*domain.Article, error)
	Delete(ctx context.Context, id string) error
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *domain.Principal, error)
	Verify(ctx context.Context, tokenStr string) (*domain.AuthContext, error)
}

type UploadService interface {
	Upload(ctx context.Context, filename, declaredMime string, data []byte) (*domain.StoredFile, error)
}

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return domain.ValidationError("request", err.Error())
	}
	return nil
}

// New builds the echo instance with all routes mounted. Mutating routes
// sit behind RequireAuth; reads and login are public.
func New(
	content ContentService,
	auth AuthService,
	upload UploadService,
	logger *slog.Logger,
	cfg config.ServerConfig,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &requestValidator{validate: validator.New()}

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(requestLogger(logger))

	articles := NewArticleHandler(content, upload, logger)
	authHandler := NewAuthHandler(auth, logger)
	uploads := NewUploadHandler(upload, logger)

	requireAuth := RequireAuth(auth)

	api := e.Group("/api")
	api.GET("/articles", articles.List)
	api.GET("/articles/:id", articles.Get)
	api.POST("/articles", articles.Create, requireAuth)
	api.PUT("/articles/:id", articles.Update, requireAuth)
	api.DELETE("/articles/:id", articles.Delete, requireAuth)

	api.POST("/auth/login", authHandler.Login)
	api.POST("/upload-image", uploads.Upload, requireAuth)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	e.Static("/uploads", cfg.UploadDir)

	return e
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
			}
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error)
				logger.Error("request", attrs...)
				return nil
			}
			logger.Info("request", attrs...)
			return nil
		},
	})
}
