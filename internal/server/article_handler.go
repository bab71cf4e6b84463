package server

import (
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"blog_cms/internal/domain"
)

// ArticleHandler serves the public read endpoints and the authenticated
// mutations.
type ArticleHandler struct {
	content ContentService
	upload  UploadService
	logger  *slog.Logger
}

func NewArticleHandler(content ContentService, upload UploadService, logger *slog.Logger) *ArticleHandler {
	return &ArticleHandler{
		content: content,
		upload:  upload,
		logger:  logger.With("handler", "articles"),
	}
}

// articlePayload is the JSON body for create/update. Nil means the field
// was not supplied. A slug field is accepted for compatibility with older
// clients but never honored: slugs are derived from the title.
type articlePayload struct {
	Title       *string `json:"title"`
	Content     *string `json:"content"`
	Excerpt     *string `json:"excerpt"`
	CoverImage  *string `json:"coverImage"`
	IsPublished *bool   `json:"isPublished"`
	Slug        *string `json:"slug"`
}

func (p articlePayload) toInput() domain.ArticleInput {
	return domain.ArticleInput{
		Title:       p.Title,
		Content:     p.Content,
		Excerpt:     p.Excerpt,
		CoverImage:  p.CoverImage,
		IsPublished: p.IsPublished,
	}
}

func (h *ArticleHandler) List(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a non-negative integer")
		}
		limit = parsed
	}

	summaries, err := h.content.List(c.Request().Context(), limit)
	if err != nil {
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, summaries)
}

func (h *ArticleHandler) Get(c echo.Context) error {
	article, err := h.content.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, article)
}

func (h *ArticleHandler) Create(c echo.Context) error {
	input, err := h.bindInput(c)
	if err != nil {
		return err
	}

	article, err := h.content.Create(c.Request().Context(), input)
	if err != nil {
		return mapDomainError(err)
	}
	return c.JSON(http.StatusCreated, article)
}

func (h *ArticleHandler) Update(c echo.Context) error {
	input, err := h.bindInput(c)
	if err != nil {
		return err
	}

	article, err := h.content.Update(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, article)
}

func (h *ArticleHandler) Delete(c echo.Context) error {
	if err := h.content.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "deleted"})
}

// bindInput decodes a JSON body or a multipart form. Multipart submissions
// may carry an "image" part, which is uploaded first and becomes the cover
// image URL.
func (h *ArticleHandler) bindInput(c echo.Context) (domain.ArticleInput, error) {
	ctype := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(ctype, echo.MIMEMultipartForm) {
		return h.bindMultipart(c)
	}

	var payload articlePayload
	if err := c.Bind(&payload); err != nil {
		return domain.ArticleInput{}, echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	return payload.toInput(), nil
}

func (h *ArticleHandler) bindMultipart(c echo.Context) (domain.ArticleInput, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return domain.ArticleInput{}, echo.NewHTTPError(http.StatusBadRequest, "malformed multipart form")
	}

	var input domain.ArticleInput
	input.Title = formValue(form, "title")
	input.Content = formValue(form, "content")
	input.Excerpt = formValue(form, "excerpt")
	input.CoverImage = formValue(form, "coverImage")

	if raw := formValue(form, "isPublished"); raw != nil {
		published, err := strconv.ParseBool(*raw)
		if err != nil {
			return domain.ArticleInput{}, echo.NewHTTPError(http.StatusBadRequest, "isPublished must be a boolean")
		}
		input.IsPublished = &published
	}

	if files := form.File["image"]; len(files) > 0 {
		stored, err := h.uploadPart(c, files[0])
		if err != nil {
			return domain.ArticleInput{}, err
		}
		input.CoverImage = &stored.URL
	}

	return input, nil
}

func (h *ArticleHandler) uploadPart(c echo.Context, header *multipart.FileHeader) (*domain.StoredFile, error) {
	src, err := header.Open()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "unreadable image part")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "unreadable image part")
	}

	stored, err := h.upload.Upload(
		c.Request().Context(),
		header.Filename,
		header.Header.Get(echo.HeaderContentType),
		data,
	)
	if err != nil {
		return nil, mapDomainError(err)
	}
	return stored, nil
}

func formValue(form *multipart.Form, key string) *string {
	values, ok := form.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}
