package server

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

type UploadHandler struct {
	upload UploadService
	logger *slog.Logger
}

func NewUploadHandler(upload UploadService, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{
		upload: upload,
		logger: logger.With("handler", "upload"),
	}
}

// Upload accepts a multipart form with an "image" part and returns the
// stored file record including its public URL.
func (h *UploadHandler) Upload(c echo.Context) error {
	header, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "image part is required")
	}

	src, err := header.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable image part")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable image part")
	}

	stored, err := h.upload.Upload(
		c.Request().Context(),
		header.Filename,
		header.Header.Get(echo.HeaderContentType),
		data,
	)
	if err != nil {
		return mapDomainError(err)
	}

	return c.JSON(http.StatusOK, stored)
}
