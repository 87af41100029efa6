package handler

import (
	"log/slog"
	"net/http"

	"safepost/internal/delivery/http/response"
	"safepost/internal/domain/service"
	"safepost/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// cacheControlImmutable is sent with stored assets: filenames are generated
// UUIDs, so a given URL never changes content.
const cacheControlImmutable = "public, max-age=31536000, immutable"

// FileHandler holds dependencies for image upload and download handlers.
type FileHandler struct {
	uc     usecase.FileUsecase
	logger *slog.Logger
}

// NewFileHandler is the constructor for FileHandler, injected by Fx.
func NewFileHandler(uc usecase.FileUsecase, logger *slog.Logger) *FileHandler {
	return &FileHandler{
		uc:     uc,
		logger: logger,
	}
}

// pathKind parses the :kind path parameter into a storage kind.
func pathKind(c echo.Context) (service.FileKind, error) {
	switch kind := service.FileKind(c.Param("kind")); kind {
	case service.FileKindCover, service.FileKindAvatar:
		return kind, nil
	default:
		return "", response.NotFound(c, "FILE_NOT_FOUND", "Unknown file kind")
	}
}

// Upload stores one multipart image under the requested kind.
func (h *FileHandler) Upload(c echo.Context) error {
	kind, err := pathKind(c)
	if err != nil || kind == "" {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Multipart field 'file' is required")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return errors.Wrap(err, "open multipart file")
	}
	defer src.Close()

	output, err := h.uc.UploadImage(c.Request().Context(), &usecase.UploadFileInput{
		Kind:             kind,
		OriginalFilename: fileHeader.Filename,
		ContentType:      fileHeader.Header.Get(echo.HeaderContentType),
		Size:             fileHeader.Size,
		Content:          src,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, &UploadView{
		URL:      output.URL,
		Filename: output.Filename,
		Size:     output.Size,
	}, "File uploaded successfully")
}

// Serve streams a stored image back to the client.
func (h *FileHandler) Serve(c echo.Context) error {
	kind, err := pathKind(c)
	if err != nil || kind == "" {
		return err
	}

	reader, contentType, err := h.uc.OpenImage(c.Request().Context(), kind, c.Param("filename"))
	if err != nil {
		return errors.WithStack(err)
	}
	defer reader.Close()

	c.Response().Header().Set("Cache-Control", cacheControlImmutable)

	return c.Stream(http.StatusOK, contentType, reader)
}

// Delete removes a stored image.
func (h *FileHandler) Delete(c echo.Context) error {
	kind, err := pathKind(c)
	if err != nil || kind == "" {
		return err
	}

	if err := h.uc.DeleteImage(c.Request().Context(), kind, c.Param("filename")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "File deleted successfully")
}
