package impl

import (
	"context"
	"io"
	"log/slog"
	"mime"
	"path/filepath"

	"safepost/config"
	domainerrors "safepost/internal/domain/errors"
	"safepost/internal/domain/service"
	"safepost/internal/usecase"

	"github.com/pkg/errors"
)

const defaultMaxFileSizeBytes = 5 << 20 // 5 MiB

// allowedImageTypes lists the accepted upload content types.
var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
}

// fileService implements the FileUsecase interface.
type fileService struct {
	storage  service.FileStorage
	maxBytes int64
	logger   *slog.Logger
}

// NewFileService is the constructor for fileService.
func NewFileService(
	storage service.FileStorage,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.FileUsecase {
	maxBytes := int64(defaultMaxFileSizeBytes)
	if cfg != nil && cfg.Upload != nil && cfg.Upload.MaxFileSizeBytes > 0 {
		maxBytes = cfg.Upload.MaxFileSizeBytes
	}

	return &fileService{
		storage:  storage,
		maxBytes: maxBytes,
		logger:   logger,
	}
}

// UploadImage validates and stores an image.
func (srv *fileService) UploadImage(ctx context.Context, input *usecase.UploadFileInput) (*usecase.UploadFileOutput, error) {
	if _, ok := allowedImageTypes[input.ContentType]; !ok {
		return nil, domainerrors.ErrInvalidFile.WrapMessage("unsupported content type " + input.ContentType)
	}
	if input.Size <= 0 || input.Size > srv.maxBytes {
		return nil, domainerrors.ErrInvalidFile.WrapMessage("file size out of bounds")
	}

	// Cap the read at the declared size so a lying Content-Length can't
	// smuggle in a larger body.
	limited := io.LimitReader(input.Content, srv.maxBytes)

	stored, err := srv.storage.Store(ctx, input.Kind, input.OriginalFilename, input.ContentType, input.Size, limited)
	if err != nil {
		srv.logger.Error("Failed to store uploaded image", "kind", input.Kind, "error", err)

		return nil, domainerrors.ErrFileStorageFailed.WrapMessage("upload failed")
	}
	srv.logger.Info("Stored uploaded image", "kind", input.Kind, "filename", stored.Filename, "size", stored.Size)

	return &usecase.UploadFileOutput{
		URL:      "/api/v1/files/" + string(input.Kind) + "/" + stored.Filename,
		Filename: stored.Filename,
		Size:     stored.Size,
	}, nil
}

// OpenImage returns a reader over a stored image plus its content type,
// derived from the stored extension.
func (srv *fileService) OpenImage(ctx context.Context, kind service.FileKind, filename string) (io.ReadCloser, string, error) {
	reader, err := srv.storage.Open(ctx, kind, filename)
	if err != nil {
		if errors.Is(err, service.ErrFileNotFound) {
			return nil, "", domainerrors.ErrFileNotFound.WrapMessage("image lookup failed")
		}

		return nil, "", errors.Wrap(err, "failed to open image")
	}

	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return reader, contentType, nil
}

// DeleteImage removes a stored image. Missing objects are not an error.
func (srv *fileService) DeleteImage(ctx context.Context, kind service.FileKind, filename string) error {
	if err := srv.storage.Delete(ctx, kind, filename); err != nil {
		srv.logger.Error("Failed to delete image", "kind", kind, "filename", filename, "error", err)

		return domainerrors.ErrFileStorageFailed.WrapMessage("deletion failed")
	}

	return nil
}
