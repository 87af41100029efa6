// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"
	"io"

	"safepost/internal/domain/service"
)

// UploadFileInput carries one uploaded image.
type UploadFileInput struct {
	Kind             service.FileKind
	OriginalFilename string
	ContentType      string
	Size             int64
	Content          io.Reader
}

// UploadFileOutput returns the stored object's addressable location.
type UploadFileOutput struct {
	URL      string // Relative URL the API serves the file under.
	Filename string
	Size     int64
}

// FileUsecase defines the interface for upload and download of image assets.
type FileUsecase interface {
	// UploadImage validates and stores an image. Only JPEG, PNG, GIF and WebP
	// are accepted, capped at the configured size limit.
	UploadImage(ctx context.Context, input *UploadFileInput) (*UploadFileOutput, error)

	// OpenImage returns a reader over a stored image plus its content type.
	OpenImage(ctx context.Context, kind service.FileKind, filename string) (io.ReadCloser, string, error)

	// DeleteImage removes a stored image.
	DeleteImage(ctx context.Context, kind service.FileKind, filename string) error
}
