package impl

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"safepost/config"
	domainerrors "safepost/internal/domain/errors"
	"safepost/internal/domain/service"
	mockService "safepost/internal/mocks/service"
	"safepost/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestFileService(t *testing.T) (usecase.FileUsecase, *mockService.MockFileStorage) {
	storage := mockService.NewMockFileStorage(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewFileService(storage, &config.Config{}, logger), storage
}

func TestFileService_UploadImage_Success(t *testing.T) {
	service2, storage := createTestFileService(t)
	ctx := context.Background()

	content := strings.NewReader("png bytes")
	storage.On("Store", ctx, service.FileKindCover, "cover.png", "image/png", int64(9), mock.Anything).
		Return(&service.StoredFile{Filename: "generated.png", Size: 9, ContentType: "image/png"}, nil)

	output, err := service2.UploadImage(ctx, &usecase.UploadFileInput{
		Kind:             service.FileKindCover,
		OriginalFilename: "cover.png",
		ContentType:      "image/png",
		Size:             9,
		Content:          content,
	})

	require.NoError(t, err)
	assert.Equal(t, "/api/v1/files/covers/generated.png", output.URL)
	assert.Equal(t, "generated.png", output.Filename)
}

func TestFileService_UploadImage_RejectsContentType(t *testing.T) {
	service2, _ := createTestFileService(t)

	output, err := service2.UploadImage(context.Background(), &usecase.UploadFileInput{
		Kind:             service.FileKindCover,
		OriginalFilename: "report.pdf",
		ContentType:      "application/pdf",
		Size:             100,
		Content:          strings.NewReader("pdf"),
	})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidFile)
}

func TestFileService_UploadImage_RejectsOversize(t *testing.T) {
	service2, _ := createTestFileService(t)

	output, err := service2.UploadImage(context.Background(), &usecase.UploadFileInput{
		Kind:             service.FileKindAvatar,
		OriginalFilename: "huge.png",
		ContentType:      "image/png",
		Size:             6 << 20, // Over the 5 MiB default cap.
		Content:          strings.NewReader("x"),
	})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidFile)
}

func TestFileService_OpenImage_DerivesContentType(t *testing.T) {
	service2, storage := createTestFileService(t)
	ctx := context.Background()

	storage.On("Open", ctx, service.FileKindAvatar, "me.jpg").
		Return(io.NopCloser(strings.NewReader("jpeg bytes")), nil)

	reader, contentType, err := service2.OpenImage(ctx, service.FileKindAvatar, "me.jpg")

	require.NoError(t, err)
	defer reader.Close()
	assert.Equal(t, "image/jpeg", contentType)
}

func TestFileService_OpenImage_Missing(t *testing.T) {
	service2, storage := createTestFileService(t)
	ctx := context.Background()

	storage.On("Open", ctx, service.FileKindCover, "gone.png").
		Return(nil, service.ErrFileNotFound)

	reader, _, err := service2.OpenImage(ctx, service.FileKindCover, "gone.png")

	assert.Nil(t, reader)
	assert.ErrorIs(t, err, domainerrors.ErrFileNotFound)
}
