// Package storage implements the domain FileStorage interface on top of
// gocloud.dev blob buckets, so the physical backend (local directory, S3)
// is a configuration concern, not a code one.
package storage

import (
	"context"
	"io"
	"path"
	"path/filepath"
	"strings"

	"safepost/config"
	"safepost/internal/domain/lifecycle"
	"safepost/internal/domain/service"
	"safepost/internal/errors"

	"github.com/google/uuid"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // Register the file:// scheme.
	_ "gocloud.dev/blob/s3blob"   // Register the s3:// scheme.
	"gocloud.dev/gcerrors"
)

// blobStorage stores uploaded assets in a single bucket, namespaced by kind.
type blobStorage struct {
	bucket *blob.Bucket
}

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
}

// New opens the configured bucket and binds its lifetime to the application.
func New(params Params) (service.FileStorage, error) {
	bucketURL := defaultBucketURL
	if params.Config.Upload != nil && params.Config.Upload.BucketURL != "" {
		bucketURL = params.Config.Upload.BucketURL
	}

	openCtx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	bucket, err := blob.OpenBucket(openCtx, bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %q", bucketURL)
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	return &blobStorage{bucket: bucket}, nil
}

const defaultBucketURL = "file://./uploads"

// Store writes the content under a freshly generated unique name.
func (s *blobStorage) Store(ctx context.Context, kind service.FileKind, originalFilename, contentType string, size int64, content io.Reader) (*service.StoredFile, error) {
	filename := uuid.New().String() + normalizeExtension(originalFilename)
	key := objectKey(kind, filename)

	writer, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open writer for %q", key)
	}

	written, err := io.Copy(writer, content)
	if err != nil {
		_ = writer.Close()

		return nil, errors.Wrapf(err, "failed to write %q", key)
	}
	if err := writer.Close(); err != nil {
		return nil, errors.Wrapf(err, "failed to finalize %q", key)
	}

	if size <= 0 {
		size = written
	}

	return &service.StoredFile{
		Filename:    filename,
		Size:        size,
		ContentType: contentType,
	}, nil
}

// Open returns a reader over a stored object.
func (s *blobStorage) Open(ctx context.Context, kind service.FileKind, filename string) (io.ReadCloser, error) {
	key := objectKey(kind, filename)

	reader, err := s.bucket.NewReader(ctx, key, nil)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, service.ErrFileNotFound
		}

		return nil, errors.Wrapf(err, "failed to open %q", key)
	}

	return reader, nil
}

// Delete removes a stored object. Deleting a missing object is not an error.
func (s *blobStorage) Delete(ctx context.Context, kind service.FileKind, filename string) error {
	key := objectKey(kind, filename)

	if err := s.bucket.Delete(ctx, key); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil
		}

		return errors.Wrapf(err, "failed to delete %q", key)
	}

	return nil
}

// objectKey builds the bucket key, flattening the filename so a crafted name
// can never escape its kind prefix.
func objectKey(kind service.FileKind, filename string) string {
	return path.Join(string(kind), path.Base(filename))
}

// normalizeExtension extracts a safe, lowercase extension from the uploaded name.
func normalizeExtension(originalFilename string) string {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	if ext == "" || len(ext) > 10 {
		return ""
	}

	return ext
}
