package service

import (
	"context"
	"errors"
	"io"
)

// ErrFileNotFound is returned when a stored object does not exist.
var ErrFileNotFound = errors.New("file not found")

// StoredFile describes an object persisted by the storage backend.
type StoredFile struct {
	Filename    string // Generated, unique object name within its kind.
	Size        int64
	ContentType string
}

// FileKind selects the logical bucket prefix an asset is stored under.
type FileKind string

const (
	// FileKindCover is a post cover image.
	FileKindCover FileKind = "covers"
	// FileKindAvatar is a user avatar image.
	FileKindAvatar FileKind = "avatars"
)

// FileStorage defines the interface for storing and serving uploaded assets.
// Implementations decide the physical backend (local directory, object store).
type FileStorage interface {
	// Store writes the content under a freshly generated unique name and
	// returns its metadata. The original filename is only consulted for its
	// extension.
	Store(ctx context.Context, kind FileKind, originalFilename, contentType string, size int64, content io.Reader) (*StoredFile, error)

	// Open returns a reader over a stored object. Returns ErrFileNotFound
	// when the object does not exist.
	Open(ctx context.Context, kind FileKind, filename string) (io.ReadCloser, error)

	// Delete removes a stored object. Deleting a missing object is not an error.
	Delete(ctx context.Context, kind FileKind, filename string) error
}
