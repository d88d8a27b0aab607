package storage

import (
	"context"
	"io"
	"time"
)

// FileStorage persists uploaded proof photos and announcement images.
type FileStorage interface {
	// Upload writes the file under the given key and returns the stored key.
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Delete removes a stored file. Deleting a missing file is not an error.
	Delete(ctx context.Context, path string) error

	// GetURL returns a URL the frontend can fetch the file from. The expiry
	// only matters for signed backends; local storage ignores it.
	GetURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}
