package storage

import (
	"context"
	"io"
)

// FileStorage persists captured face images: the reference samples kept after
// enrollment and the proof shot attached to every attendance record.
type FileStorage interface {
	// Upload writes a file and returns the stored path/key
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Delete removes a file
	Delete(ctx context.Context, path string) error

	// URL returns the public URL for a stored path
	URL(path string) string
}
