package port

import (
	"context"
	"io"
)

// ObjectStorage stores binary blobs (profile images) addressed by key
// and returns a URL clients can fetch them from.
type ObjectStorage interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, key string) error
}
