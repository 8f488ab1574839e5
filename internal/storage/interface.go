package storage

import (
	"context"
	"io"
)

// ArtifactStore abstracts where model artifacts live. The serving
// process only reads; the offline trainer also writes.
type ArtifactStore interface {
	// Fetch opens an artifact for reading. The caller closes it.
	Fetch(ctx context.Context, key string) (io.ReadCloser, error)

	// Store uploads or overwrites an artifact.
	Store(ctx context.Context, key string, reader io.Reader, size int64) error

	// Exists checks whether an artifact is present.
	Exists(ctx context.Context, key string) (bool, error)
}
