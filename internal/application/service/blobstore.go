package service

import (
	"context"
	"io"
)

// BlobStore is the durable binary asset boundary. Put returns the durable
// URL for the stored bytes. Delete takes that URL back; deleting a URL that
// no longer exists must be reported as success so cleanup stays idempotent.
type BlobStore interface {
	Put(ctx context.Context, data io.Reader, folder, publicID string) (string, error)
	Delete(ctx context.Context, url string) error
}
