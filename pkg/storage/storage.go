package storage

import "context"

// ObjectStorage stores raw document bytes and hands back an opaque
// reference (the object key) used as the document's content location.
type ObjectStorage interface {
	Put(ctx context.Context, key string, content []byte, contentType string) (string, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}
