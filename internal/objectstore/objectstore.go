// Package objectstore provides durable blob storage for raw uploads.
package objectstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_object_store.go -package=mocks docsearch/internal/objectstore ObjectStore

import "context"

// ObjectStore is durable blob storage keyed by bucket and object key.
type ObjectStore interface {
	// EnsureBucket creates the bucket if it does not exist. Idempotent and
	// safe to call concurrently.
	EnsureBucket(ctx context.Context, bucket string) error
	// Put stores content under bucket/key and returns the storage path
	// ("<bucket>/<key>").
	Put(ctx context.Context, bucket, key string, content []byte, contentType string) (string, error)
}
