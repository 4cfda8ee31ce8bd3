package repository

import "context"

// ObjectStore reads and writes report artifacts.
type ObjectStore interface {
	// PutObject stores body under key and returns its location (s3://bucket/key or a file path).
	PutObject(ctx context.Context, bucket, key string, body []byte, contentType string) (string, error)
	GetObject(ctx context.Context, bucket, key string) ([]byte, error)
}

// Notifier announces a published report. Implementations may be no-ops.
type Notifier interface {
	Notify(ctx context.Context, subject, message string) error
}
