package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrMissingSigner indicates signed URL support is not configured.
var ErrMissingSigner = errors.New("storage: signed url signer not configured")

// Storage is the object store used for book covers. Objects are uploaded by
// clients through presigned URLs, so the application only inspects, signs
// and deletes them.
type Storage interface {
	io.Closer

	// StatObject returns object metadata. A missing object yields
	// goerror.ErrNotFound.
	StatObject(ctx context.Context, bucket, key string) (ObjectInfo, error)
	// DeleteObject removes the object. A missing object yields
	// goerror.ErrNotFound.
	DeleteObject(ctx context.Context, bucket, key string) error
	// PresignGet returns a signed URL for downloading.
	PresignGet(ctx context.Context, bucket, key string, expiry time.Duration) (string, error)
	// PresignPut returns a signed URL for uploading with the given content type.
	PresignPut(ctx context.Context, bucket, key, contentType string, expiry time.Duration) (string, error)
}

// ObjectInfo describes object metadata.
type ObjectInfo struct {
	Bucket      string
	Key         string
	Size        int64
	ETag        string
	ContentType string
	UpdatedAt   time.Time
}
