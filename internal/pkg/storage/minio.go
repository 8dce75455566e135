package storage

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/pkaramon/book-store-sub000/internal/pkg/goerror"
)

// MinIOAdapter implements Storage using MinIO.
type MinIOAdapter struct {
	client *minio.Client
}

// MinIOOptions configures MinIO client initialization.
type MinIOOptions struct {
	Endpoint     string
	AccessKey    string
	SecretKey    string
	SessionToken string
	// Region skips the bucket location lookup when set.
	Region string
	UseSSL bool
}

// NewMinIO constructs a MinIO adapter with the provided options.
func NewMinIO(opts MinIOOptions) (*MinIOAdapter, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, opts.SessionToken),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, err
	}
	return &MinIOAdapter{client: client}, nil
}

// StatObject returns metadata for a MinIO object.
func (m *MinIOAdapter) StatObject(ctx context.Context, bucket, key string) (ObjectInfo, error) {
	stat, err := m.client.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return ObjectInfo{}, minioError(err)
	}

	return ObjectInfo{
		Bucket:      bucket,
		Key:         key,
		Size:        stat.Size,
		ETag:        stat.ETag,
		ContentType: stat.ContentType,
		UpdatedAt:   stat.LastModified,
	}, nil
}

// DeleteObject removes an object from MinIO. MinIO reports success for
// missing keys, so a stat runs first.
func (m *MinIOAdapter) DeleteObject(ctx context.Context, bucket, key string) error {
	if _, err := m.StatObject(ctx, bucket, key); err != nil {
		return err
	}
	return minioError(m.client.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{}))
}

// PresignGet returns a signed URL for downloading from MinIO.
func (m *MinIOAdapter) PresignGet(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	u, err := m.client.PresignedGetObject(ctx, bucket, key, expiry, url.Values{})
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

// PresignPut returns a signed URL for uploading to MinIO. The content type
// is bound into the signature when given.
func (m *MinIOAdapter) PresignPut(ctx context.Context, bucket, key, contentType string, expiry time.Duration) (string, error) {
	headers := http.Header{}
	if contentType != "" {
		headers.Set("Content-Type", contentType)
	}

	u, err := m.client.PresignHeader(ctx, http.MethodPut, bucket, key, expiry, url.Values{}, headers)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

// Close releases MinIO adapter resources.
func (m *MinIOAdapter) Close() error {
	return nil
}

func minioError(err error) error {
	if err == nil {
		return nil
	}

	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return errors.Join(goerror.ErrNotFound, err)
	default:
		return err
	}
}
