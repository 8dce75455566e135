// Package cover keeps book cover images in the object store.
package cover

import (
	"context"
	"errors"
	"time"

	"github.com/pkaramon/book-store-sub000/internal/pkg/goerror"
	"github.com/pkaramon/book-store-sub000/internal/pkg/instrument"
	"github.com/pkaramon/book-store-sub000/internal/pkg/storage"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const defaultExpiry = 15 * time.Minute

type Covers struct {
	storage storage.Storage
	bucket  string
	expiry  time.Duration
	ins     instrument.Instrumentation
}

// New stores covers in bucket. Presigned URLs live for expiry, or 15 minutes
// when expiry is not positive.
func New(stg storage.Storage, bucket string, expiry time.Duration, ins instrument.Instrumentation) *Covers {
	if expiry <= 0 {
		expiry = defaultExpiry
	}
	return &Covers{storage: stg, bucket: bucket, expiry: expiry, ins: ins}
}

// Exists reports whether an object was uploaded under key.
func (c *Covers) Exists(ctx context.Context, key string) (_ bool, err error) {
	ctx, span := c.startSpan(ctx, "Exists", key)
	defer func() { endSpan(span, err) }()

	_, err = c.storage.StatObject(ctx, c.bucket, key)
	if errors.Is(err, goerror.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (c *Covers) UploadURL(ctx context.Context, key, contentType string) (_ string, err error) {
	ctx, span := c.startSpan(ctx, "UploadURL", key)
	defer func() { endSpan(span, err) }()

	return c.storage.PresignPut(ctx, c.bucket, key, contentType, c.expiry)
}

func (c *Covers) DownloadURL(ctx context.Context, key string) (_ string, err error) {
	ctx, span := c.startSpan(ctx, "DownloadURL", key)
	defer func() { endSpan(span, err) }()

	return c.storage.PresignGet(ctx, c.bucket, key, c.expiry)
}

// Delete removes the cover. A missing object is not an error.
func (c *Covers) Delete(ctx context.Context, key string) (err error) {
	ctx, span := c.startSpan(ctx, "Delete", key)
	defer func() { endSpan(span, err) }()

	err = c.storage.DeleteObject(ctx, c.bucket, key)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil
	}
	return err
}

// Expiry is the lifetime of presigned URLs.
func (c *Covers) Expiry() time.Duration {
	return c.expiry
}

func (c *Covers) startSpan(ctx context.Context, name, key string) (context.Context, trace.Span) {
	return c.ins.Tracer("catalog.outbound.cover").Start(ctx, name,
		trace.WithAttributes(attribute.String("bucket", c.bucket), attribute.String("key", key)))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
