package storage

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	gcs "cloud.google.com/go/storage"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"

	"github.com/pkaramon/book-store-sub000/internal/pkg/goerror"
)

// GCSAdapter implements Storage using Google Cloud Storage.
type GCSAdapter struct {
	client *gcs.Client
	signer *gcsSigner
	now    func() time.Time
}

// GCSOptions configures GCS client initialization.
type GCSOptions struct {
	// Client provides an existing GCS client.
	Client *gcs.Client
	// CredentialsFile is a service account JSON key. It authenticates the
	// client and enables URL signing.
	CredentialsFile string
}

type gcsSigner struct {
	accessID   string
	privateKey []byte
}

// NewGCS constructs a GCS adapter. Without a credentials file the client uses
// application default credentials and presigning is unavailable.
func NewGCS(ctx context.Context, opts GCSOptions) (*GCSAdapter, error) {
	g := &GCSAdapter{client: opts.Client, now: time.Now}

	var clientOpts []option.ClientOption
	if opts.CredentialsFile != "" {
		raw, err := os.ReadFile(opts.CredentialsFile)
		if err != nil {
			return nil, err
		}
		signer, err := newGCSSigner(raw)
		if err != nil {
			return nil, err
		}
		g.signer = signer
		clientOpts = append(clientOpts, option.WithCredentialsFile(opts.CredentialsFile))
	}

	if g.client == nil {
		client, err := gcs.NewClient(ctx, clientOpts...)
		if err != nil {
			return nil, err
		}
		g.client = client
	}

	return g, nil
}

func newGCSSigner(serviceAccountJSON []byte) (*gcsSigner, error) {
	conf, err := google.JWTConfigFromJSON(serviceAccountJSON, gcs.ScopeReadWrite)
	if err != nil {
		return nil, err
	}
	return &gcsSigner{accessID: conf.Email, privateKey: conf.PrivateKey}, nil
}

// StatObject returns metadata for a GCS object.
func (g *GCSAdapter) StatObject(ctx context.Context, bucket, key string) (ObjectInfo, error) {
	attrs, err := g.client.Bucket(bucket).Object(key).Attrs(ctx)
	if err != nil {
		return ObjectInfo{}, gcsError(err)
	}

	return ObjectInfo{
		Bucket:      attrs.Bucket,
		Key:         attrs.Name,
		Size:        attrs.Size,
		ETag:        attrs.Etag,
		ContentType: attrs.ContentType,
		UpdatedAt:   attrs.Updated,
	}, nil
}

// DeleteObject removes an object from GCS.
func (g *GCSAdapter) DeleteObject(ctx context.Context, bucket, key string) error {
	return gcsError(g.client.Bucket(bucket).Object(key).Delete(ctx))
}

// PresignGet returns a signed URL for downloading from GCS.
func (g *GCSAdapter) PresignGet(_ context.Context, bucket, key string, expiry time.Duration) (string, error) {
	return g.sign(bucket, key, http.MethodGet, "", expiry)
}

// PresignPut returns a signed URL for uploading to GCS.
func (g *GCSAdapter) PresignPut(_ context.Context, bucket, key, contentType string, expiry time.Duration) (string, error) {
	return g.sign(bucket, key, http.MethodPut, contentType, expiry)
}

func (g *GCSAdapter) sign(bucket, key, method, contentType string, expiry time.Duration) (string, error) {
	if g.signer == nil {
		return "", ErrMissingSigner
	}

	return gcs.SignedURL(bucket, key, &gcs.SignedURLOptions{
		Method:         method,
		Expires:        g.now().Add(expiry),
		GoogleAccessID: g.signer.accessID,
		PrivateKey:     g.signer.privateKey,
		ContentType:    contentType,
		Scheme:         gcs.SigningSchemeV4,
	})
}

// Close closes the GCS client.
func (g *GCSAdapter) Close() error {
	return g.client.Close()
}

func gcsError(err error) error {
	if errors.Is(err, gcs.ErrObjectNotExist) || errors.Is(err, gcs.ErrBucketNotExist) {
		return errors.Join(goerror.ErrNotFound, err)
	}
	return err
}
