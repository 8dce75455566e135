// Package storage adapts S3, MinIO and Google Cloud Storage to the small
// object store API used for book covers. Backend not-found errors are
// reported as goerror.ErrNotFound.
package storage
