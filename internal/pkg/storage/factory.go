package storage

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

const (
	DriverS3    = "s3"
	DriverGCS   = "gcs"
	DriverMinIO = "minio"
)

// ErrUnknownDriver is returned for a driver name with no registered backend.
var ErrUnknownDriver = errors.New("storage: unknown driver")

// FactoryOptions carries the settings of every backend; only the selected
// driver's block is read.
type FactoryOptions struct {
	S3    S3Options
	GCS   GCSOptions
	MinIO MinIOOptions
}

var drivers = map[string]func(context.Context, FactoryOptions) (Storage, error){
	DriverS3: func(ctx context.Context, o FactoryOptions) (Storage, error) {
		return NewS3(ctx, o.S3)
	},
	DriverGCS: func(ctx context.Context, o FactoryOptions) (Storage, error) {
		return NewGCS(ctx, o.GCS)
	},
	DriverMinIO: func(_ context.Context, o FactoryOptions) (Storage, error) {
		return NewMinIO(o.MinIO)
	},
}

// Drivers lists the accepted driver names in sorted order.
func Drivers() []string {
	return slices.Sorted(maps.Keys(drivers))
}

// NewFromDriver builds the backend named by driver. Names are case and
// whitespace insensitive.
func NewFromDriver(ctx context.Context, driver string, opts FactoryOptions) (Storage, error) {
	build, ok := drivers[strings.ToLower(strings.TrimSpace(driver))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownDriver, driver, strings.Join(Drivers(), ", "))
	}
	return build(ctx, opts)
}
