package workflow

import (
	"context"
	"errors"
	"log/slog"

	"github.com/pkaramon/book-store-sub000/internal/pkg/goerror"
)

// Call runs a collaborator call. step describes it for diagnostics, e.g.
// "saving user".
func Call[T any](ctx context.Context, step string, fn func() (T, error)) (T, error) {
	v, err := fn()
	if err != nil {
		var zero T
		return zero, classify(ctx, step, err)
	}
	return v, nil
}

// Do is Call for calls that return only an error.
func Do(ctx context.Context, step string, fn func() error) error {
	if err := fn(); err != nil {
		return classify(ctx, step, err)
	}
	return nil
}

// Find is Call for lookups. goerror.ErrNotFound becomes a not-found error
// for entity and id.
func Find[T any](ctx context.Context, step, entity, id string, fn func() (T, error)) (T, error) {
	v, err := fn()
	if err != nil {
		var zero T
		if errors.Is(err, goerror.ErrNotFound) {
			return zero, goerror.NewNotFound(entity, id)
		}
		return zero, classify(ctx, step, err)
	}
	return v, nil
}

// Classify applies the same policy as Call to an error obtained elsewhere.
func Classify(ctx context.Context, step string, err error) error {
	if err == nil {
		return nil
	}
	return classify(ctx, step, err)
}

func classify(ctx context.Context, step string, err error) error {
	if _, ok := goerror.As(err); ok {
		return err
	}

	slog.ErrorContext(ctx, "could not complete request", "step", step, "error", err)
	return goerror.NewServer(step, err)
}
