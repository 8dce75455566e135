package schema

import "context"

// Result is the outcome of validating one field: the cleaned value and the
// messages describing every rule it broke.
type Result[V any] struct {
	Value    V
	Messages []string
}

// IsValid reports whether no message was recorded.
func (r Result[V]) IsValid() bool {
	return len(r.Messages) == 0
}

// Check validates and cleans a single value. key is the field name used in
// messages. A check must not fail for invalid input; it reports messages.
type Check[V any] func(key string, v V) Result[V]

// AsyncCheck is a Check that may consult a collaborator. A returned error
// means the collaborator failed, not that the value is invalid.
type AsyncCheck[V any] func(ctx context.Context, key string, v V) (Result[V], error)

// Lift adapts a Check for use where an AsyncCheck is expected.
func Lift[V any](check Check[V]) AsyncCheck[V] {
	return func(_ context.Context, key string, v V) (Result[V], error) {
		return check(key, v), nil
	}
}

// Then runs check first and, if it passed, next on the cleaned value.
func Then[V any](check Check[V], next AsyncCheck[V]) AsyncCheck[V] {
	return func(ctx context.Context, key string, v V) (Result[V], error) {
		res := check(key, v)
		if !res.IsValid() {
			return res, nil
		}
		return next(ctx, key, res.Value)
	}
}
