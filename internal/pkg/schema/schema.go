package schema

import (
	"context"
	"fmt"
	"maps"
	"reflect"
	"slices"

	"github.com/pkaramon/book-store-sub000/internal/pkg/goerror"
	"golang.org/x/sync/errgroup"
)

// Report is the aggregated outcome of validating a whole struct.
//
// Value holds the cleaned value of every field, including the invalid ones;
// it must not be used when IsValid is false. Messages holds only the keys of
// failing fields.
type Report[T any] struct {
	Value    T
	Messages map[string][]string
	invalid  []string
}

// IsValid reports whether every field passed.
func (r Report[T]) IsValid() bool {
	return len(r.invalid) == 0
}

// InvalidProperties returns the failing keys in field declaration order.
func (r Report[T]) InvalidProperties() []string {
	return slices.Clone(r.invalid)
}

// Err returns a validation error describing the failures, or nil.
func (r Report[T]) Err() error {
	if r.IsValid() {
		return nil
	}
	return goerror.NewValidation(r.Messages, r.invalid)
}

// Schema validates T synchronously.
type Schema[T any] struct {
	entries []Entry[T]
}

// New builds a Schema. It panics unless entries cover every exported field of
// T exactly once, or when an entry carries an AsyncCheck.
func New[T any](entries ...Entry[T]) *Schema[T] {
	for _, e := range entries {
		if e.async {
			panic(fmt.Sprintf("schema: field %q uses an async check, use NewAsync", e.key))
		}
	}
	return &Schema[T]{entries: arrange(entries)}
}

// Validate applies every check to in and aggregates the results.
func (s *Schema[T]) Validate(in T) Report[T] {
	out := in
	collected := make([][]string, len(s.entries))

	for i, e := range s.entries {
		// sync checks never return an error
		commit, msgs, _ := e.run(context.Background(), &in)
		commit(&out)
		collected[i] = msgs
	}

	return s.report(out, collected)
}

// Keys returns the schema keys in field declaration order.
func (s *Schema[T]) Keys() []string {
	return keys(s.entries)
}

func (s *Schema[T]) report(out T, collected [][]string) Report[T] {
	return aggregate(s.entries, out, collected)
}

// AsyncSchema validates T with all field checks running concurrently.
type AsyncSchema[T any] struct {
	entries []Entry[T]
}

// NewAsync builds an AsyncSchema. Entries may mix Field and AsyncField. It
// panics unless entries cover every exported field of T exactly once.
func NewAsync[T any](entries ...Entry[T]) *AsyncSchema[T] {
	return &AsyncSchema[T]{entries: arrange(entries)}
}

// Validate runs every check concurrently and waits for all of them before
// aggregating. The result does not depend on completion order. If any check
// returns an error, that error is returned and no report is produced.
func (s *AsyncSchema[T]) Validate(ctx context.Context, in T) (Report[T], error) {
	commits := make([]func(*T), len(s.entries))
	collected := make([][]string, len(s.entries))

	g, gctx := errgroup.WithContext(ctx)
	for i, e := range s.entries {
		g.Go(func() error {
			src := in
			commit, msgs, err := e.run(gctx, &src)
			if err != nil {
				return err
			}
			commits[i] = commit
			collected[i] = msgs
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Report[T]{}, err
	}

	out := in
	for _, commit := range commits {
		commit(&out)
	}

	return aggregate(s.entries, out, collected), nil
}

// Keys returns the schema keys in field declaration order.
func (s *AsyncSchema[T]) Keys() []string {
	return keys(s.entries)
}

func aggregate[T any](entries []Entry[T], out T, collected [][]string) Report[T] {
	rep := Report[T]{Value: out, Messages: map[string][]string{}}
	for i, e := range entries {
		if len(collected[i]) == 0 {
			continue
		}
		rep.Messages[e.key] = slices.Clone(collected[i])
		rep.invalid = append(rep.invalid, e.key)
	}
	return rep
}

func keys[T any](entries []Entry[T]) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.key
	}
	return out
}

// arrange checks coverage and orders entries by field position.
func arrange[T any](entries []Entry[T]) []Entry[T] {
	want := exportedFields[T]()
	byIndex := make(map[int]Entry[T], len(entries))

	for _, e := range entries {
		if _, dup := byIndex[e.index]; dup {
			panic(fmt.Sprintf("schema: field %q has more than one check", e.key))
		}
		byIndex[e.index] = e
	}

	for _, idx := range want {
		if _, ok := byIndex[idx]; !ok {
			panic(fmt.Sprintf("schema: field %s of %s has no check",
				reflect.TypeFor[T]().Field(idx).Name, reflect.TypeFor[T]()))
		}
	}

	ordered := slices.Sorted(maps.Keys(byIndex))
	out := make([]Entry[T], 0, len(ordered))
	for _, idx := range ordered {
		out = append(out, byIndex[idx])
	}
	return out
}
