package schema

import (
	"context"
	"fmt"
	"reflect"
	"strings"
)

// Entry binds a check to one field of T. Build entries with Field or AsyncField.
type Entry[T any] struct {
	key   string
	index int
	run   func(ctx context.Context, src *T) (commit func(dst *T), msgs []string, err error)
	async bool
}

// Field binds a synchronous check to the field selected by member. member
// must return the address of a field of its argument, e.g.
// func(in *Input) *string { return &in.Email }. The field's json name is used
// as the key.
//
// Field panics if member does not select an exported field of T.
func Field[T, V any](member func(*T) *V, check Check[V]) Entry[T] {
	e := AsyncField(member, Lift(check))
	e.async = false
	return e
}

// AsyncField binds an AsyncCheck to the field selected by member. It can only
// be used in an AsyncSchema.
func AsyncField[T, V any](member func(*T) *V, check AsyncCheck[V]) Entry[T] {
	key, index := locate(member)

	return Entry[T]{
		key:   key,
		index: index,
		async: true,
		run: func(ctx context.Context, src *T) (func(dst *T), []string, error) {
			res, err := check(ctx, key, *member(src))
			if err != nil {
				return nil, nil, err
			}
			return func(dst *T) { *member(dst) = res.Value }, res.Messages, nil
		},
	}
}

// Key returns the field name reported in messages.
func (e Entry[T]) Key() string {
	return e.key
}

func locate[T, V any](member func(*T) *V) (string, int) {
	var probe T
	rv := reflect.ValueOf(&probe).Elem()
	if rv.Kind() != reflect.Struct {
		panic(fmt.Sprintf("schema: %s is not a struct", rv.Type()))
	}

	target := reflect.ValueOf(member(&probe)).UnsafePointer()
	want := reflect.TypeFor[V]()

	for i := range rv.NumField() {
		sf := rv.Type().Field(i)
		if !sf.IsExported() || sf.Type != want {
			continue
		}
		if rv.Field(i).Addr().UnsafePointer() == target {
			return fieldKey(sf), i
		}
	}

	panic(fmt.Sprintf("schema: member does not select an exported field of %s", rv.Type()))
}

func fieldKey(sf reflect.StructField) string {
	name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return sf.Name
	}
	return name
}

// exportedFields returns the indexes of T's exported fields.
func exportedFields[T any]() []int {
	rt := reflect.TypeFor[T]()
	out := make([]int, 0, rt.NumField())
	for i := range rt.NumField() {
		if rt.Field(i).IsExported() {
			out = append(out, i)
		}
	}
	return out
}
