// Package schema validates and cleans input structs field by field.
//
// A Schema binds exactly one check to every exported field of a struct.
// Validation never stops at the first failure: each check may attach several
// messages and every field is evaluated, so callers get a single Report with
// the cleaned value and the messages of the fields that failed.
//
//	var registerSchema = schema.New(
//		schema.Field(func(in *Input) *string { return &in.FirstName }, schema.All(schema.Trim, schema.NotEmpty)),
//		schema.Field(func(in *Input) *string { return &in.Password }, schema.Password),
//	)
//
// AsyncSchema runs its checks concurrently and allows checks that call out to
// collaborators. A collaborator error aborts validation and is returned as is.
//
// Messages covers validations that are interleaved with business steps and
// therefore cannot be expressed as a static schema.
package schema
