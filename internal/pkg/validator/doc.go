// Package validator validates tagged structs such as module dependencies and
// configuration, and single values for schema checks.
//
// It is backed by go-playground/validator v10 with English translations.
// Field names in errors follow the json tag of the struct field.
package validator
