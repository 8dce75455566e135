package goerror

import (
	"errors"
	"fmt"
	"maps"
	"net/http"
	"slices"
)

var (
	// ErrNotFound indicates that the requested resource could not be found.
	ErrNotFound = errors.New("resource not found")

	// ErrConflict indicates that the request could not be completed due to a conflict.
	ErrConflict = errors.New("resource conflict")
)

// Type classifies errors into high-level buckets used by the application.
type Type int

const (
	// TypeServer represents collaborator or infrastructure failures.
	TypeServer Type = iota
	// TypeBusiness represents business rule violations.
	TypeBusiness
	// TypeValidation represents input validation failures.
	TypeValidation
)

// String returns the string representation of the error type.
func (t Type) String() string {
	switch t {
	case TypeValidation:
		return "ERROR_TYPE_VALIDATION"
	case TypeBusiness:
		return "ERROR_TYPE_BUSINESS"
	case TypeServer:
		return "ERROR_TYPE_SERVER"
	default:
		return "ERROR_TYPE_UNKNOWN"
	}
}

// Code is a stable identifier for the error kind. Callers switch on it
// instead of matching messages.
type Code int

const (
	// CodeInternal means a collaborator could not complete the request.
	CodeInternal Code = iota
	// CodeInvalidFormat indicates an undecodable request.
	CodeInvalidFormat
	// CodeInvalidInput indicates one or more fields failed validation.
	CodeInvalidInput
	// CodeNotFound indicates a missing resource.
	CodeNotFound
	// CodeConflict indicates a uniqueness conflict.
	CodeConflict
	// CodeUnauthorized indicates authentication failure.
	CodeUnauthorized
	// CodeForbidden indicates the actor lacks permission on the target.
	CodeForbidden
	// CodeInvalidType indicates the entity exists but is of the wrong kind.
	CodeInvalidType
)

// String returns the string representation of the error code.
func (c Code) String() string {
	switch c {
	case CodeInvalidFormat:
		return "ERROR_CODE_INVALID_FORMAT"
	case CodeInvalidInput:
		return "ERROR_CODE_INVALID_INPUT"
	case CodeNotFound:
		return "ERROR_CODE_NOT_FOUND"
	case CodeConflict:
		return "ERROR_CODE_CONFLICT"
	case CodeUnauthorized:
		return "ERROR_CODE_UNAUTHORIZED"
	case CodeForbidden:
		return "ERROR_CODE_FORBIDDEN"
	case CodeInvalidType:
		return "ERROR_CODE_INVALID_TYPE"
	default:
		return "ERROR_CODE_INTERNAL"
	}
}

// Detail keys carried by NotFound and InvalidType errors.
const (
	DetailEntity   = "entity"
	DetailID       = "id"
	DetailExpected = "expected"
	DetailActual   = "actual"
)

// Error is a structured error used across the application.
//
// It carries a user-facing message, a high-level type and a stable code.
// Server errors additionally keep the step that failed and the original
// error; validation errors keep per-field messages.
type Error struct {
	err     error
	msg     string
	errType Type
	code    Code
	step    string
	fields  map[string][]string
	invalid []string
	details map[string]string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.errType == TypeServer && e.err != nil {
		if e.step != "" {
			return fmt.Sprintf("could not complete request: %s: %v", e.step, e.err)
		}
		return e.err.Error()
	}

	if e.msg != "" {
		return e.msg
	}

	switch e.errType {
	case TypeValidation:
		return "Validation violation"
	case TypeBusiness:
		return "Logical business not meet with requirement"
	default:
		return "Internal error"
	}
}

// String returns a verbose representation of the error for debugging/logging.
func (e *Error) String() string {
	return fmt.Sprintf(
		"Error Type: %s, Code: %s, Message: %s, Step: %s, Underlying Error: %v",
		e.errType.String(),
		e.code.String(),
		e.msg,
		e.step,
		e.err,
	)
}

// Msg returns the user-facing error message.
func (e *Error) Msg() string {
	return e.msg
}

// Type returns the high-level error type.
func (e *Error) Type() Type {
	return e.errType
}

// Code returns the stable error code.
func (e *Error) Code() Code {
	return e.code
}

// Step describes which collaborator call failed. Empty for non-server errors.
func (e *Error) Step() string {
	return e.step
}

// Fields returns a copy of the per-field validation messages.
func (e *Error) Fields() map[string][]string {
	if len(e.fields) == 0 {
		return nil
	}

	out := make(map[string][]string, len(e.fields))
	for k, v := range e.fields {
		out[k] = slices.Clone(v)
	}
	return out
}

// InvalidProperties returns the names of the fields that failed validation.
func (e *Error) InvalidProperties() []string {
	return slices.Clone(e.invalid)
}

// Detail returns a named detail (see the Detail* constants).
func (e *Error) Detail(key string) string {
	return e.details[key]
}

// Details returns a copy of all details.
func (e *Error) Details() map[string]string {
	return maps.Clone(e.details)
}

// Unwrap returns the original error.
func (e *Error) Unwrap() error {
	return e.err
}

// Retryable reports whether an outer layer may retry the request.
func (e *Error) Retryable() bool {
	return e.errType == TypeServer
}

// StatusCode maps the error code to an HTTP status code.
func (e *Error) StatusCode() int {
	switch e.code {
	case CodeInvalidFormat:
		return http.StatusBadRequest
	case CodeInvalidInput:
		return http.StatusUnprocessableEntity
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden, CodeInvalidType:
		return http.StatusForbidden
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var gerr *Error
	if errors.As(err, &gerr) {
		return gerr, true
	}
	return nil, false
}

// HasCode reports whether err is an *Error with the given code.
func HasCode(err error, code Code) bool {
	gerr, ok := As(err)
	return ok && gerr.code == code
}

// NewServer wraps a collaborator failure. step is a short description of
// the call that failed, e.g. "saving user".
func NewServer(step string, err error) error {
	return &Error{err: err, msg: "Could not complete request", errType: TypeServer, code: CodeInternal, step: step}
}

// NewBusiness creates a business-type error with the specified message and code.
func NewBusiness(msg string, code Code) error {
	return &Error{msg: msg, errType: TypeBusiness, code: code}
}

// NewValidation creates a validation error from per-field messages.
// invalid lists the failing field names in presentation order.
func NewValidation(fields map[string][]string, invalid []string) error {
	e := &Error{
		msg:     "Validation error",
		errType: TypeValidation,
		code:    CodeInvalidInput,
		fields:  make(map[string][]string, len(fields)),
		invalid: slices.Clone(invalid),
	}
	for k, v := range fields {
		e.fields[k] = slices.Clone(v)
	}
	return e
}

// NewNotFound reports that entity with id does not exist.
func NewNotFound(entity, id string) error {
	return &Error{
		msg:     entity + " not found",
		errType: TypeBusiness,
		code:    CodeNotFound,
		details: map[string]string{DetailEntity: entity, DetailID: id},
	}
}

// NewInvalidType reports that an entity exists but is not of the expected kind.
func NewInvalidType(expected, actual string) error {
	return &Error{
		msg:     fmt.Sprintf("expected %s but got %s", expected, actual),
		errType: TypeBusiness,
		code:    CodeInvalidType,
		details: map[string]string{DetailExpected: expected, DetailActual: actual},
	}
}

// NewConflict reports that a uniqueness constraint would be violated.
func NewConflict(msg string) error {
	return &Error{msg: msg, errType: TypeBusiness, code: CodeConflict}
}

// NewUnauthorized reports that the actor lacks permission on the target resource.
func NewUnauthorized(msg string) error {
	return &Error{msg: msg, errType: TypeBusiness, code: CodeForbidden}
}

// NewInvalidFormat creates a validation error for an invalid request body format.
func NewInvalidFormat(msgs ...string) error {
	if len(msgs) == 0 {
		return &Error{msg: "Invalid request body", errType: TypeValidation, code: CodeInvalidFormat}
	}
	return &Error{msg: msgs[0], errType: TypeValidation, code: CodeInvalidFormat}
}
