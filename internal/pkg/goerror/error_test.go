package goerror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	original := errors.New("connection refused")

	err := NewServer("saving user", original)

	gerr, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, CodeInternal, gerr.Code())
	assert.Equal(t, TypeServer, gerr.Type())
	assert.Equal(t, "saving user", gerr.Step())
	assert.Same(t, original, gerr.Unwrap())
	assert.ErrorIs(t, err, original)
	assert.True(t, gerr.Retryable())
	assert.Equal(t, http.StatusInternalServerError, gerr.StatusCode())
	assert.Contains(t, err.Error(), "saving user")
}

func TestNewValidation_CopiesInput(t *testing.T) {
	fields := map[string][]string{"firstName": {"firstName cannot be empty"}}
	invalid := []string{"firstName"}

	err := NewValidation(fields, invalid)
	fields["firstName"][0] = "mutated"
	invalid[0] = "mutated"

	gerr, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, CodeInvalidInput, gerr.Code())
	assert.Equal(t, []string{"firstName cannot be empty"}, gerr.Fields()["firstName"])
	assert.Equal(t, []string{"firstName"}, gerr.InvalidProperties())
	assert.False(t, gerr.Retryable())
	assert.Equal(t, http.StatusUnprocessableEntity, gerr.StatusCode())
}

func TestNewNotFound(t *testing.T) {
	err := NewNotFound("book", "101")

	gerr, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, gerr.Code())
	assert.Equal(t, "book", gerr.Detail(DetailEntity))
	assert.Equal(t, "101", gerr.Detail(DetailID))
	assert.Equal(t, http.StatusNotFound, gerr.StatusCode())
}

func TestNewInvalidType(t *testing.T) {
	err := NewInvalidType("customer", "admin")

	gerr, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, CodeInvalidType, gerr.Code())
	assert.Equal(t, "customer", gerr.Detail(DetailExpected))
	assert.Equal(t, "admin", gerr.Detail(DetailActual))
	assert.Equal(t, http.StatusForbidden, gerr.StatusCode())
}

func TestHasCode_ThroughWrapping(t *testing.T) {
	err := fmt.Errorf("outer: %w", NewConflict("Email already registered"))

	assert.True(t, HasCode(err, CodeConflict))
	assert.False(t, HasCode(err, CodeNotFound))
	assert.False(t, HasCode(errors.New("plain"), CodeConflict))
}

func TestStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "unauthorized actor", err: NewUnauthorized("not yours"), want: http.StatusForbidden},
		{name: "conflict", err: NewConflict("dup"), want: http.StatusConflict},
		{name: "bad credentials", err: NewBusiness("Invalid email or password", CodeUnauthorized), want: http.StatusUnauthorized},
		{name: "invalid format", err: NewInvalidFormat(), want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gerr, ok := As(tt.err)
			require.True(t, ok)
			assert.Equal(t, tt.want, gerr.StatusCode())
		})
	}
}
