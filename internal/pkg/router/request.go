package router

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/pkaramon/book-store-sub000/internal/pkg/goerror"
)

// Request wraps http.Request with helpers for inbound handlers.
type Request struct {
	// Request is the underlying http.Request.
	*http.Request
}

// GetParam reads a path parameter from the request context (as stored by httprouter).
func (r *Request) GetParam(key string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(key)
}

// BearerToken returns the token from "Authorization: Bearer <token>", or "".
func (r *Request) BearerToken() string {
	return bearerFromContext(r.Context())
}

// GetQuery returns the trimmed query parameter.
func (r *Request) GetQuery(key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}

// GetQueryInt returns an integer query parameter, or def when absent.
func (r *Request) GetQueryInt(key string, def int) (int, error) {
	v, err := r.GetQueryInt64(key, int64(def))
	return int(v), err
}

// GetQueryInt64 returns an int64 query parameter, or def when absent. A
// malformed value is reported as "Invalid query <key>".
func (r *Request) GetQueryInt64(key string, def int64) (int64, error) {
	raw := r.GetQuery(key)
	if raw == "" {
		return def, nil
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, goerror.NewInvalidFormat("Invalid query " + key)
	}
	return v, nil
}

// MaxBodyBytes caps JSON request bodies.
const MaxBodyBytes = 1 << 20

// DecodeBody decodes a single JSON object into dst. Unknown fields, trailing
// data and bodies over MaxBodyBytes are rejected as invalid format.
func (r *Request) DecodeBody(dst any) error {
	if r == nil || r.Body == nil {
		return goerror.NewInvalidFormat()
	}

	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return goerror.NewInvalidFormat("Request body too large")
		}
		return goerror.NewInvalidFormat()
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return goerror.NewInvalidFormat()
	}

	return nil
}
