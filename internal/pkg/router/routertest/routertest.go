// Package routertest drives endpoints registered on a router.Router over a
// real HTTP connection and decodes the response envelopes.
package routertest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pkaramon/book-store-sub000/internal/pkg/config"
	"github.com/pkaramon/book-store-sub000/internal/pkg/instrument"
	"github.com/pkaramon/book-store-sub000/internal/pkg/router"
	"github.com/pkaramon/book-store-sub000/internal/pkg/uid"
)

// SuccessEnvelope is the body of a 2xx response.
type SuccessEnvelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    map[string]any  `json:"meta"`
}

// ErrorEnvelope is the body of an error response.
type ErrorEnvelope struct {
	Message           string              `json:"message"`
	Error             map[string][]string `json:"error"`
	InvalidProperties []string            `json:"invalid_properties"`
	Details           map[string]string   `json:"details"`
}

// Server is a running router.
type Server struct {
	srv    *httptest.Server
	client *http.Client
}

// New builds a router, lets register add endpoints and serves it until the
// test ends.
func New(t *testing.T, register func(r *router.Router)) *Server {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte("app:\n  name: test\n"))
	if err != nil {
		t.Fatalf("config: %v", err)
	}

	r := router.NewRouter(router.Config{Config: cfg, UUID: uid.NewUUID(), Instrument: instrument.NewNoop()})
	register(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &Server{srv: srv, client: &http.Client{Timeout: 5 * time.Second}}
}

// DoJSON sends payload as JSON and returns the status and raw body. An empty
// token sends no Authorization header.
func (s *Server) DoJSON(t *testing.T, method, path string, payload any, token string) (int, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(payload); err != nil {
			t.Fatalf("encode json: %v", err)
		}
		body = buf
	}

	req, err := http.NewRequest(method, strings.TrimRight(s.srv.URL, "/")+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}

	return resp.StatusCode, respBody
}

// DecodeSuccess decodes the envelope and, when out is not nil, its data.
func DecodeSuccess(t *testing.T, body []byte, out any) SuccessEnvelope {
	t.Helper()

	var env SuccessEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("decode success envelope: %v", err)
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			t.Fatalf("decode success data: %v", err)
		}
	}

	return env
}

// DecodeError decodes an error envelope.
func DecodeError(t *testing.T, body []byte) ErrorEnvelope {
	t.Helper()

	var env ErrorEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}

	return env
}
