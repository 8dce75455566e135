package router

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkaramon/book-store-sub000/internal/pkg/config"
	"github.com/pkaramon/book-store-sub000/internal/pkg/goerror"
	"github.com/pkaramon/book-store-sub000/internal/pkg/instrument"
	"github.com/pkaramon/book-store-sub000/internal/pkg/jwt"
	"github.com/pkaramon/book-store-sub000/internal/pkg/uid"
)

type errorResponse struct {
	Message           string              `json:"message"`
	Error             map[string][]string `json:"error,omitempty"`
	InvalidProperties []string            `json:"invalid_properties,omitempty"`
	Details           map[string]string   `json:"details,omitempty"`
}

type successResponse struct {
	Message string         `json:"message"`
	Data    any            `json:"data"`
	Meta    map[string]any `json:"meta,omitempty"`
}

// Optional behaviours a handler response can implement to shape the envelope.
type (
	statusCoder interface{ StatusCode() int }
	messenger   interface{ Message() string }
	metaCarrier interface{ Meta() map[string]any }
	errorSink   interface{ SetError(error) }
)

const defaultSuccessMessage = "request has been successfully"

// Handler returns a payload to encode as JSON, or an error for the error codec.
type Handler func(r *Request) (any, error)

// Config holds dependencies required to build a Router.
type Config struct {
	Config     config.Config
	UUID       uid.StringID
	Instrument instrument.Instrumentation
}

// Router is an http.Handler over httprouter with a shared middleware chain.
type Router struct {
	hr  *httprouter.Router
	mws []Middleware
}

// NewRouter builds the API router. Middleware runs in the order listed, the
// recoverer outermost.
func NewRouter(cfg Config) *Router {
	hr := httprouter.New()
	hr.SaveMatchedRoutePath = true
	hr.NotFound = staticJSON(http.StatusNotFound, "endpoint not found")
	hr.MethodNotAllowed = staticJSON(http.StatusMethodNotAllowed, "method not allowed")
	hr.GET("/", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		staticJSON(http.StatusOK, "Welcome to the Bookstore API").ServeHTTP(w, r)
	})

	return &Router{
		hr: hr,
		mws: []Middleware{
			middlewareRecoverer,
			middlewareIP,
			middlewareCorrelationID(cfg.UUID),
			middlewareObservability(cfg.Instrument),
			middlewareMaintenance(cfg.Config),
			middlewareBearer,
		},
	}
}

func (r *Router) GET(path string, h Handler, mws ...Middleware) {
	r.handle(http.MethodGet, path, h, mws)
}

func (r *Router) POST(path string, h Handler, mws ...Middleware) {
	r.handle(http.MethodPost, path, h, mws)
}

func (r *Router) PATCH(path string, h Handler, mws ...Middleware) {
	r.handle(http.MethodPatch, path, h, mws)
}

func (r *Router) DELETE(path string, h Handler, mws ...Middleware) {
	r.handle(http.MethodDelete, path, h, mws)
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.hr.ServeHTTP(w, req)
}

func (r *Router) handle(method, path string, h Handler, extra []Middleware) {
	endpoint := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		resp, err := h(&Request{Request: req})
		if err == nil {
			writeSuccess(w, resp)
			return
		}

		if sink, ok := w.(errorSink); ok {
			sink.SetError(err)
		}
		writeError(req.Context(), w, err)
	})

	chain := make([]Middleware, 0, len(r.mws)+len(extra))
	chain = append(append(chain, r.mws...), extra...)
	r.hr.Handler(method, path, Chain(endpoint, chain...))
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	if jwt.IsTokenError(err) {
		writeJSON(w, errorResponse{Message: "Invalid or expired token"}, http.StatusUnauthorized)
		return
	}

	gerr, ok := goerror.As(err)
	if !ok {
		slog.ErrorContext(ctx, "unclassified error reached the router", "error", err)
		writeJSON(w, errorResponse{Message: "Internal server error"}, http.StatusInternalServerError)
		return
	}

	body := errorResponse{Message: gerr.Msg()}
	switch gerr.Code() {
	case goerror.CodeInvalidInput:
		body.Error = gerr.Fields()
		body.InvalidProperties = gerr.InvalidProperties()
	case goerror.CodeNotFound, goerror.CodeInvalidType:
		body.Details = gerr.Details()
	case goerror.CodeInternal:
		body.Message = "Could not complete request"
	}
	writeJSON(w, body, gerr.StatusCode())
}

func writeSuccess(w http.ResponseWriter, resp any) {
	code := http.StatusOK
	if sc, ok := resp.(statusCoder); ok {
		code = sc.StatusCode()
	}
	if resp == nil || code == http.StatusNoContent {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	body := successResponse{Message: defaultSuccessMessage, Data: resp}
	if m, ok := resp.(messenger); ok {
		body.Message = m.Message()
	}
	if m, ok := resp.(metaCarrier); ok {
		body.Meta = m.Meta()
	}
	writeJSON(w, body, code)
}

func staticJSON(code int, msg string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]string{"message": msg}, code)
	})
}

func writeJSON(w http.ResponseWriter, data any, code int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode json response", "error", err)
	}
}
