package router

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/julienschmidt/httprouter"
	"github.com/pkaramon/book-store-sub000/internal/pkg/goerror"
	"github.com/pkaramon/book-store-sub000/internal/pkg/instrument"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const maxLoggedBodyBytes = 32 * 1024

// statusRecorder captures what the handler wrote, plus the error the
// endpoint returned (see errorSink).
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
	err    error
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusRecorder) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(p)
	w.bytes += n
	return n, err
}

func (w *statusRecorder) SetError(err error) { w.err = err }

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *statusRecorder) Unwrap() http.ResponseWriter { return w.ResponseWriter }

func (w *statusRecorder) code() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

func matchedRoutePath(r *http.Request) string {
	if pattern := httprouter.ParamsFromContext(r.Context()).MatchedRoutePath(); pattern != "" {
		return pattern
	}
	return r.URL.Path
}

// loggableBody decodes JSON bodies so the logger can redact sensitive keys.
func loggableBody(body []byte) any {
	if len(body) == 0 {
		return nil
	}

	var v any
	switch {
	case json.Unmarshal(body, &v) == nil:
		return v
	case !utf8.Valid(body):
		return "<binary body omitted>"
	default:
		return string(body)
	}
}

// peekBody reads up to maxLoggedBodyBytes and puts them back in front of
// the remaining body. Larger bodies are not logged.
func peekBody(r *http.Request) []byte {
	if r.Body == nil {
		return nil
	}

	head, _ := io.ReadAll(io.LimitReader(r.Body, maxLoggedBodyBytes+1))
	r.Body = io.NopCloser(io.MultiReader(bytes.NewReader(head), r.Body))
	if len(head) > maxLoggedBodyBytes {
		return nil
	}
	return head
}

type httpMetrics struct {
	requests metric.Int64Counter
	duration metric.Float64Histogram
}

func newHTTPMetrics(meter metric.Meter) httpMetrics {
	var m httpMetrics
	var err error

	m.requests, err = meter.Int64Counter("http.server.requests",
		metric.WithDescription("Number of HTTP requests received"))
	if err != nil {
		slog.Error("failed to create http request counter", "error", err)
	}

	m.duration, err = meter.Float64Histogram("http.server.request.duration",
		metric.WithDescription("HTTP request duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		slog.Error("failed to create http duration histogram", "error", err)
	}
	return m
}

func (m httpMetrics) record(r *http.Request, elapsed time.Duration, attrs []attribute.KeyValue) {
	opt := metric.WithAttributes(attrs...)
	if m.requests != nil {
		m.requests.Add(r.Context(), 1, opt)
	}
	if m.duration != nil {
		m.duration.Record(r.Context(), elapsed.Seconds(), opt)
	}
}

// middlewareObservability opens the server span (continuing a propagated
// trace), records request metrics and logs the request and its outcome.
// Failed requests are logged with the goerror code and, for infrastructure
// failures, the step that failed.
func middlewareObservability(ins instrument.Instrumentation) Middleware {
	tracer := ins.Tracer("http.server")
	metrics := newHTTPMetrics(ins.Meter("http.server"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := matchedRoutePath(r)
			start := time.Now()

			ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			ctx, span := tracer.Start(ctx, r.Method+" "+route,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					semconv.HTTPRequestMethodKey.String(r.Method),
					semconv.HTTPRouteKey.String(route),
				),
			)
			defer span.End()
			r = r.WithContext(ctx)

			slog.InfoContext(ctx, "request received",
				"method", r.Method,
				"path", route,
				"uri", r.RequestURI,
				"user_agent", r.UserAgent(),
				"body", loggableBody(peekBody(r)),
			)

			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)

			status, elapsed := rec.code(), time.Since(start)
			attrs := []attribute.KeyValue{
				semconv.HTTPRequestMethodKey.String(r.Method),
				semconv.HTTPRouteKey.String(route),
				semconv.HTTPResponseStatusCodeKey.Int(status),
			}
			logAttrs := []any{
				"method", r.Method,
				"path", route,
				"status", status,
				"bytes", rec.bytes,
				"latency_ms", elapsed.Milliseconds(),
			}

			if rec.err != nil {
				span.RecordError(rec.err)
				if gerr, ok := goerror.As(rec.err); ok {
					attrs = append(attrs, attribute.String("error.code", gerr.Code().String()))
					logAttrs = append(logAttrs, "error_code", gerr.Code().String())
					if step := gerr.Step(); step != "" {
						logAttrs = append(logAttrs, "failed_step", step)
					}
				}
			}

			span.SetAttributes(attrs...)
			if status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(status))
			} else {
				span.SetStatus(codes.Ok, "")
			}
			metrics.record(r, elapsed, attrs)

			switch {
			case status >= http.StatusInternalServerError:
				slog.ErrorContext(ctx, "response sent", append(logAttrs, "error", rec.err)...)
			case rec.err != nil:
				slog.WarnContext(ctx, "response sent", append(logAttrs, "error", rec.err.Error())...)
			default:
				slog.InfoContext(ctx, "response sent", logAttrs...)
			}
		})
	}
}
