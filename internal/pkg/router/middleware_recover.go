package router

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/pkaramon/book-store-sub000/internal/pkg/instrument"
	"github.com/pkaramon/book-store-sub000/internal/pkg/stacktrace"
)

// middlewareRecoverer turns a handler panic into the same 500 body the error
// codec writes for infrastructure failures.
func middlewareRecoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			//nolint:errorlint // sentinel panic value
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}

			ctx := r.Context()
			stack := debug.Stack()
			if paths := stacktrace.InternalPaths(stack); len(paths) > 0 {
				slog.ErrorContext(ctx, "panic in http handler", "panic", rvr, "route", matchedRoutePath(r), "stack", paths)
			} else {
				slog.ErrorContext(ctx, "panic in http handler", "panic", rvr, "route", matchedRoutePath(r), "stack", string(stack))
			}

			if cid := instrument.GetCorrelationID(ctx); cid != "" {
				w.Header().Set(HeaderCorrelationID, cid)
			}
			writeJSON(w, errorResponse{Message: "Could not complete request"}, http.StatusInternalServerError)
		}()

		next.ServeHTTP(w, r)
	})
}
