package router

import (
	"net/http"
	"strings"

	"github.com/pkaramon/book-store-sub000/internal/pkg/config"
	"github.com/samber/lo"
)

// middlewareMaintenance answers 503 for the routes listed in
// app.maintenance.endpoints. An entry is either a route pattern, which
// blocks every method, or "METHOD pattern", e.g.
// "POST /api/v1/catalog/books" to pause publishing while reads keep working.
func middlewareMaintenance(cfg config.Config) Middleware {
	var entries []string
	if cfg != nil {
		entries = cfg.GetArray("app.maintenance.endpoints")
	}
	blocked := lo.SliceToMap(entries, func(e string) (string, struct{}) {
		method, route, ok := strings.Cut(strings.TrimSpace(e), " ")
		if !ok {
			return method, struct{}{}
		}
		return strings.ToUpper(method) + " " + strings.TrimSpace(route), struct{}{}
	})

	return func(next http.Handler) http.Handler {
		if len(blocked) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := matchedRoutePath(r)
			_, all := blocked[route]
			_, one := blocked[r.Method+" "+route]
			if all || one {
				writeJSON(w, errorResponse{Message: "Service is under maintenance"}, http.StatusServiceUnavailable)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
