package router

import (
	"net/http"
	"strings"

	"github.com/pkaramon/book-store-sub000/internal/pkg/instrument"
	"github.com/pkaramon/book-store-sub000/internal/pkg/uid"
	"github.com/samber/lo"
)

const (
	// HeaderCorrelationID carries the id that ties a request to its logs,
	// spans and published events.
	HeaderCorrelationID = "X-Correlation-ID"
	// HeaderRequestID is accepted from proxies that only set this one.
	HeaderRequestID = "X-Request-ID"

	maxCorrelationIDLen = 128
)

// cleanCID drops ids that could forge log lines or blow up header sizes.
func cleanCID(v string) string {
	v = strings.TrimSpace(v)
	if len(v) > maxCorrelationIDLen {
		v = v[:maxCorrelationIDLen]
	}
	if strings.IndexFunc(v, func(r rune) bool { return r < 0x21 || r > 0x7e }) != -1 {
		return ""
	}
	return v
}

func middlewareCorrelationID(gen uid.StringID) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cid := lo.CoalesceOrEmpty(
				cleanCID(r.Header.Get(HeaderCorrelationID)),
				cleanCID(r.Header.Get(HeaderRequestID)),
			)
			if cid == "" && gen != nil {
				cid = gen.Generate()
			}

			if cid != "" {
				w.Header().Set(HeaderCorrelationID, cid)
				r = r.WithContext(instrument.SetCorrelationID(r.Context(), cid))
			}

			next.ServeHTTP(w, r)
		})
	}
}
