package router

import (
	"context"
	"net/http"
	"strings"
)

type bearerKey struct{}

// middlewareBearer extracts the bearer token from the Authorization header.
// The token is verified by the use case, not here.
func middlewareBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := strings.Fields(r.Header.Get("Authorization"))
		if len(p) == 2 && strings.EqualFold(p[0], "Bearer") {
			r = r.WithContext(context.WithValue(r.Context(), bearerKey{}, p[1]))
		}
		next.ServeHTTP(w, r)
	})
}

func bearerFromContext(ctx context.Context) string {
	token, _ := ctx.Value(bearerKey{}).(string)
	return token
}
