package router

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// middlewareIP rewrites RemoteAddr to the client address reported by the
// proxy headers, falling back to the socket peer.
func middlewareIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ip := clientIP(r); ip.IsValid() {
			r.RemoteAddr = ip.String()
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) netip.Addr {
	first, _, _ := strings.Cut(r.Header.Get("X-Forwarded-For"), ",")

	for _, v := range []string{
		r.Header.Get("True-Client-IP"),
		r.Header.Get("X-Real-IP"),
		first,
	} {
		if ip, err := netip.ParseAddr(strings.TrimSpace(v)); err == nil {
			return ip.Unmap()
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return netip.Addr{}
	}
	ip, err := netip.ParseAddr(host)
	if err != nil {
		return netip.Addr{}
	}
	return ip.Unmap()
}
