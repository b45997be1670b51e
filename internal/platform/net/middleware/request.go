// Package middleware holds the HTTP middlewares of the API stack, in house
// ones and thin adapters over chi that keep chi types out of callers
package middleware

import (
	"net"
	"net/http"

	pnet "contactguard/internal/platform/net"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestID accepts or mints an X-Request-ID, stores it for logger.C and echoes
// it on the response
func RequestID() func(http.Handler) http.Handler {
	echo := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id := pnet.RequestID(r.Context()); id != "" {
				w.Header().Set(chimw.RequestIDHeader, id)
			}
			next.ServeHTTP(w, r)
		})
	}
	return func(next http.Handler) http.Handler { return chimw.RequestID(echo(next)) }
}

// RealIP rewrites RemoteAddr from True-Client-IP, X-Real-IP or X-Forwarded-For.
// Only install it behind a proxy that sets those headers
func RealIP() func(http.Handler) http.Handler { return chimw.RealIP }

// ClientIP copies the resolved remote host onto the context; install after RealIP
func ClientIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := r.RemoteAddr
		// RealIP leaves a bare host without a port
		if host, _, err := net.SplitHostPort(ip); err == nil {
			ip = host
		}
		next.ServeHTTP(w, r.WithContext(pnet.WithClientIP(r.Context(), ip)))
	})
}
