package middleware

import (
	"mime"
	"net/http"
	"strings"
	"time"

	perr "contactguard/internal/platform/errors"
	phttp "contactguard/internal/platform/net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Timeout cancels the request context after d and answers 504 if nothing was written
func Timeout(d time.Duration) func(http.Handler) http.Handler { return chimw.Timeout(d) }

// NoCache forbids client and proxy caching of API answers
func NoCache() func(http.Handler) http.Handler { return chimw.NoCache }

// ThrottleBacklog caps in-flight requests at limit, queues up to backlog more for ttl
func ThrottleBacklog(limit, backlog int, ttl time.Duration) func(http.Handler) http.Handler {
	return chimw.ThrottleBacklog(limit, backlog, ttl)
}

// Heartbeat answers GET and HEAD on path before routing, for load balancer probes
func Heartbeat(path string) func(http.Handler) http.Handler { return chimw.Heartbeat(path) }

// ContentTypes rejects bodies whose media type is not listed with a 415 envelope.
// Requests without a body pass through
func ContentTypes(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, ct := range allowed {
		set[strings.ToLower(strings.TrimSpace(ct))] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength == 0 {
				next.ServeHTTP(w, r)
				return
			}
			mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
			if _, ok := set[mt]; err != nil || !ok {
				phttp.RespondError(w, r, perr.UnsupportedMediaf("content type must be one of %s", strings.Join(allowed, ", ")))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
