package middleware

import (
	"net/http"
	"time"

	"contactguard/internal/platform/logger"
	pnet "contactguard/internal/platform/net"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// AccessLogOptions configures the zerolog access log
type AccessLogOptions struct {
	// Slow logs requests taking at least Slow at warn level; 0 disables it
	Slow time.Duration
}

// AccessLogZerolog writes one line per request through logger.C: method, path,
// status, elapsed, bytes and client ip. 5xx log at error. Bodies and user agents
// are never logged
func AccessLogZerolog(opt AccessLogOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			elapsed := time.Since(start)
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			log := logger.C(r.Context())
			var evt *zerolog.Event
			switch {
			case status >= http.StatusInternalServerError:
				evt = log.Error()
			case opt.Slow > 0 && elapsed >= opt.Slow:
				evt = log.Warn().Bool("slow", true)
			default:
				evt = log.Info()
			}
			evt.Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Dur("elapsed", elapsed).
				Int("bytes", ww.BytesWritten()).
				Str("client_ip", pnet.ClientIP(r.Context())).
				Msg("request")
		})
	}
}
