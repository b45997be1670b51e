package httpkit

import (
	"net/http"
	"time"

	"contactguard/internal/platform/config"
	"contactguard/internal/platform/net/middleware"
)

// StackOptions tunes the common middleware stack
type StackOptions struct {
	CORSOrigins []string
	Timeout     time.Duration
	Slow        time.Duration

	// Throttle caps in-flight requests, Backlog queues extra ones for up to BacklogWait
	Throttle    int
	Backlog     int
	BacklogWait time.Duration
}

// StackFromConfig reads CORS_ORIGINS, REQUEST_TIMEOUT, SLOW_REQUEST, THROTTLE, THROTTLE_BACKLOG and THROTTLE_WAIT
func StackFromConfig(cfg config.Conf) StackOptions {
	return StackOptions{
		CORSOrigins: cfg.MayCSV("CORS_ORIGINS", []string{"*"}),
		Timeout:     cfg.MayDuration("REQUEST_TIMEOUT", 10*time.Second),
		Slow:        cfg.MayDuration("SLOW_REQUEST", 500*time.Millisecond),
		Throttle:    cfg.MayInt("THROTTLE", 256),
		Backlog:     cfg.MayInt("THROTTLE_BACKLOG", 512),
		BacklogWait: cfg.MayDuration("THROTTLE_WAIT", 5*time.Second),
	}
}

// CommonStack returns the baseline middleware slice for versioned API routes
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	mw := []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.ClientIP,

		// safety
		middleware.RecoverJSON,

		// cache / freshness
		middleware.NoCache(),

		// observability
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.Slow}),

		// cross-origin, the storefront posts from its own origin
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}),
	}
	if o.Timeout > 0 {
		mw = append(mw, middleware.Timeout(o.Timeout))
	}
	if o.Throttle > 0 {
		mw = append(mw, middleware.ThrottleBacklog(o.Throttle, o.Backlog, o.BacklogWait))
	}
	return mw
}
