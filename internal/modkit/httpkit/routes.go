package httpkit

import "net/http"

// Mount scopes mount to a subrouter at prefix with mw applied in order
func Mount(r Router, prefix string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route(prefix, func(sub Router) {
		if len(mw) > 0 {
			sub.Use(mw...)
		}
		mount(sub)
	})
}

// MountAPIV1 is Mount under /api/v1, the only version served today
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	Mount(r, "/api/v1", mw, mount)
}
