// Package httpkit is the routing surface modules build on, so they never import the
// platform http packages directly
package httpkit

import (
	"net/http"

	phttp "contactguard/internal/platform/net/http"
	"contactguard/internal/platform/net/http/bind"
)

type (
	Envelope    = phttp.Envelope
	Response    = phttp.Response
	Handler     = phttp.Handler
	Router      = phttp.Router
	JSONOptions = bind.JSONOptions
)

// Get mounts a bodyless GET handler
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, phttp.Handle(func(req *http.Request) Response {
		return respond(h(req))
	}))
}

// PostJSON mounts a POST handler whose body is bound and validated into T first
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error), opts ...JSONOptions) {
	r.Post(path, phttp.Handle(func(req *http.Request) Response {
		in, err := bind.ParseJSON[T](req, opts...)
		if err != nil {
			return phttp.Error(err)
		}
		return respond(h(req, in))
	}))
}

// respond turns a handler result into a Response. A handler that already built one,
// like phttp.Created, keeps its status.
func respond(out any, err error) Response {
	if err != nil {
		return phttp.Error(err)
	}
	if resp, ok := out.(Response); ok {
		return resp
	}
	return phttp.OK(out)
}
