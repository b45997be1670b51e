package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler is a plain handler func; Handle adapts Response returning funcs to it
type Handler = func(http.ResponseWriter, *http.Request)

// Router is what modules see of the mux. Only chi backs it.
type Router interface {
	Get(path string, h Handler)
	Post(path string, h Handler)
	Handle(path string, h http.Handler)
	Use(mw ...func(http.Handler) http.Handler)
	Route(pattern string, fn func(Router))
	NotFound(h Handler)
	MethodNotAllowed(h Handler)
	Mux() http.Handler
}

// AdaptChi wraps a chi mux as a Router
func AdaptChi(m *chi.Mux) Router { return chiRouter{m} }

type chiRouter struct{ chi.Router }

func (c chiRouter) Get(p string, h Handler)  { c.Router.Get(p, h) }
func (c chiRouter) Post(p string, h Handler) { c.Router.Post(p, h) }
func (c chiRouter) NotFound(h Handler)       { c.Router.NotFound(h) }
func (c chiRouter) Mux() http.Handler        { return c.Router }

func (c chiRouter) MethodNotAllowed(h Handler) { c.Router.MethodNotAllowed(h) }

func (c chiRouter) Route(pattern string, fn func(Router)) {
	c.Router.Route(pattern, func(sub chi.Router) { fn(chiRouter{sub}) })
}
