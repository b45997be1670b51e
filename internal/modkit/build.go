package modkit

import (
	"net/http"

	"contactguard/internal/modkit/httpkit"
	pstrings "contactguard/internal/platform/strings"
)

// Option sets one field of a module's Built description
type Option func(*Built)

// Built describes how a module mounts: its name, route prefix, own middleware,
// injected ports and an optional hook for extra routes
type Built struct {
	Name     string
	Prefix   string
	Mw       []func(http.Handler) http.Handler
	Ports    any
	Register func(httpkit.Router)
}

func WithName(name string) Option { return func(b *Built) { b.Name = name } }

func WithPrefix(prefix string) Option { return func(b *Built) { b.Prefix = prefix } }

// WithMiddlewares appends; repeated calls keep their order
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}

// WithPorts hands a module the ports another module exported; the receiving module
// owns the concrete bundle type
func WithPorts[T any](p T) Option { return func(b *Built) { b.Ports = p } }

// WithRegister mounts extra routes after the module's own
func WithRegister(fn func(httpkit.Router)) Option { return func(b *Built) { b.Register = fn } }

// Build applies opts in order. The prefix is normalized to a leading slash and an
// empty one panics.
func Build(opts ...Option) Built {
	var b Built
	for _, o := range opts {
		o(&b)
	}
	b.Prefix = pstrings.MustPrefix(b.Prefix)
	if b.Register == nil {
		b.Register = func(httpkit.Router) {}
	}
	return b
}

// Mount mounts own then Register under Prefix with Mw applied
func (b Built) Mount(r httpkit.Router, own func(httpkit.Router)) {
	httpkit.Mount(r, b.Prefix, b.Mw, func(sub httpkit.Router) {
		own(sub)
		b.Register(sub)
	})
}
