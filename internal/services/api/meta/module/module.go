// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	"contactguard/internal/modkit"
	"contactguard/internal/modkit/httpkit"
	metahttp "contactguard/internal/services/api/meta/http"
	cdom "contactguard/internal/services/contact/domain"
)

// Ports declares the optional injected ports for this module
type Ports struct {
	Rules cdom.RulesPort
}

// Module implements the modkit.Module interface
type Module struct {
	built     modkit.Built
	deps      modkit.Deps
	service   string
	rules     cdom.RulesPort
	startedAt time.Time
}

// New constructs a meta module; service names the binary in health and version payloads
func New(deps modkit.Deps, service string, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	m := &Module{
		built:     b,
		deps:      deps,
		service:   service,
		startedAt: deps.Clock()(),
	}
	switch p := b.Ports.(type) {
	case Ports:
		m.rules = p.Rules
	case cdom.RulesPort:
		m.rules = p
	}
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) {
		metahttp.Register(rr, metahttp.Deps{
			ServiceName: m.service,
			StartedAt:   m.startedAt,
			Now:         m.deps.Clock(),
			Rules:       m.rules,
		})
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return m.built.Name }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
