// Package module wires the contact service into the API using modkit
package module

import (
	"contactguard/internal/core/contactguard"
	"contactguard/internal/modkit"
	"contactguard/internal/modkit/httpkit"
	"contactguard/internal/platform/net/middleware"
	"contactguard/internal/services/contact/domain"
	chttp "contactguard/internal/services/contact/http"
	"contactguard/internal/services/contact/service"
)

// Module implements the contact API module
type Module struct {
	built modkit.Built
	opts  Options
	svc   *service.Svc
	ports Ports
}

// New constructs the contact module from CONTACT_* config. A broken rules file
// or threshold is fatal
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	o := FromConfig(deps.Cfg)
	log := deps.Logger("contact")
	rules, err := o.Rules()
	if err != nil {
		log.Fatal().Err(err).Str("rules_file", o.RulesFile).Msg("contact rules invalid")
	}
	return NewWithRules(deps, o, rules, opts...)
}

// NewWithRules constructs the module from explicit options and rules
func NewWithRules(deps modkit.Deps, o Options, rules contactguard.Rules, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("contact"),
		modkit.WithPrefix("/contact"),
		modkit.WithMiddlewares(middleware.ContentTypes("application/json")),
	}, opts...)...)

	log := deps.Logger("contact")

	var fwd domain.Forwarder = service.Discard{}
	if o.Forward == ForwardLog {
		fwd = service.LogForwarder{Log: log}
	}

	cls := contactguard.New(append(rules.Options(), contactguard.WithClock(deps.Clock()))...)
	svc := service.New(service.Options{
		Classifier: cls,
		Forwarder:  fwd,
		Log:        log,
		Now:        deps.Clock(),
	})

	log.Info().
		Int("threshold", rules.Weights.Threshold).
		Int("max_message", rules.Limits.MaxMessage).
		Int64("max_body", o.MaxBody).
		Str("forward", o.Forward).
		Msg("contact module ready")

	return &Module{
		built: b,
		opts:  o,
		svc:   svc,
		ports: Ports{Service: svc, Rules: svc},
	}
}

// MountRoutes mounts POST {prefix}
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) {
		chttp.Register(rr, m.svc, httpkit.JSONOptions{MaxBytes: m.opts.MaxBody})
	})
}

// Ports returns the module ports (Service, Rules)
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return m.built.Name }
