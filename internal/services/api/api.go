// Package api composes the HTTP API for the application
package api

import (
	"contactguard/internal/modkit"
	"contactguard/internal/modkit/httpkit"
	"contactguard/internal/modkit/swaggerkit"
	"contactguard/internal/platform/config"
	"contactguard/internal/platform/logger"
	phttp "contactguard/internal/platform/net/http"
	"contactguard/internal/platform/net/middleware"

	metamod "contactguard/internal/services/api/meta/module"
	cdom "contactguard/internal/services/contact/domain"
	contactmod "contactguard/internal/services/contact/module"
)

// Options are the API options
type Options struct {
	// Config is the API scope (CORE_API_*) for the middleware stack
	Config config.Conf
	// Root is the unprefixed view modules read their own prefixes from
	Root config.Conf

	Logger         *logger.Logger
	ServiceName    string
	EnableSwagger  bool
	EnableProfiler bool

	// Contact overrides the contact module; nil builds it from CONTACT_* config
	Contact modkit.Module
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) error {
	deps := modkit.Deps{
		Log: opt.Logger,
		Cfg: opt.Root,
	}

	// liveness probe outside the versioned scope, before any route
	r.Use(middleware.Heartbeat("/ping"))
	r.NotFound(phttp.NotFound)
	r.MethodNotAllowed(phttp.MethodNotAllowed)

	contact := opt.Contact
	if contact == nil {
		contact = contactmod.New(deps)
	}
	rules := modkit.MustPortsOf[cdom.RulesPort](contact)

	mods := []modkit.Module{
		metamod.New(deps, opt.ServiceName, modkit.WithPorts(metamod.Ports{Rules: rules})),
		contact,
	}

	httpkit.MountAPIV1(r, httpkit.CommonStack(httpkit.StackFromConfig(opt.Config)), func(api httpkit.Router) {
		for _, m := range mods {
			m.MountRoutes(api)
		}
	})

	if err := swaggerkit.Mount(r, opt.EnableSwagger, "/api/v1"); err != nil {
		return err
	}
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
	return nil
}
