// Package http serves the operational endpoints under /meta
package http

import (
	"net/http"
	"time"

	"contactguard/internal/core/version"
	"contactguard/internal/modkit/httpkit"
	perr "contactguard/internal/platform/errors"
	cdom "contactguard/internal/services/contact/domain"
)

// Deps is what the meta routes report on. Rules may be nil, then /rules is a 404.
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Now         func() time.Time
	Rules       cdom.RulesPort
}

// Health is the /meta/health payload
type Health struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
	Started string `json:"started"`
	Now     string `json:"now"`
}

// Service is the /meta/service payload; Uptime is whole seconds
type Service struct {
	Name    string `json:"name"`
	Started string `json:"started"`
	Uptime  int64  `json:"uptime"`
}

func stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

// Register mounts health, version, service and rules
func Register(r httpkit.Router, d Deps) {
	now := d.Now
	if now == nil {
		now = time.Now
	}

	httpkit.Get(r, "/health", func(*http.Request) (any, error) {
		return Health{OK: true, Service: d.ServiceName, Started: stamp(d.StartedAt), Now: stamp(now())}, nil
	})
	httpkit.Get(r, "/version", func(*http.Request) (any, error) {
		return version.Info(d.ServiceName), nil
	})
	httpkit.Get(r, "/service", func(*http.Request) (any, error) {
		up := now().Sub(d.StartedAt).Truncate(time.Second)
		return Service{Name: d.ServiceName, Started: stamp(d.StartedAt), Uptime: int64(up.Seconds())}, nil
	})
	httpkit.Get(r, "/rules", func(*http.Request) (any, error) {
		if d.Rules == nil {
			return nil, perr.NotFoundf("no classifier mounted")
		}
		return d.Rules.Rules(), nil
	})
}
