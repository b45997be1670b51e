// Package http provides http transport for contact submissions
package http

import (
	stdhttp "net/http"

	"contactguard/internal/modkit/httpkit"
	pnet "contactguard/internal/platform/net"
	"contactguard/internal/services/contact/domain"
)

// Register mounts the contact routes; opts tune body parsing
func Register(r httpkit.Router, s domain.ServicePort, opts httpkit.JSONOptions) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.SubmitInput](r, "/", h.submit, opts)
}

type handlers struct{ svc domain.ServicePort }

// submit answers 200 with the accepted submission, 400 for invalid input and 422 for spam
func (h *handlers) submit(r *stdhttp.Request, in domain.SubmitInput) (any, error) {
	return h.svc.Submit(r.Context(), in, MetaFrom(r))
}

// MetaFrom collects the caller facts the classifier may use
func MetaFrom(r *stdhttp.Request) domain.RequestMeta {
	ctx := r.Context()
	ip := pnet.ClientIP(ctx)
	if ip == "" {
		ip = r.RemoteAddr
	}
	return domain.RequestMeta{
		RequestID:      pnet.RequestID(ctx),
		ClientIP:       ip,
		UserAgentIsBot: IsBotUserAgent(r.UserAgent()),
	}
}
