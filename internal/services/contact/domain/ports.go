package domain

import (
	"context"

	"contactguard/internal/core/contactguard"
)

// ServicePort is implemented by the contact service
type ServicePort interface {
	Submit(ctx context.Context, in SubmitInput, meta RequestMeta) (SubmitResult, error)
}

// Forwarder hands accepted submissions to whatever stores or mails them
type Forwarder interface {
	Forward(ctx context.Context, s Submission) error
}

// RulesPort exposes the active rule table to operator endpoints
type RulesPort interface {
	Rules() contactguard.Rules
}
