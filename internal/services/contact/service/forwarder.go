package service

import (
	"context"
	"unicode/utf8"

	"contactguard/internal/platform/logger"
	"contactguard/internal/services/contact/domain"
)

// LogForwarder records accepted submissions in the log by id only.
// It is the default hand-off until a mailer or store is wired in
type LogForwarder struct {
	Log *logger.Logger
}

// Forward logs s without any user text
func (f LogForwarder) Forward(ctx context.Context, s domain.Submission) error {
	l := f.Log
	if l == nil {
		l = logger.C(ctx)
	}
	l.Info().
		Str("submission_id", s.ID).
		Str("request_id", s.RequestID).
		Time("received_at", s.ReceivedAt).
		Int("message_runes", utf8.RuneCountInString(s.Message)).
		Msg("contact forwarded")
	return nil
}

// Discard drops accepted submissions
type Discard struct{}

// Forward does nothing
func (Discard) Forward(context.Context, domain.Submission) error { return nil }

// ForwardFunc adapts a plain function to domain.Forwarder
type ForwardFunc func(ctx context.Context, s domain.Submission) error

// Forward calls f
func (f ForwardFunc) Forward(ctx context.Context, s domain.Submission) error { return f(ctx, s) }
