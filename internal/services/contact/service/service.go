// Package service runs contact submissions through the classifier and hands
// accepted ones downstream
package service

import (
	"context"
	"time"

	"contactguard/internal/core/contactguard"
	perr "contactguard/internal/platform/errors"
	"contactguard/internal/platform/logger"
	"contactguard/internal/services/contact/domain"

	"github.com/google/uuid"
)

// Service is the public service port
type Service interface {
	domain.ServicePort
	domain.RulesPort
}

// newSubmissionID is swapped in tests
var newSubmissionID = uuid.NewString

// Options control service behavior
type Options struct {
	// Classifier is required
	Classifier *contactguard.Classifier
	// Forwarder receives accepted submissions; nil discards them
	Forwarder domain.Forwarder
	// Log is the component logger; nil uses the named root logger
	Log *logger.Logger
	// Now stamps accepted submissions; nil uses time.Now
	Now func() time.Time
}

// Svc implements Service
type Svc struct {
	cls *contactguard.Classifier
	fwd domain.Forwarder
	log *logger.Logger
	now func() time.Time
}

// New constructs the service
func New(opt Options) *Svc {
	if opt.Classifier == nil {
		panic("contact.Service requires a non nil Classifier")
	}
	s := &Svc{cls: opt.Classifier, fwd: opt.Forwarder, log: opt.Log, now: opt.Now}
	if s.fwd == nil {
		s.fwd = Discard{}
	}
	if s.log == nil {
		s.log = logger.Named("contact")
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Rules returns the active rule table
func (s *Svc) Rules() contactguard.Rules {
	return contactguard.Rules{Weights: s.cls.Weights(), Limits: s.cls.Limits()}
}

// Submit classifies one submission. Rejections come back as *perr.Error carrying
// the user-facing message, accepted submissions are forwarded before returning
func (s *Svc) Submit(ctx context.Context, in domain.SubmitInput, meta domain.RequestMeta) (domain.SubmitResult, error) {
	out := s.cls.Validate(contactguard.Submission{
		Name:           in.Name,
		Email:          in.Email,
		Message:        in.Message,
		Website:        in.Website,
		FormStartMs:    string(in.FormStartMs),
		UserAgentIsBot: meta.UserAgentIsBot,
	})

	l := s.log.With().Str("request_id", meta.RequestID).Str("client_ip", meta.ClientIP).Logger()

	if !out.Accepted() {
		if out.IsSpam() {
			l.Warn().Int("score", out.Score).Strs("flags", out.Flags).Bool("ua_bot", meta.UserAgentIsBot).Msg("contact rejected as spam")
		} else {
			l.Debug().Str("field", out.Field).Msg("contact rejected as invalid input")
		}
		return domain.SubmitResult{}, OutcomeError(out)
	}

	sub := domain.Submission{
		ID:         newSubmissionID(),
		Name:       out.Fields.Name,
		Email:      out.Fields.Email,
		Message:    out.Fields.Message,
		ReceivedAt: s.now().UTC(),
		RequestID:  meta.RequestID,
		ClientIP:   meta.ClientIP,
	}
	if err := s.fwd.Forward(ctx, sub); err != nil {
		l.Error().Err(err).Str("submission_id", sub.ID).Msg("contact forward failed")
		return domain.SubmitResult{}, perr.WithOp(
			perr.Wrap(err, perr.ErrorCodeUnavailable, "we could not deliver your message, please try again later"),
			"contact.forward",
		)
	}

	l.Info().Str("submission_id", sub.ID).Msg("contact accepted")
	return domain.SubmitResult{
		SubmissionID: sub.ID,
		Status:       domain.StatusAccepted,
		Name:         sub.Name,
		Email:        sub.Email,
		Message:      sub.Message,
	}, nil
}

