package service

import (
	"contactguard/internal/core/contactguard"
	perr "contactguard/internal/platform/errors"
)

// OutcomeError maps a rejected outcome onto the transport error type.
// The user-facing message passes through verbatim; score and flags never leave
// the service. An accepted outcome yields nil
func OutcomeError(o contactguard.Outcome) error {
	switch {
	case o.Accepted():
		return nil
	case o.IsSpam():
		return perr.WithReason(perr.New(perr.ErrorCodeInvalidArgument, contactguard.MsgSpam), string(contactguard.CodeSpamDetected))
	default:
		err := perr.WithReason(perr.New(perr.ErrorCodeValidation, o.Message), string(contactguard.CodeInvalidInput))
		if o.Field != "" {
			err = perr.WithField(err, o.Field)
		}
		return err
	}
}
