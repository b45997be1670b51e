package contactguard

import (
	"fmt"
	"regexp"

	"contactguard/internal/core/signals"
)

// emailPattern is the pragmatic browser-level check, not RFC 5322
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// field tags used on INVALID_INPUT outcomes
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldMessage = "message"
)

// checkStructure runs the structural rules in order and returns the first
// failure. ok is true when every rule passes. Garbage never reaches scoring
func checkStructure(f Fields, lim Limits) (Outcome, bool) {
	nameLen := signals.RuneLen(f.Name)
	switch {
	case nameLen == 0:
		return invalid(FieldName, MsgNameRequired), false
	case nameLen > lim.MaxName:
		return invalid(FieldName, fmt.Sprintf(MsgNameTooLong, lim.MaxName)), false
	case signals.HasDigit(f.Name):
		return invalid(FieldName, MsgNameDigits), false
	}

	emailLen := signals.RuneLen(f.Email)
	switch {
	case emailLen == 0:
		return invalid(FieldEmail, MsgEmailRequired), false
	case emailLen > lim.MaxEmail:
		return invalid(FieldEmail, fmt.Sprintf(MsgEmailTooLong, lim.MaxEmail)), false
	case !emailPattern.MatchString(f.Email):
		return invalid(FieldEmail, MsgEmailInvalid), false
	}

	msgLen := signals.RuneLen(f.Message)
	switch {
	case msgLen == 0:
		return invalid(FieldMessage, MsgMessageRequired), false
	case msgLen > lim.MaxMessage:
		return invalid(FieldMessage, fmt.Sprintf(MsgMessageTooLong, lim.MaxMessage)), false
	}

	if o, ok := checkWords(f.Message, lim); !ok {
		return o, false
	}
	return Outcome{}, true
}

// checkWords enforces the letter-bearing token floor on a message
func checkWords(msg string, lim Limits) (Outcome, bool) {
	if signals.LetterTokens(msg) < lim.MinWords {
		return invalid(FieldMessage, fmt.Sprintf(MsgMessageWords, lim.MinWords)), false
	}
	return Outcome{}, true
}
