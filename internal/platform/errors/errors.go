// Package errors provides the structured error used from the classifier boundary
// out to the JSON envelope. Import it as perr.
package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode is the machine facing class of an error. Values go on the wire as numbers,
// so only ever append.
type ErrorCode uint16

const (
	ErrorCodeUnknown ErrorCode = iota
	ErrorCodePanic
	ErrorCodeUnavailable
	ErrorCodeTooManyRequests
	// ErrorCodeInvalidArgument is for input that is well formed but refused, like spam
	ErrorCodeInvalidArgument
	ErrorCodeValidation
	ErrorCodeJSON
	ErrorCodeNotFound
	ErrorCodeTooLarge
	ErrorCodeUnsupportedMedia
	ErrorCodeMethodNotAllowed
)

// internalMessage replaces the text of errors that did not come through this package
const internalMessage = "internal error"

type codeInfo struct {
	name   string
	status int
}

var codes = map[ErrorCode]codeInfo{
	ErrorCodeUnknown:          {"unknown", http.StatusInternalServerError},
	ErrorCodePanic:            {"panic", http.StatusInternalServerError},
	ErrorCodeUnavailable:      {"unavailable", http.StatusServiceUnavailable},
	ErrorCodeTooManyRequests:  {"too_many_requests", http.StatusTooManyRequests},
	ErrorCodeInvalidArgument:  {"invalid_argument", http.StatusUnprocessableEntity},
	ErrorCodeValidation:       {"validation", http.StatusBadRequest},
	ErrorCodeJSON:             {"json", http.StatusBadRequest},
	ErrorCodeNotFound:         {"not_found", http.StatusNotFound},
	ErrorCodeTooLarge:         {"too_large", http.StatusRequestEntityTooLarge},
	ErrorCodeUnsupportedMedia: {"unsupported_media", http.StatusUnsupportedMediaType},
	ErrorCodeMethodNotAllowed: {"method_not_allowed", http.StatusMethodNotAllowed},
}

func (c ErrorCode) String() string {
	if ci, ok := codes[c]; ok {
		return ci.name
	}
	return fmt.Sprintf("code(%d)", uint16(c))
}

// HTTPStatusCode maps a code to its response status; unknown codes are a 500
func HTTPStatusCode(c ErrorCode) int {
	if ci, ok := codes[c]; ok {
		return ci.status
	}
	return http.StatusInternalServerError
}

// Error carries a message that is safe to show a visitor, a code for machines and,
// optionally, a stable reason tag (SPAM_DETECTED), the offending field and an op label
// for logs. The wrapped cause is never rendered on the wire.
type Error struct {
	orig   error
	msg    string
	code   ErrorCode
	reason string
	field  string
	op     string
}

// Wire is the public projection of an error
type Wire struct {
	Code    ErrorCode `json:"code"`
	Reason  string    `json:"reason,omitempty"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.orig == nil:
		return e.msg
	case e.op != "":
		return fmt.Sprintf("%s: %s: %v", e.op, e.msg, e.orig)
	default:
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}
}

func (e *Error) Unwrap() error   { return e.orig }
func (e *Error) Code() ErrorCode { return e.code }
func (e *Error) Reason() string  { return e.reason }
func (e *Error) Field() string   { return e.field }
func (e *Error) Op() string      { return e.op }

func (e *Error) ToWire() Wire {
	return Wire{Code: e.code, Reason: e.reason, Message: e.msg, Field: e.field}
}

// As finds the first *Error in err's chain
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// WireFrom projects any error. Foreign errors become Unknown with a fixed message so
// driver or transport detail never reaches a client.
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return e.ToWire()
	}
	return Wire{Code: ErrorCodeUnknown, Message: internalMessage}
}

// HTTP returns the status and wire payload for err in one call
func HTTP(err error) (int, Wire) {
	if err == nil {
		return http.StatusOK, Wire{}
	}
	return HTTPStatusCode(CodeOf(err)), WireFrom(err)
}

func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

func ReasonOf(err error) string {
	if e, ok := As(err); ok {
		return e.reason
	}
	return ""
}

// with applies set to a copy of the first *Error in err's chain. Foreign errors pass through.
func with(err error, set func(*Error)) error {
	e, ok := As(err)
	if !ok {
		return err
	}
	c := *e
	set(&c)
	return &c
}

func WithField(err error, field string) error {
	return with(err, func(e *Error) { e.field = field })
}

func WithOp(err error, op string) error {
	return with(err, func(e *Error) { e.op = op })
}

func WithReason(err error, reason string) error {
	return with(err, func(e *Error) { e.reason = reason })
}

func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrap keeps orig for errors.Is/As and logs; msg is what the client sees
func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

func NotFoundf(format string, a ...any) error { return Newf(ErrorCodeNotFound, format, a...) }

func InvalidArgf(format string, a ...any) error { return Newf(ErrorCodeInvalidArgument, format, a...) }

func JSONErrf(format string, a ...any) error { return Newf(ErrorCodeJSON, format, a...) }

func PanicErrf(format string, a ...any) error { return Newf(ErrorCodePanic, format, a...) }

func TooLargef(format string, a ...any) error { return Newf(ErrorCodeTooLarge, format, a...) }

func Unavailablef(format string, a ...any) error { return Newf(ErrorCodeUnavailable, format, a...) }

func UnsupportedMediaf(format string, a ...any) error {
	return Newf(ErrorCodeUnsupportedMedia, format, a...)
}
