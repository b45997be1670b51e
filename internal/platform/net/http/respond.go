// Package http provides the router facade, server and JSON helpers with a consistent envelope
package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "contactguard/internal/platform/errors"
	pnet "contactguard/internal/platform/net"
)

// Envelope is the body of every JSON answer. Success fills Data, failure fills
// Code, Error and optionally Reason and Field; never both
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Reason     string         `json:"reason,omitempty"`
	Error      string         `json:"error,omitempty"`
	Field      string         `json:"field,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

func newEnvelope(r *stdhttp.Request, status int) Envelope {
	return Envelope{
		StatusCode: status,
		Status:     stdhttp.StatusText(status),
		RequestID:  pnet.RequestID(r.Context()),
	}
}

// JSON writes v with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	h := w.Header()
	h.Set("Content-Type", "application/json; charset=utf-8")
	h.Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Respond writes a success envelope carrying data
func Respond(w stdhttp.ResponseWriter, r *stdhttp.Request, status int, data any) {
	env := newEnvelope(r, status)
	env.Data = data
	JSON(w, status, env)
}

// RespondError writes the envelope for err; the status comes from its code
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	status, wire := perr.HTTP(err)
	env := newEnvelope(r, status)
	env.Code, env.Reason, env.Error, env.Field = wire.Code, wire.Reason, wire.Message, wire.Field
	JSON(w, status, env)
}

// NotFound is the Router.NotFound fallback
func NotFound(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	RespondError(w, r, perr.NotFoundf("no route for %s %s", r.Method, r.URL.Path))
}

// MethodNotAllowed is the Router.MethodNotAllowed fallback
func MethodNotAllowed(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	RespondError(w, r, perr.Newf(perr.ErrorCodeMethodNotAllowed, "method %s not allowed", r.Method))
}

// Response is what return-style handlers hand back. An error Body picks its own status
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header
}

// Handle adapts a return-style handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).Write(w, r)
	}
}

// Write renders resp onto w
func (resp Response) Write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}
	if err, ok := resp.Body.(error); ok && err != nil {
		RespondError(w, r, err)
		return
	}
	status := resp.Status
	switch status {
	case 0:
		status = stdhttp.StatusOK
	case stdhttp.StatusNoContent:
		w.WriteHeader(status)
		return
	}
	Respond(w, r, status, resp.Body)
}

// OK returns a 200 response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Created returns a 201 response
func Created(data any) Response { return Response{Status: stdhttp.StatusCreated, Body: data} }

// NoContent returns a 204 response
func NoContent() Response { return Response{Status: stdhttp.StatusNoContent} }

// Error returns a response rendering err
func Error(err error) Response { return Response{Body: err} }
