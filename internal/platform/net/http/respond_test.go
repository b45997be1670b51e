package http

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	perr "contactguard/internal/platform/errors"
	pnet "contactguard/internal/platform/net"
)

func reqWithReqID(method, path, rid string) *stdhttp.Request {
	r := httptest.NewRequest(method, path, nil)
	return r.WithContext(pnet.WithRequest(r.Context(), rid))
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (%s)", err, rec.Body.String())
	}
	return env
}

func TestRespond(t *testing.T) {
	rec := httptest.NewRecorder()
	Respond(rec, reqWithReqID("GET", "/x", "rid-1"), stdhttp.StatusOK, map[string]string{"k": "v"})

	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("content type = %q", ct)
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatal("nosniff header missing")
	}
	env := decodeEnvelope(t, rec)
	if env.RequestID != "rid-1" || env.Status != "OK" || env.Error != "" {
		t.Fatalf("envelope = %+v", env)
	}
}

func TestRespondError(t *testing.T) {
	err := perr.WithReason(perr.WithField(perr.New(perr.ErrorCodeValidation, "Please enter your name."), "name"), "INVALID_INPUT")
	rec := httptest.NewRecorder()
	RespondError(rec, reqWithReqID("POST", "/contact", "rid-2"), err)

	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Code != perr.ErrorCodeValidation || env.Reason != "INVALID_INPUT" ||
		env.Field != "name" || env.Error != "Please enter your name." || env.RequestID != "rid-2" {
		t.Fatalf("envelope = %+v", env)
	}
	if env.Data != nil {
		t.Fatalf("error envelope must not carry data")
	}
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	NotFound(rec, httptest.NewRequest("GET", "/nope", nil))
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("404 status = %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Code != perr.ErrorCodeNotFound {
		t.Fatalf("404 envelope = %+v", env)
	}

	rec = httptest.NewRecorder()
	MethodNotAllowed(rec, httptest.NewRequest("DELETE", "/contact", nil))
	if rec.Code != stdhttp.StatusMethodNotAllowed {
		t.Fatalf("405 status = %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Error != "method DELETE not allowed" || env.Code != perr.ErrorCodeMethodNotAllowed {
		t.Fatalf("405 envelope = %+v", env)
	}
}

func TestReturnStyle_Handle(t *testing.T) {
	cases := []struct {
		name   string
		resp   Response
		status int
		empty  bool
	}{
		{name: "ok", resp: OK("x"), status: stdhttp.StatusOK},
		{name: "created", resp: Created("x"), status: stdhttp.StatusCreated},
		{name: "zero status means ok", resp: Response{Body: "x"}, status: stdhttp.StatusOK},
		{name: "no content", resp: NoContent(), status: stdhttp.StatusNoContent, empty: true},
		{name: "error", resp: Error(perr.InvalidArgf("spam")), status: stdhttp.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Handle(func(*stdhttp.Request) Response { return tc.resp })(rec, reqWithReqID("GET", "/", "rid"))
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
			if tc.empty && rec.Body.Len() != 0 {
				t.Fatalf("expected empty body, got %q", rec.Body.String())
			}
			if !tc.empty {
				if env := decodeEnvelope(t, rec); env.StatusCode != tc.status || env.RequestID != "rid" {
					t.Fatalf("envelope = %+v", env)
				}
			}
		})
	}
}

func TestReturnStyle_Headers(t *testing.T) {
	rec := httptest.NewRecorder()
	h := Handle(func(*stdhttp.Request) Response {
		return Response{Status: stdhttp.StatusOK, Body: "x", Header: stdhttp.Header{"X-Submission": {"abc"}}}
	})
	h(rec, httptest.NewRequest("GET", "/", nil))
	if got := rec.Header().Get("X-Submission"); got != "abc" {
		t.Fatalf("header = %q", got)
	}
}
