package swaggerkit

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	phttp "contactguard/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func TestDoc_AddsServersAndDefault500(t *testing.T) {
	raw, err := Doc("/api/v1", func(spec map[string]any) {
		spec["info"].(map[string]any)["version"] = "test"
	})
	if err != nil {
		t.Fatal(err)
	}
	var spec map[string]any
	if err := json.Unmarshal(raw, &spec); err != nil {
		t.Fatal(err)
	}
	servers := spec["servers"].([]any)
	if servers[0].(map[string]any)["url"] != "/api/v1" {
		t.Fatalf("servers = %v", servers)
	}
	if spec["info"].(map[string]any)["version"] != "test" {
		t.Fatal("mutator not applied")
	}
	paths := spec["paths"].(map[string]any)
	for _, p := range []string{"/contact", "/meta/health", "/meta/version", "/meta/rules"} {
		node, ok := paths[p].(map[string]any)
		if !ok {
			t.Fatalf("missing path %s", p)
		}
		for _, op := range node {
			if _, ok := op.(map[string]any)["responses"].(map[string]any)["500"]; !ok {
				t.Fatalf("%s lacks default 500", p)
			}
		}
	}
}

func TestDoc_KeepsExistingResponse(t *testing.T) {
	spec := map[string]any{"paths": map[string]any{
		"/x": map[string]any{"get": map[string]any{"responses": map[string]any{"500": "mine"}}},
	}}
	addDefaultResponse(spec, "500", "Internal Server Error")
	got := spec["paths"].(map[string]any)["/x"].(map[string]any)["get"].(map[string]any)["responses"].(map[string]any)["500"]
	if got != "mine" {
		t.Fatalf("overwrote existing response: %v", got)
	}
}

func TestMount(t *testing.T) {
	mux := chi.NewRouter()
	if err := Mount(phttp.AdaptChi(mux), true, "/api/v1"); err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/docs/doc.json", nil))
	if rec.Code != stdhttp.StatusOK || rec.Header().Get("Content-Type") != "application/json; charset=utf-8" {
		t.Fatalf("doc.json status=%d ct=%q", rec.Code, rec.Header().Get("Content-Type"))
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/docs", nil))
	if rec.Code != stdhttp.StatusMovedPermanently || rec.Header().Get("Location") != "/docs/index.html" {
		t.Fatalf("redirect status=%d loc=%q", rec.Code, rec.Header().Get("Location"))
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/docs/index.html", nil))
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("ui status=%d", rec.Code)
	}
}

func TestMount_Disabled(t *testing.T) {
	mux := chi.NewRouter()
	if err := Mount(phttp.AdaptChi(mux), false, "/api/v1"); err != nil {
		t.Fatal(err)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/docs/doc.json", nil))
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status=%d", rec.Code)
	}
}
