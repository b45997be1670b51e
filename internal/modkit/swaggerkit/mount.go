// Package swaggerkit serves the embedded OpenAPI document and the swagger UI
package swaggerkit

import (
	_ "embed"
	"encoding/json"
	"net/http"

	phttp "contactguard/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

//go:embed openapi.json
var openapiDoc []byte

// SpecMutator lets callers tweak the parsed spec before it is served
type SpecMutator func(map[string]any)

// Doc returns the served document after mutators and defaults are applied
func Doc(basePath string, mutators ...SpecMutator) ([]byte, error) {
	var spec map[string]any
	if err := json.Unmarshal(openapiDoc, &spec); err != nil {
		return nil, err
	}
	ensureServers(spec, basePath)
	addDefaultResponse(spec, "500", "Internal Server Error")
	for _, m := range mutators {
		m(spec)
	}
	return json.Marshal(spec)
}

// Mount serves /docs/doc.json and the swagger UI under /docs/ when enabled
func Mount(r phttp.Router, enabled bool, basePath string, mutators ...SpecMutator) error {
	if !enabled {
		return nil
	}
	doc, err := Doc(basePath, mutators...)
	if err != nil {
		return err
	}
	r.Get("/docs", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/docs/index.html", http.StatusMovedPermanently)
	})
	r.Get("/docs/doc.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(doc)
	})
	r.Handle("/docs/*", httpSwagger.Handler(httpSwagger.URL("/docs/doc.json")))
	return nil
}

// ensureServers sets the servers array when the document has none
func ensureServers(spec map[string]any, url string) {
	if _, ok := spec["servers"]; ok || url == "" {
		return
	}
	spec["servers"] = []any{map[string]any{"url": url}}
}

// addDefaultResponse adds an ErrorEnvelope response for code to every operation that lacks one
func addDefaultResponse(spec map[string]any, code, description string) {
	paths, ok := spec["paths"].(map[string]any)
	if !ok {
		return
	}
	resp := map[string]any{
		"description": description,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/ErrorEnvelope"},
			},
		},
	}
	for _, p := range paths {
		node, ok := p.(map[string]any)
		if !ok {
			continue
		}
		for _, opAny := range node {
			op, ok := opAny.(map[string]any)
			if !ok {
				continue
			}
			responses, ok := op["responses"].(map[string]any)
			if !ok {
				responses = map[string]any{}
				op["responses"] = responses
			}
			if _, exists := responses[code]; !exists {
				responses[code] = resp
			}
		}
	}
}
