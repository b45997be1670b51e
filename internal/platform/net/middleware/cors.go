package middleware

import (
	"net/http"

	pstrings "contactguard/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// CORSOptions covers the go-chi/cors knobs the storefront needs. Unset lists take the
// defaults below, so only origins usually need configuring.
type CORSOptions struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

var (
	corsMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	corsHeaders = []string{"Accept", "Content-Type", chimw.RequestIDHeader}
	corsExposed = []string{chimw.RequestIDHeader}
)

// CORS lets a browser on an allowed origin post the form and read the request id back
func CORS(o CORSOptions) func(http.Handler) http.Handler {
	opts := chicors.Options{
		AllowedOrigins:   o.AllowedOrigins,
		AllowedMethods:   pstrings.IfEmpty(o.AllowedMethods, corsMethods),
		AllowedHeaders:   pstrings.IfEmpty(o.AllowedHeaders, corsHeaders),
		ExposedHeaders:   pstrings.IfEmpty(o.ExposedHeaders, corsExposed),
		AllowCredentials: o.AllowCredentials,
		MaxAge:           o.MaxAge,
	}
	return chicors.Handler(opts)
}
