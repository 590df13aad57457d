package controller

import (
	"net/http"
	"slices"
)

// CORSOptions configures WithCORS.
type CORSOptions struct {
	// AllowedOrigins lists the origins allowed to call the API. An empty list
	// or a "*" entry allows any origin.
	AllowedOrigins []string
}

func (o CORSOptions) allowOrigin(origin string) string {
	if len(o.AllowedOrigins) == 0 || slices.Contains(o.AllowedOrigins, "*") {
		return "*"
	}
	if slices.Contains(o.AllowedOrigins, origin) {
		return origin
	}

	return ""
}

// WithCORS returns a middleware that sets CORS headers on every response and
// short-circuits OPTIONS preflight requests with 204 No Content. The browser
// page calling POST /shorten is usually served from another origin.
func WithCORS(opts CORSOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if origin := opts.allowOrigin(r.Header.Get("Origin")); origin != "" {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				if origin != "*" {
					w.Header().Set("Access-Control-Allow-Credentials", "true")
					w.Header().Add("Vary", "Origin")
				}
			}
			w.Header().Set("Access-Control-Allow-Headers",
				"Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Request-Id")
			w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

			// handle preflight requests quickly
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
