// Package apicors provides CORS middleware for the public JSON API.
//
// The public read endpoints carry no cookies, so any origin may call them.
// The admin API is same-origin and gets no CORS headers.
package apicors

import (
	"net/http"
	"strings"
)

// Middleware returns CORS middleware allowing any origin, without
// credentials, for the given methods (GET when none are given). Preflight
// OPTIONS requests are answered directly with 204.
//
// Usage in routes.go:
//
//	r.Route("/api", func(r chi.Router) {
//	    r.Use(apicors.Middleware(http.MethodGet, http.MethodPost))
//	    r.Get("/villes", citiesH.List)
//	})
func Middleware(methods ...string) func(http.Handler) http.Handler {
	if len(methods) == 0 {
		methods = []string{http.MethodGet}
	}
	allow := strings.Join(append(methods, http.MethodOptions), ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", "*")
			h.Set("Access-Control-Allow-Methods", allow)
			h.Set("Access-Control-Allow-Headers", "Content-Type, Accept")
			h.Set("Access-Control-Max-Age", "86400")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
