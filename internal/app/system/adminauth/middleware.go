// internal/app/system/adminauth/middleware.go
package adminauth

import (
	"net/http"

	"github.com/lunicar/lunicar/internal/app/system/jsonutil"
	"go.uber.org/zap"
)

// RequireToken returns middleware that admits only requests carrying a
// live admin token in "Authorization: Bearer <token>".
//
// Usage in routes.go:
//
//	r.Route("/api/admin", func(r chi.Router) {
//	    r.Post("/login", adminH.Login)
//	    r.Group(func(r chi.Router) {
//	        r.Use(guard.RequireToken(logger))
//	        r.Get("/stats", adminH.Stats)
//	    })
//	})
func (g *Guard) RequireToken(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := g.Authorize(r.Header.Get("Authorization")); err != nil {
				logger.Debug("admin request rejected",
					zap.String("path", r.URL.Path),
					zap.String("reason", err.Error()),
				)
				jsonutil.Unauthorized(w, err.Error())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
