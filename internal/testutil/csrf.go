package testutil

import (
	"net/http"
	"net/http/httptest"

	"github.com/gorilla/csrf"
)

var csrfTestKey = []byte("0123456789abcdef0123456789abcdef")

// WithCSRFToken returns r carrying a real gorilla/csrf token in its
// context, so templates that render csrf.Token(r) get a non-empty value.
// The token is issued on a GET copy of r; the returned request keeps r's
// method and body.
//
//	req := testutil.WithCSRFToken(httptest.NewRequest(http.MethodGet, "/reprise", nil))
func WithCSRFToken(r *http.Request) *http.Request {
	probe := r.Clone(r.Context())
	probe.Method = http.MethodGet

	out := r
	protect := csrf.Protect(csrfTestKey, csrf.Secure(false), csrf.FieldName("csrf_token"))
	protect(http.HandlerFunc(func(_ http.ResponseWriter, req *http.Request) {
		out = r.WithContext(req.Context())
	})).ServeHTTP(httptest.NewRecorder(), probe)
	return out
}
