// Package network provides request address helpers.
package network

import (
	"net"
	"net/http"
)

// GetClientIP returns the client address used to key admin login
// attempts: RemoteAddr without its port. Forwarding headers are ignored
// here; behind a trusted proxy, chi's RealIP middleware rewrites
// RemoteAddr from them first.
func GetClientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
