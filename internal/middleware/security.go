// internal/middleware/security.go
//
// Baseline security headers for the API surface.
//
// Context
// -------
// Canopy serves JSON, not HTML, so the policy is blunt: nothing may
// frame us, nothing may be sniffed into another content type, and the
// CSP forbids any active content outright.  Headers are written before
// the handler runs, so they are present on every response including
// guard denials and resolver rejections.
//
// Notes
// -----
// • HSTS covers the tenant domains too; TLS terminates at the edge
//   proxy, but browsers still key the policy on the served hostname.
// • Oxford commas, two spaces after periods.
package middleware

import "net/http"

var securityHeaders = map[string]string{
	"Strict-Transport-Security": "max-age=63072000; includeSubDomains; preload",
	"Content-Security-Policy":   "default-src 'none'; frame-ancestors 'none'; base-uri 'none'",
	"X-Frame-Options":           "DENY",
	"X-Content-Type-Options":    "nosniff",
	"Referrer-Policy":           "strict-origin-when-cross-origin",
	"Permissions-Policy":        "geolocation=(), microphone=(), camera=()",
}

// Security stamps the baseline headers on every response.  Handlers
// may overwrite a header they set themselves; the stamp happens first.
func Security(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		for k, v := range securityHeaders {
			if h.Get(k) == "" {
				h.Set(k, v)
			}
		}
		next.ServeHTTP(w, r)
	})
}
