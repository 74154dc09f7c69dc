// Package middleware holds small, composable HTTP wrappers.
package middleware

import (
	"net/http"

	"github.com/canopysites/canopy/internal/hostname"
	"github.com/canopysites/canopy/internal/reserved"
	"github.com/canopysites/canopy/internal/tenant"
)

// ForceHTTPS wraps h.  If the request is plain HTTP, the host is not
// localhost or a reserved platform host, and the resolver confirms a
// tenant exists, the wrapper issues a 308 Permanent Redirect to the
// HTTPS version of the same URL.  Otherwise it calls the next handler
// unchanged.
func ForceHTTPS(res *tenant.Resolver, reg *reserved.Registry, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host := hostname.Normalize(r.Host)

		// Already HTTPS, dev host, or platform host → continue.
		if r.TLS != nil || host == "localhost" || reg.Contains(host) {
			h.ServeHTTP(w, r)
			return
		}

		// Only redirect hosts that actually bind to a tenant.
		if _, _, err := res.Resolve(r.Context(), host); err == nil {
			target := "https://" + r.Host + r.URL.RequestURI()
			http.Redirect(w, r, target, http.StatusPermanentRedirect)
			return
		}

		// Unknown host → keep normal flow (likely 400 later).
		h.ServeHTTP(w, r)
	})
}
