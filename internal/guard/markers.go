// internal/guard/markers.go
//
// Per-route annotations read by the chain.
//
// Context
// -------
// Routes declare "public" and role allow-lists through small marker
// middlewares.  Markers only write to the request context; every guard
// consults them, which is what lets one chain instance serve the whole
// API surface.  Markers must be installed ahead of the chain, or the
// guards will not see them.
package guard

import (
	"context"
	"net/http"

	"github.com/canopysites/canopy/internal/auth"
)

type publicKey struct{}
type rolesKey struct{}

// Public marks the route as requiring no authentication; every guard
// allows it unconditionally.
func Public(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), publicKey{}, true)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IsPublic reports whether the route carries the public marker.
func IsPublic(ctx context.Context) bool {
	v, _ := ctx.Value(publicKey{}).(bool)
	return v
}

// RequireRoles declares the route's role allow-list.
func RequireRoles(roles ...auth.Role) func(http.Handler) http.Handler {
	if len(roles) == 0 {
		panic("guard.RequireRoles: at least one role must be supplied")
	}
	allow := make(map[auth.Role]struct{}, len(roles))
	for _, r := range roles {
		allow[r] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), rolesKey{}, allow)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// allowedRoles returns the declared allow-list, or nil when the route
// carries no role restriction.
func allowedRoles(ctx context.Context) map[auth.Role]struct{} {
	v, _ := ctx.Value(rolesKey{}).(map[auth.Role]struct{})
	return v
}
