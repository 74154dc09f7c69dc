// internal/guard/roles.go
//
// Role guard.  Allows the request iff the authenticated user's role is
// in the route's declared allow-list.  Routes without a RequireRoles
// marker carry no role restriction.
package guard

import (
	"net/http"

	"github.com/canopysites/canopy/internal/auth"
)

// RolesGuard is the second link in the chain.
type RolesGuard struct{}

func NewRolesGuard() *RolesGuard { return &RolesGuard{} }

func (g *RolesGuard) Name() string { return "roles" }

func (g *RolesGuard) Check(r *http.Request) (*http.Request, Result) {
	if IsPublic(r.Context()) {
		return r, Allow()
	}

	allow := allowedRoles(r.Context())
	if allow == nil {
		return r, Allow()
	}

	user := auth.UserFrom(r.Context())
	if user == nil {
		// The auth guard runs first and rejects unauthenticated
		// access; nothing to check without an identity.
		return r, Allow()
	}

	if _, ok := allow[user.Role]; !ok {
		return r, Deny(http.StatusForbidden,
			"INSUFFICIENT_ROLE", "role "+string(user.Role)+" may not access this route")
	}
	return r, Allow()
}
