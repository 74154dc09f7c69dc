// internal/guard/tenant.go
//
// Tenant-isolation guard.
//
// Context
// -------
// This guard adds isolation semantics on top of authentication: a
// tenant-scoped user may only act inside the tenant the middleware
// bound to the request.  The decision table, in order:
//
//   no user            → allow (auth guard already rejected protected
//                        routes; nothing to isolate)
//   SUPER_ADMIN        → allow, any context including platform
//   platform context   → deny, only super admins act without a tenant
//   user has no tenant → deny
//   tenant mismatch    → deny, citing both ids
//   otherwise          → allow
//
// Notes
// -----
// • Oxford commas, two spaces after periods.
package guard

import (
	"net/http"
	"strconv"

	"github.com/canopysites/canopy/internal/auth"
	"github.com/canopysites/canopy/internal/tenant"
)

// TenantGuard is the third link in the chain.
type TenantGuard struct{}

func NewTenantGuard() *TenantGuard { return &TenantGuard{} }

func (g *TenantGuard) Name() string { return "tenant" }

func (g *TenantGuard) Check(r *http.Request) (*http.Request, Result) {
	if IsPublic(r.Context()) {
		return r, Allow()
	}

	user := auth.UserFrom(r.Context())
	if user == nil {
		return r, Allow()
	}
	if user.SuperAdmin() {
		return r, Allow()
	}

	rc := tenant.FromContext(r.Context())
	if rc == nil || rc.Platform() {
		return r, Deny(http.StatusForbidden,
			"RESERVED_DOMAIN_ACCESS", "only SUPER_ADMIN may access this domain")
	}

	if user.TenantID == nil {
		return r, Deny(http.StatusForbidden,
			"NO_TENANT_MEMBERSHIP", "user is not associated with any tenant")
	}

	if *user.TenantID != *rc.TenantID {
		return r, Deny(http.StatusForbidden,
			"CROSS_TENANT_ACCESS",
			"cross-tenant access denied: user tenant "+
				strconv.FormatInt(*user.TenantID, 10)+
				", request tenant "+
				strconv.FormatInt(*rc.TenantID, 10))
	}

	return r, Allow()
}
