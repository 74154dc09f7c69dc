// internal/guard/subscription.go
//
// Subscription guard.
//
// Context
// -------
// Administrative routes additionally require the bound tenant's
// subscription to be current.  Everything outside the admin prefix
// allows unconditionally, as do public routes, unauthenticated
// requests (deferred to the auth guard), super admins, and platform
// context (global endpoints have no subscription to check).  The
// status is read fresh from billing rather than trusted from the row
// the middleware loaded, so a mid-session lapse takes effect on the
// next admin call.
//
// Notes
// -----
// • 402 Payment Required is deliberate; clients key on the status.
// • Oxford commas, two spaces after periods.
package guard

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/canopysites/canopy/internal/auth"
	"github.com/canopysites/canopy/internal/tenant"
)

// AdminPrefix gates which routes the subscription guard evaluates.
const AdminPrefix = "/api/admin"

// SubscriptionSource reports the current subscription status of one
// tenant.  Implemented by billing.Service.
type SubscriptionSource interface {
	SubscriptionStatus(ctx context.Context, tenantID int64) (string, error)
}

// SubscriptionGuard is the last link in the chain.
type SubscriptionGuard struct {
	billing SubscriptionSource
}

// NewSubscriptionGuard wraps a billing source.
func NewSubscriptionGuard(b SubscriptionSource) *SubscriptionGuard {
	return &SubscriptionGuard{billing: b}
}

func (g *SubscriptionGuard) Name() string { return "subscription" }

func (g *SubscriptionGuard) Check(r *http.Request) (*http.Request, Result) {
	if !strings.HasPrefix(r.URL.Path, AdminPrefix) {
		return r, Allow()
	}
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
		return r, Allow()
	}

	status, err := g.billing.SubscriptionStatus(r.Context(), *rc.TenantID)
	if err != nil {
		// Fail closed: an unknown subscription state must not grant
		// admin access.
		zap.S().Errorw("subscription lookup failed",
			"tenant_id", *rc.TenantID, "err", err)
		return r, Deny(http.StatusPaymentRequired,
			"SUBSCRIPTION_REQUIRED", "subscription status unavailable")
	}
	if status != tenant.SubscriptionActive {
		return r, Deny(http.StatusPaymentRequired,
			"SUBSCRIPTION_REQUIRED", "an active subscription is required")
	}

	return r, Allow()
}
