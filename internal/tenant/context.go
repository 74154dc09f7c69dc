// internal/tenant/context.go
//
// Request-scoped tenant binding.
//
// Context
// -------
// The middleware resolves each request to exactly one tenant, or to
// the explicit platform context (TenantID == nil), and stores the
// result here.  Guards and handlers read it back through FromContext;
// nothing downstream may re-derive tenant identity from headers.
//
// Notes
// -----
// • TenantID nil is a valid state, not an error: it marks traffic on a
//   reserved platform host, actionable only by a super admin.
// • The struct is immutable after the middleware attaches it.
// • Oxford commas, two spaces after periods.
package tenant

import "context"

// Provenance records which strategy produced a tenant binding.
type Provenance string

const (
	ByCustomDomain Provenance = "custom_domain"
	BySubdomain    Provenance = "subdomain"
	ByHeader       Provenance = "header"
	ByReserved     Provenance = "reserved"
)

// RequestContext is the per-request tenant binding.
type RequestContext struct {
	TenantID   *int64  // nil == platform context
	Tenant     *Tenant // nil when TenantID is nil
	ResolvedBy Provenance
}

// Platform reports whether the request runs in platform context.
func (rc *RequestContext) Platform() bool { return rc.TenantID == nil }

type ctxKey struct{} // unexported, collision-proof

// WithRequestContext returns a context carrying rc.
func WithRequestContext(ctx context.Context, rc *RequestContext) context.Context {
	return context.WithValue(ctx, ctxKey{}, rc)
}

// FromContext returns the binding attached by the middleware, or nil
// when the route skipped resolution.
func FromContext(ctx context.Context) *RequestContext {
	v, _ := ctx.Value(ctxKey{}).(*RequestContext)
	return v
}
