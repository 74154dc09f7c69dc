// internal/tenant/middleware.go
//
// Tenant-context middleware.
//
// Context
// -------
// Runs once per request, ahead of authentication.  Flow:
//
//  1. Route gating.  A short deny-list (health, metrics, and the
//     deprecated bulk-purge endpoints) never resolves.  Of the rest,
//     only API-shaped paths resolve; anything else is static serving
//     and passes through untouched.
//
//  2. Signal extraction.  X-Tenant-Id wins when present and must be a
//     routable numeric id.  Otherwise the first domain-bearing header
//     of X-Tenant-Host, X-Tenant-Domain, X-Forwarded-Host, and Host is
//     normalised and resolved.
//
//  3. Outcome.  Reserved hosts attach the platform context and
//     continue; that is success, not failure.  Resolver misses map to
//     400-class responses, and a tenant that resolved but is not
//     routable is rejected 403 here rather than silently served.
//
// The boundary decides how much failure detail leaks to clients: the
// machine-readable code always survives, but the human message is
// collapsed to a generic line unless expose_resolve_errors is set.
// Unexpected store errors return 500; the pipeline fails closed and
// never falls back to platform context.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.
package tenant

import (
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/canopysites/canopy/internal/hostname"
	"github.com/canopysites/canopy/internal/metrics"
	"github.com/canopysites/canopy/internal/respond"
)

// Route prefixes that never need tenant context.
var skipPrefixes = []string{
	"/healthz",
	"/metrics",
	"/internal/purge", // deprecated public bulk-delete routes
}

// Route prefixes that require resolution; everything else is treated
// as static serving and passes through without a binding.
var resolvePrefixes = []string{
	"/api/",
}

// Domain-bearing headers in priority order.  Host is consulted last
// via r.Host.
var domainHeaders = []string{
	"X-Tenant-Host",
	"X-Tenant-Domain",
	"X-Forwarded-Host",
}

// ContextMiddleware binds each API request to exactly one tenant, or
// to the explicit platform context.
type ContextMiddleware struct {
	dir          *Directory
	resolver     *Resolver
	exposeErrors bool
}

// NewContextMiddleware wires the middleware.  exposeErrors keeps the
// specific resolver message in 400 responses (development builds).
func NewContextMiddleware(dir *Directory, res *Resolver, exposeErrors bool) *ContextMiddleware {
	return &ContextMiddleware{dir: dir, resolver: res, exposeErrors: exposeErrors}
}

// Handler wraps next with tenant binding.
func (m *ContextMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !needsResolution(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		rc, rerr := m.bind(r)
		if rerr != nil {
			m.reject(w, rerr)
			return
		}

		metrics.TenantResolveTotal.WithLabelValues(string(rc.ResolvedBy)).Inc()
		next.ServeHTTP(w, r.WithContext(WithRequestContext(r.Context(), rc)))
	})
}

// needsResolution applies the deny-list and then the allow-list.
func needsResolution(path string) bool {
	for _, p := range skipPrefixes {
		if strings.HasPrefix(path, p) {
			return false
		}
	}
	for _, p := range resolvePrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// bind extracts the tenant signal and produces the request binding.
func (m *ContextMiddleware) bind(r *http.Request) (*RequestContext, error) {
	// Priority 1: explicit tenant id header.
	if raw := r.Header.Get("X-Tenant-Id"); raw != "" {
		return m.bindByID(r, raw)
	}

	// Priority 2: domain-bearing headers, then Host.
	host := ""
	for _, h := range domainHeaders {
		if v := r.Header.Get(h); v != "" {
			host = v
			break
		}
	}
	if host == "" {
		host = r.Host
	}
	if host == "" {
		return nil, errNoSignal()
	}

	return m.bindByHost(r, hostname.Normalize(host))
}

func (m *ContextMiddleware) bindByID(r *http.Request, raw string) (*RequestContext, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return nil, errInvalidHeader("X-Tenant-Id must be numeric")
	}

	t, err := m.dir.ByID(r.Context(), id)
	if err != nil {
		if IsNoRows(err) {
			return nil, errInvalidHeader("tenant not found or inactive")
		}
		return nil, err
	}
	if !t.IsActive || t.Status == StatusSuspended {
		return nil, errInvalidHeader("tenant not found or inactive")
	}

	return &RequestContext{TenantID: &t.ID, Tenant: t, ResolvedBy: ByHeader}, nil
}

func (m *ContextMiddleware) bindByHost(r *http.Request, host string) (*RequestContext, error) {
	// Reserved hosts are platform context, never an error.
	if m.resolver.reserved.Contains(host) {
		return &RequestContext{ResolvedBy: ByReserved}, nil
	}

	t, prov, err := m.resolver.Resolve(r.Context(), host)
	if err != nil {
		return nil, err
	}

	// Liveness re-check: a resolved but unroutable tenant is rejected
	// here, not silently served.
	if !t.Routable() {
		return nil, errInactive(host)
	}

	return &RequestContext{TenantID: &t.ID, Tenant: t, ResolvedBy: prov}, nil
}

// reject maps a binding failure onto the wire.
func (m *ContextMiddleware) reject(w http.ResponseWriter, err error) {
	re := AsResolveError(err)
	if re == nil {
		// Unexpected store failure: fail closed.
		zap.S().Errorw("tenant binding failed", "err", err)
		respond.Error(w, http.StatusInternalServerError,
			"TENANT_RESOLUTION_FAILED", "tenant resolution failed")
		return
	}

	metrics.TenantResolveErrorsTotal.WithLabelValues(string(re.Code)).Inc()
	zap.S().Infow("tenant binding rejected",
		"code", re.Code, "host", re.Host)

	status := boundaryStatus(re.Code)
	msg := re.Message
	if !m.exposeErrors && status == http.StatusBadRequest {
		msg = "invalid tenant request"
	}
	respond.Error(w, status, string(re.Code), msg)
}

// boundaryStatus is the one place the internal taxonomy maps to HTTP.
func boundaryStatus(code Code) int {
	switch code {
	case CodeTenantInactive:
		return http.StatusForbidden
	case CodeReservedDomain:
		// Reached only via the resolver (API callers handing a
		// reserved host through X-Tenant-Host without the middleware
		// short-circuit); treated as a malformed signal.
		return http.StatusBadRequest
	default:
		return http.StatusBadRequest
	}
}
