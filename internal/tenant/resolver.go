// internal/tenant/resolver.go
//
// Host → tenant resolution.
//
// Context
// -------
// Resolve turns a canonical hostname into exactly one routable tenant
// using three strategies, each tried only when the previous one found
// nothing:
//
//   1. Legacy `tenant.domain` column match     → provenance "subdomain"
//   2. Active `tenant_domain` binding match    → provenance "custom_domain"
//   3. Slug extraction from *.<base domain>    → provenance "subdomain"
//
// Reserved platform hosts short-circuit before step 1 with their own
// failure class; they must never reach a tenant lookup even when a
// tenant shares the slug.  Step 3 additionally strips a trailing
// admin-panel marker ("acmepanel.canopysites.com" → slug "acme").
//
// Notes
// -----
// • The resolver trusts store-level uniqueness and takes the first
//   match; it never deduplicates.
// • Unexpected store errors propagate untyped so the boundary fails
//   closed instead of mapping them to a client error.
// • Oxford commas, two spaces after periods.
package tenant

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/canopysites/canopy/internal/reserved"
)

// Resolver implements the fallback resolution algorithm.
type Resolver struct {
	dir         *Directory
	reserved    *reserved.Registry
	baseDomain  string // e.g. "canopysites.com"
	panelMarker string // e.g. "panel"
}

// NewResolver builds a Resolver.  baseDomain is the platform suffix
// used by step 3; panelMarker is the optional admin-panel suffix
// stripped from extracted slugs.
func NewResolver(dir *Directory, reg *reserved.Registry, baseDomain, panelMarker string) *Resolver {
	return &Resolver{
		dir:         dir,
		reserved:    reg,
		baseDomain:  strings.ToLower(strings.TrimPrefix(baseDomain, ".")),
		panelMarker: strings.ToLower(panelMarker),
	}
}

// Resolve maps a normalised host to a routable tenant and records how
// the binding was produced.
func (r *Resolver) Resolve(ctx context.Context, host string) (*Tenant, Provenance, error) {
	if host == "" {
		return nil, "", errNotFound(host)
	}
	if r.reserved.Contains(host) {
		return nil, "", errReserved(host)
	}

	// Step 1: legacy single-domain column.
	if t, err := r.dir.ByLegacyDomain(ctx, host); err == nil {
		return t, BySubdomain, nil
	} else if !IsNoRows(err) {
		return nil, "", err
	}

	// Step 2: verified domain binding.
	if t, err := r.dir.ByBoundDomain(ctx, host); err == nil {
		return t, ByCustomDomain, nil
	} else if !IsNoRows(err) {
		return nil, "", err
	}

	// Step 3: slug extraction, platform suffix only.
	if slug := r.slugFromHost(host); slug != "" {
		t, err := r.dir.BySlug(ctx, slug)
		if err == nil {
			return t, BySubdomain, nil
		}
		if !IsNoRows(err) {
			return nil, "", err
		}
		zap.S().Debugw("slug fallback missed", "host", host, "slug", slug)
	}

	return nil, "", errNotFound(host)
}

// slugFromHost extracts a candidate slug from "<sub>.<base domain>",
// stripping the trailing panel marker when present.  Returns "" when
// the host is not under the platform suffix.
func (r *Resolver) slugFromHost(host string) string {
	if r.baseDomain == "" || !strings.HasSuffix(host, "."+r.baseDomain) {
		return ""
	}
	sub := strings.TrimSuffix(host, "."+r.baseDomain)
	if sub == "" {
		return ""
	}
	if r.panelMarker != "" && len(sub) > len(r.panelMarker) {
		sub = strings.TrimSuffix(sub, r.panelMarker)
	}
	return sub
}
