// internal/reserved/registry.go
//
// Registry of platform control-plane hostnames.
//
// Context
// -------
// A handful of hostnames belong to Canopy itself, not to any tenant:
// the operator portal, the admin console, the bare API apex, and plain
// localhost.  Traffic on these hosts runs in platform context and must
// never fall through to tenant resolution, even when a tenant happens
// to share the slug.  Historically this list was re-typed at every
// call site; the Registry is now the single source of truth and is
// injected wherever the distinction matters.
//
// Notes
// -----
// • The set is fixed at construction; lookups are lock-free.
// • Oxford commas, two spaces after periods.
package reserved

import "github.com/canopysites/canopy/internal/hostname"

// Default reserved hostnames for the hosted platform.
var defaultHosts = []string{
	"canopysites.com",
	"www.canopysites.com",
	"api.canopysites.com",
	"portal.canopysites.com",
	"admin.canopysites.com",
	"localhost",
}

// Registry answers "does this host belong to the platform itself?".
type Registry struct {
	hosts map[string]struct{}
}

// NewDefault returns the Registry preloaded with the platform hosts.
func NewDefault() *Registry { return New(defaultHosts...) }

// New builds a Registry from explicit hostnames.  Each entry is
// normalised so callers may pass raw values.
func New(hosts ...string) *Registry {
	set := make(map[string]struct{}, len(hosts))
	for _, h := range hosts {
		if n := hostname.Normalize(h); n != "" {
			set[n] = struct{}{}
		}
	}
	return &Registry{hosts: set}
}

// Contains reports whether host (already normalised or not) is a
// platform control-plane hostname.
func (r *Registry) Contains(host string) bool {
	_, ok := r.hosts[hostname.Normalize(host)]
	return ok
}
