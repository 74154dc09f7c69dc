// Package metrics holds Prometheus instruments that are used across the
// platform.  All collectors are registered with the global registry, so
// importing this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	TenantResolveTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "canopy_tenant_resolve_total",
			Help: "Successful tenant resolutions by provenance.",
		},
		[]string{"provenance"})

	TenantResolveErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "canopy_tenant_resolve_errors_total",
			Help: "Failed tenant resolutions by failure code.",
		},
		[]string{"code"})

	GuardDenialsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "canopy_guard_denials_total",
			Help: "Requests rejected by the guard chain, per guard.",
		},
		[]string{"guard"})

	DomainProbeTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "canopy_domain_probe_total",
			Help: "Domain reachability probes by result.",
		},
		[]string{"result"})
)

func init() {
	prometheus.MustRegister(
		TenantResolveTotal,
		TenantResolveErrorsTotal,
		GuardDenialsTotal,
		DomainProbeTotal,
	)
}
