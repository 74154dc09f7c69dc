// internal/domaincheck/check.go
//
// HTTPS reachability probes for candidate domains.
//
// Context
// -------
// Before an operator activates a custom domain, the admin API probes
// it over HTTPS to catch DNS and TLS misconfiguration early.  A probe
// is best-effort: it either completes within the hard timeout or the
// domain is reported unreachable.  A slow or dead host must never hang
// the calling request, so every probe runs under its own context
// deadline, and batch probes are fanned out with a bounded errgroup.
//
// Notes
// -----
// • Unreachable is a result, not an error; Probe only returns the
//   status struct.
// • Oxford commas, two spaces after periods.
package domaincheck

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/canopysites/canopy/internal/hostname"
	"github.com/canopysites/canopy/internal/metrics"
)

// Defaults.
const (
	ProbeTimeout = 3 * time.Second
	MaxInFlight  = 8
)

// Result of one probe.
type Result struct {
	Host       string `json:"host"`
	Reachable  bool   `json:"reachable"`
	StatusCode int    `json:"status_code,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Checker probes candidate domains.
type Checker struct {
	client  *http.Client
	timeout time.Duration
	limit   int
}

// New returns a Checker with the default timeout and fan-out bound.
func New() *Checker {
	return NewWithClient(&http.Client{
		// Redirects count as reachable; do not follow them.
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}, ProbeTimeout, MaxInFlight)
}

// NewWithClient lets callers (and tests) supply the HTTP client and
// bounds explicitly.
func NewWithClient(client *http.Client, timeout time.Duration, limit int) *Checker {
	return &Checker{client: client, timeout: timeout, limit: limit}
}

// Probe checks one host over HTTPS.  The request is cancelled at the
// hard timeout and reported unreachable.
func (c *Checker) Probe(ctx context.Context, host string) Result {
	host = hostname.Normalize(host)
	res := Result{Host: host}
	if host == "" {
		res.Error = "empty host"
		metrics.DomainProbeTotal.WithLabelValues("invalid").Inc()
		return res
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, "https://"+host+"/", nil)
	if err != nil {
		res.Error = err.Error()
		metrics.DomainProbeTotal.WithLabelValues("invalid").Inc()
		return res
	}

	resp, err := c.client.Do(req)
	if err != nil {
		res.Error = err.Error()
		metrics.DomainProbeTotal.WithLabelValues("unreachable").Inc()
		return res
	}
	defer resp.Body.Close()

	res.Reachable = true
	res.StatusCode = resp.StatusCode
	metrics.DomainProbeTotal.WithLabelValues("reachable").Inc()
	return res
}

// ProbeAll fans out over hosts with at most MaxInFlight concurrent
// probes.  Results come back in input order.
func (c *Checker) ProbeAll(ctx context.Context, hosts []string) []Result {
	results := make([]Result, len(hosts))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.limit)
	for i, h := range hosts {
		g.Go(func() error {
			results[i] = c.Probe(ctx, h)
			return nil
		})
	}
	_ = g.Wait() // probes never return errors, only results

	return results
}
