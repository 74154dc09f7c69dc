// internal/guard/guard.go
//
// Ordered authorization pipeline.
//
// Context
// -------
// Authorization runs as an explicit chain of guards, evaluated in the
// order they were given to NewChain: authentication, role check,
// tenant isolation, then subscription.  The ordering is load-bearing
// (TenantGuard assumes the auth guard already ran and attached the
// user), so it lives in one constructor call instead of being implied
// by registration order scattered across the router.
//
// A guard may enrich the request (AuthGuard attaches the verified
// user) by returning a replacement *http.Request; later guards see the
// enriched context.  The first denial is terminal: the response is
// written and neither later guards nor the handler run.
//
// Notes
// -----
// • Route markers (Public, RequireRoles) must be installed ahead of
//   the chain in the middleware stack.
// • Oxford commas, two spaces after periods.
package guard

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/canopysites/canopy/internal/metrics"
	"github.com/canopysites/canopy/internal/respond"
)

// Result is one guard's verdict.
type Result struct {
	Allowed bool
	Status  int
	Code    string
	Message string
}

// Allow is the passing verdict.
func Allow() Result { return Result{Allowed: true} }

// Deny builds a terminal rejection.
func Deny(status int, code, message string) Result {
	return Result{Status: status, Code: code, Message: message}
}

// Guard is one link in the chain.  Check may return a replacement
// request to hand an enriched context to later guards.
type Guard interface {
	Name() string
	Check(r *http.Request) (*http.Request, Result)
}

// Chain evaluates guards in order.
type Chain struct {
	guards []Guard
}

// NewChain fixes the evaluation order.
func NewChain(guards ...Guard) *Chain {
	if len(guards) == 0 {
		panic("guard.NewChain: at least one guard is required")
	}
	return &Chain{guards: guards}
}

// Middleware runs the chain ahead of next.
func (c *Chain) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, g := range c.guards {
			req, res := g.Check(r)
			if !res.Allowed {
				metrics.GuardDenialsTotal.WithLabelValues(g.Name()).Inc()
				zap.S().Infow("request denied",
					"guard", g.Name(),
					"code", res.Code,
					"path", r.URL.Path,
				)
				respond.Error(w, res.Status, res.Code, res.Message)
				return
			}
			if req != nil {
				r = req
			}
		}
		next.ServeHTTP(w, r)
	})
}
