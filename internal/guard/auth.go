// internal/guard/auth.go
//
// Authentication guard.  Verifies the bearer or cookie token and
// attaches the resulting user to the request context for the guards
// behind it.  Public routes pass untouched.
package guard

import (
	"net/http"

	"github.com/canopysites/canopy/internal/auth"
)

// AuthGuard is the first link in the chain.
type AuthGuard struct {
	verifier *auth.Verifier
}

// NewAuthGuard wraps a token verifier.
func NewAuthGuard(v *auth.Verifier) *AuthGuard { return &AuthGuard{verifier: v} }

func (g *AuthGuard) Name() string { return "auth" }

func (g *AuthGuard) Check(r *http.Request) (*http.Request, Result) {
	if IsPublic(r.Context()) {
		return r, Allow()
	}

	token := auth.TokenFromRequest(r)
	if token == "" {
		return r, Deny(http.StatusUnauthorized,
			"UNAUTHENTICATED", "authentication required")
	}

	user, err := g.verifier.Verify(token)
	if err != nil {
		return r, Deny(http.StatusUnauthorized,
			"UNAUTHENTICATED", "invalid or expired token")
	}

	return r.WithContext(auth.WithUser(r.Context(), user)), Allow()
}
