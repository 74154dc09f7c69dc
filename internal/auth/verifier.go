// internal/auth/verifier.go
//
// JWT verification.
//
// Context
// -------
// Canopy does not issue tokens; the identity service does.  This side
// only verifies: HMAC signature, expiry, and claim shape.  Claims map
// directly onto AuthenticatedUser, with a nullable tenant_id so
// platform operators carry no home tenant.
//
// Notes
// -----
// • Only HMAC signing methods are accepted; an asymmetric token is a
//   verification error, not a fallback path.
// • Oxford commas, two spaces after periods.
package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// SessionCookie is the fallback token carrier for browser traffic.
const SessionCookie = "canopy_session"

// ErrInvalidToken covers every verification failure the caller does
// not need to distinguish.
var ErrInvalidToken = errors.New("auth: invalid or expired token")

// Claims is the expected token payload.
type Claims struct {
	UserID   int64  `json:"user_id"`
	Role     string `json:"role"`
	TenantID *int64 `json:"tenant_id"`
	jwt.RegisteredClaims
}

// Verifier checks bearer tokens against the shared HMAC secret.
type Verifier struct {
	secret []byte
}

// NewVerifier builds a Verifier from the shared secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify parses and validates tokenString, returning the caller's
// identity.
func (v *Verifier) Verify(tokenString string) (*User, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return v.secret, nil
		},
	)
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}

	role := Role(claims.Role)
	if claims.UserID == 0 || !role.Valid() {
		return nil, ErrInvalidToken
	}

	return &User{
		ID:       claims.UserID,
		Role:     role,
		TenantID: claims.TenantID,
	}, nil
}

// TokenFromRequest extracts the raw token from the Authorization
// header, falling back to the session cookie.  Empty string means no
// credential was presented.
func TokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if strings.HasPrefix(h, "Bearer ") {
			return h[len("Bearer "):]
		}
		return ""
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}
