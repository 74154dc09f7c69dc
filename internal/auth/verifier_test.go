// internal/auth/verifier_test.go

package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const secret = "unit-test-secret"

func sign(t *testing.T, method jwt.SigningMethod, key any, claims Claims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return signed
}

func freshClaims(ttl time.Duration) Claims {
	tid := int64(7)
	return Claims{
		UserID:   42,
		Role:     string(RoleEditor),
		TenantID: &tid,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
}

func TestVerifyRoundTrip(t *testing.T) {
	v := NewVerifier(secret)
	token := sign(t, jwt.SigningMethodHS256, []byte(secret), freshClaims(time.Hour))

	user, err := v.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if user.ID != 42 || user.Role != RoleEditor {
		t.Fatalf("user = %+v", user)
	}
	if user.TenantID == nil || *user.TenantID != 7 {
		t.Fatalf("tenant id = %v", user.TenantID)
	}
}

func TestVerifyNilTenantID(t *testing.T) {
	v := NewVerifier(secret)
	claims := Claims{
		UserID: 1,
		Role:   string(RoleSuperAdmin),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	user, err := v.Verify(sign(t, jwt.SigningMethodHS256, []byte(secret), claims))
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if user.TenantID != nil {
		t.Fatalf("expected nil tenant id, got %d", *user.TenantID)
	}
}

func TestVerifyRejections(t *testing.T) {
	v := NewVerifier(secret)

	t.Run("expired token", func(t *testing.T) {
		token := sign(t, jwt.SigningMethodHS256, []byte(secret), freshClaims(-time.Minute))
		if _, err := v.Verify(token); err != ErrInvalidToken {
			t.Fatalf("err = %v", err)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		token := sign(t, jwt.SigningMethodHS256, []byte("other"), freshClaims(time.Hour))
		if _, err := v.Verify(token); err != ErrInvalidToken {
			t.Fatalf("err = %v", err)
		}
	})

	t.Run("unknown role", func(t *testing.T) {
		claims := freshClaims(time.Hour)
		claims.Role = "INTERN"
		if _, err := v.Verify(sign(t, jwt.SigningMethodHS256, []byte(secret), claims)); err != ErrInvalidToken {
			t.Fatalf("err = %v", err)
		}
	})

	t.Run("zero user id", func(t *testing.T) {
		claims := freshClaims(time.Hour)
		claims.UserID = 0
		if _, err := v.Verify(sign(t, jwt.SigningMethodHS256, []byte(secret), claims)); err != ErrInvalidToken {
			t.Fatalf("err = %v", err)
		}
	})

	t.Run("not a token", func(t *testing.T) {
		if _, err := v.Verify("header.payload.signature"); err != ErrInvalidToken {
			t.Fatalf("err = %v", err)
		}
	})
}

func TestTokenFromRequest(t *testing.T) {
	t.Run("bearer header", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer abc.def.ghi")
		if got := TokenFromRequest(r); got != "abc.def.ghi" {
			t.Fatalf("got %q", got)
		}
	})

	t.Run("malformed scheme is not a credential", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		if got := TokenFromRequest(r); got != "" {
			t.Fatalf("got %q", got)
		}
	})

	t.Run("cookie fallback", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: SessionCookie, Value: "cookie-token"})
		if got := TokenFromRequest(r); got != "cookie-token" {
			t.Fatalf("got %q", got)
		}
	})

	t.Run("header outranks cookie", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer from-header")
		r.AddCookie(&http.Cookie{Name: SessionCookie, Value: "from-cookie"})
		if got := TokenFromRequest(r); got != "from-header" {
			t.Fatalf("got %q", got)
		}
	})

	t.Run("no credential", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if got := TokenFromRequest(r); got != "" {
			t.Fatalf("got %q", got)
		}
	})
}
