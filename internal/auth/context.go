// internal/auth/context.go
//
// Request-context plumbing for the authenticated user.  The guard
// chain attaches a *User after token verification; downstream guards
// and handlers read it back here and never re-parse the token.
package auth

import "context"

type userKey struct{} // unexported to avoid context-key collisions

// WithUser returns a new context carrying u.
func WithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

// UserFrom extracts the authenticated user, or nil when the request is
// unauthenticated (public route, or the auth guard has not run).
func UserFrom(ctx context.Context) *User {
	u, _ := ctx.Value(userKey{}).(*User)
	return u
}
