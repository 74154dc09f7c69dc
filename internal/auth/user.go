// internal/auth/user.go
//
// Authenticated-user identity.
//
// Context
// -------
// Token verification produces one AuthenticatedUser per request.  The
// struct is consumed, never mutated, by the guard chain: TenantGuard
// compares its TenantID against the request binding, RolesGuard checks
// Role against per-route allow-lists.  TenantID nil marks a platform
// operator with no home tenant.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.
package auth

// Role is the coarse platform role carried in the token.
type Role string

const (
	RoleSuperAdmin  Role = "SUPER_ADMIN"
	RoleTenantAdmin Role = "TENANT_ADMIN"
	RoleEditor      Role = "EDITOR"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleTenantAdmin, RoleEditor:
		return true
	}
	return false
}

// User is the authenticated caller attached to the request.
type User struct {
	ID       int64
	Role     Role
	TenantID *int64 // nil for platform operators
}

// SuperAdmin reports whether the user holds the platform role.
func (u *User) SuperAdmin() bool { return u.Role == RoleSuperAdmin }
