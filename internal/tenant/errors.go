// internal/tenant/errors.go
//
// Typed resolution failures.
//
// Context
// -------
// The resolver and middleware keep a full error taxonomy internally so
// tests, logs, and metrics can tell a reserved-domain hit from a plain
// miss.  How much of that detail leaks to HTTP clients is decided in
// one place at the middleware boundary, not here.
//
// Notes
// -----
// • ResolveError carries a stable machine-readable Code; the human
//   Message may be collapsed at the boundary in production.
// • Oxford commas, two spaces after periods.
package tenant

import (
	"errors"
	"fmt"
)

// Code identifies one failure class in the resolution taxonomy.
type Code string

const (
	CodeReservedDomain      Code = "RESERVED_DOMAIN"
	CodeDomainNotFound      Code = "DOMAIN_NOT_FOUND"
	CodeInvalidTenantHeader Code = "INVALID_TENANT_HEADER"
	CodeTenantInactive      Code = "TENANT_INACTIVE"
	CodeNoTenantSignal      Code = "NO_TENANT_SIGNAL"
)

// ResolveError is a terminal resolution failure.
type ResolveError struct {
	Code    Code
	Host    string // offending host, if any
	Message string
}

func (e *ResolveError) Error() string {
	if e.Host != "" {
		return fmt.Sprintf("%s: %s (host %q)", e.Code, e.Message, e.Host)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is lets errors.Is match on the Code alone.
func (e *ResolveError) Is(target error) bool {
	var re *ResolveError
	if errors.As(target, &re) {
		return re.Code == e.Code
	}
	return false
}

func errReserved(host string) *ResolveError {
	return &ResolveError{Code: CodeReservedDomain, Host: host,
		Message: "reserved platform domain"}
}

func errNotFound(host string) *ResolveError {
	return &ResolveError{Code: CodeDomainNotFound, Host: host,
		Message: "no tenant found for domain"}
}

func errInvalidHeader(msg string) *ResolveError {
	return &ResolveError{Code: CodeInvalidTenantHeader, Message: msg}
}

func errInactive(host string) *ResolveError {
	return &ResolveError{Code: CodeTenantInactive, Host: host,
		Message: "tenant is inactive or suspended"}
}

func errNoSignal() *ResolveError {
	return &ResolveError{Code: CodeNoTenantSignal,
		Message: "no tenant information in headers"}
}

// AsResolveError unwraps err into a *ResolveError, or returns nil.
func AsResolveError(err error) *ResolveError {
	var re *ResolveError
	if errors.As(err, &re) {
		return re
	}
	return nil
}
