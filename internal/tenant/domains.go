// internal/tenant/domains.go
//
// Domain-binding write path.
//
// Context
// -------
// Operators manage `tenant_domain` rows through the admin API.  Three
// rules hold regardless of caller:
//
//   1. Removal is a soft delete (is_active = FALSE); rows are never
//      hard-deleted so history and audit queries keep working.
//   2. The last active binding of a tenant cannot be removed, or the
//      site would become unreachable.
//   3. At most one active binding per tenant is primary; promoting a
//      binding demotes the others in the same statement batch.
//
// Notes
// -----
// • The store's UNIQUE(domain) constraint rejects duplicate bindings;
//   the insert surfaces that as a driver error.
// • Oxford commas, two spaces after periods.
package tenant

import (
	"context"
	"errors"

	"github.com/canopysites/canopy/internal/hostname"
)

// ErrLastDomain is returned when removal would leave a tenant with no
// active binding.
var ErrLastDomain = errors.New("tenant: cannot remove the last active domain")

// ErrDomainNotOwned is returned when the binding does not belong to
// the tenant performing the change.
var ErrDomainNotOwned = errors.New("tenant: domain not found for tenant")

// AddDomain inserts a new active binding for tenantID.  The host is
// canonicalised first; verification state starts false for custom
// domains and true for platform-issued subdomains.
func (d *Directory) AddDomain(ctx context.Context, tenantID int64, host string, typ DomainType) (*Domain, error) {
	norm := hostname.Normalize(host)
	if norm == "" {
		return nil, errInvalidHeader("empty domain")
	}

	verified := typ == DomainSubdomain

	const q = `
        INSERT INTO tenant_domain
               (tenant_id, domain, type, is_primary, is_active, is_verified)
        VALUES (?, ?, ?, FALSE, TRUE, ?)`
	res, err := d.db.ExecContext(ctx, q, tenantID, norm, typ, verified)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &Domain{
		ID:         id,
		TenantID:   tenantID,
		Domain:     norm,
		Type:       typ,
		IsActive:   true,
		IsVerified: verified,
	}, nil
}

// RemoveDomain soft-deletes one binding.  The last active binding of a
// tenant is protected by ErrLastDomain.
func (d *Directory) RemoveDomain(ctx context.Context, tenantID, domainID int64) error {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var active int
	const countQ = `
        SELECT COUNT(*)
        FROM   tenant_domain
        WHERE  tenant_id = ? AND is_active = TRUE`
	if err := tx.GetContext(ctx, &active, countQ, tenantID); err != nil {
		return err
	}
	if active <= 1 {
		return ErrLastDomain
	}

	const q = `
        UPDATE tenant_domain
        SET    is_active = FALSE, is_primary = FALSE
        WHERE  id = ? AND tenant_id = ? AND is_active = TRUE`
	res, err := tx.ExecContext(ctx, q, domainID, tenantID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrDomainNotOwned
	}

	return tx.Commit()
}

// SetPrimaryDomain promotes one active binding to primary and demotes
// every other binding of the same tenant.
func (d *Directory) SetPrimaryDomain(ctx context.Context, tenantID, domainID int64) error {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const promote = `
        UPDATE tenant_domain
        SET    is_primary = TRUE
        WHERE  id = ? AND tenant_id = ? AND is_active = TRUE`
	res, err := tx.ExecContext(ctx, promote, domainID, tenantID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrDomainNotOwned
	}

	const demote = `
        UPDATE tenant_domain
        SET    is_primary = FALSE
        WHERE  tenant_id = ? AND id <> ?`
	if _, err := tx.ExecContext(ctx, demote, tenantID, domainID); err != nil {
		return err
	}

	return tx.Commit()
}
