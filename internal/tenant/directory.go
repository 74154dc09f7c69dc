// internal/tenant/directory.go
//
// Read access to the tenant control-plane tables.
//
// Context
// -------
// The Directory wraps the shared *sqlx.DB and exposes the point
// lookups the resolver and middleware need.  All queries are simple
// parameterised reads; liveness filters are applied in SQL so callers
// never see rows that could not serve traffic anyway.  Uniqueness of
// `tenant_domain.domain` and `tenant.slug` is enforced by the store,
// so every lookup returns at most one row.
//
// Notes
// -----
// • sql.ErrNoRows propagates; the resolver maps it to its taxonomy.
// • Oxford commas, two spaces after periods.
package tenant

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

const tenantCols = `id, slug, domain, is_active, status,
               subscription_status, default_language,
               created_at, updated_at`

// Directory performs tenant and domain lookups against the shared
// control-plane database.
type Directory struct {
	db *sqlx.DB
}

// NewDirectory wraps db.
func NewDirectory(db *sqlx.DB) *Directory { return &Directory{db: db} }

// DB exposes the underlying handle for collaborators (billing).
func (d *Directory) DB() *sqlx.DB { return d.db }

// ByID fetches one tenant by primary key with no liveness filter; the
// caller decides which states are acceptable.
func (d *Directory) ByID(ctx context.Context, id int64) (*Tenant, error) {
	const q = `
        SELECT ` + tenantCols + `
        FROM   tenant
        WHERE  id = ?
        LIMIT  1`
	var t Tenant
	if err := d.db.GetContext(ctx, &t, q, id); err != nil {
		return nil, err
	}
	return &t, nil
}

// ByLegacyDomain fetches a routable tenant whose legacy `domain`
// column equals host.
func (d *Directory) ByLegacyDomain(ctx context.Context, host string) (*Tenant, error) {
	const q = `
        SELECT ` + tenantCols + `
        FROM   tenant
        WHERE  domain = ?
          AND  is_active = TRUE
          AND  status = 'active'
        LIMIT  1`
	var t Tenant
	if err := d.db.GetContext(ctx, &t, q, host); err != nil {
		return nil, err
	}
	return &t, nil
}

// BySlug fetches a routable tenant by slug.
func (d *Directory) BySlug(ctx context.Context, slug string) (*Tenant, error) {
	const q = `
        SELECT ` + tenantCols + `
        FROM   tenant
        WHERE  slug = ?
          AND  is_active = TRUE
          AND  status = 'active'
        LIMIT  1`
	var t Tenant
	if err := d.db.GetContext(ctx, &t, q, slug); err != nil {
		return nil, err
	}
	return &t, nil
}

// ByBoundDomain fetches the routable tenant owning an active, verified
// `tenant_domain` row for host.
func (d *Directory) ByBoundDomain(ctx context.Context, host string) (*Tenant, error) {
	const q = `
        SELECT t.id, t.slug, t.domain, t.is_active, t.status,
               t.subscription_status, t.default_language,
               t.created_at, t.updated_at
        FROM   tenant_domain d
        JOIN   tenant t ON t.id = d.tenant_id
        WHERE  d.domain = ?
          AND  d.is_active = TRUE
          AND  d.is_verified = TRUE
          AND  t.is_active = TRUE
          AND  t.status = 'active'
        LIMIT  1`
	var t Tenant
	if err := d.db.GetContext(ctx, &t, q, host); err != nil {
		return nil, err
	}
	return &t, nil
}

// DomainsForTenant lists the active domain bindings of one tenant,
// primary first.
func (d *Directory) DomainsForTenant(ctx context.Context, tenantID int64) ([]Domain, error) {
	const q = `
        SELECT id, tenant_id, domain, type, is_primary, is_active,
               is_verified, created_at, updated_at
        FROM   tenant_domain
        WHERE  tenant_id = ?
          AND  is_active = TRUE
        ORDER  BY is_primary DESC, domain ASC`
	rows := make([]Domain, 0, 4)
	if err := d.db.SelectContext(ctx, &rows, q, tenantID); err != nil {
		return nil, err
	}
	return rows, nil
}

// IsNoRows reports whether err is the driver's empty-result sentinel.
func IsNoRows(err error) bool { return errors.Is(err, sql.ErrNoRows) }
