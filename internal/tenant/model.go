// internal/tenant/model.go
//
// Tenant and domain-binding rows.
//
// Context
// -------
// The control-plane database holds two tables that matter to request
// routing:
//
//	tenant         (id PK, slug, domain NULL, is_active, status,
//	                subscription_status, default_language, …)
//	tenant_domain  (id PK, tenant_id FK, domain UNIQUE, type,
//	                is_primary, is_active, is_verified, …)
//
// `tenant.domain` is the legacy single-domain column kept for sites
// that predate multi-domain support.  New bindings live exclusively in
// `tenant_domain`, which is soft-deleted (is_active = FALSE) instead of
// hard-deleted so history survives.
//
// Notes
// -----
// • Routable() is the single liveness predicate; callers must not
//   re-derive it from the raw fields.
// • Oxford commas, two spaces after periods.
package tenant

import (
	"database/sql"
	"time"
)

//
// Tenant status
//

// Status is the operational state of a tenant.
type Status string

const (
	StatusActive       Status = "active"
	StatusSuspended    Status = "suspended"
	StatusTrialExpired Status = "trial_expired"
)

//
// Subscription status (mirrors the billing collaborator's vocabulary)
//

const (
	SubscriptionActive   = "active"
	SubscriptionPastDue  = "past_due"
	SubscriptionCanceled = "canceled"
	SubscriptionTrialing = "trialing"
)

//
// Domain binding type
//

// DomainType distinguishes operator-added custom domains from
// platform-issued subdomains.
type DomainType string

const (
	DomainCustom    DomainType = "CUSTOM"
	DomainSubdomain DomainType = "SUBDOMAIN"
)

//
// Rows
//

// Tenant mirrors one row in the `tenant` table.
type Tenant struct {
	ID                 int64          `db:"id"`
	Slug               string         `db:"slug"`
	Domain             sql.NullString `db:"domain"` // legacy single-domain column
	IsActive           bool           `db:"is_active"`
	Status             Status         `db:"status"`
	SubscriptionStatus string         `db:"subscription_status"`
	DefaultLanguage    string         `db:"default_language"`
	CreatedAt          time.Time      `db:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at"`
}

// Routable reports whether the tenant may serve traffic at all.
func (t *Tenant) Routable() bool {
	return t.IsActive && t.Status == StatusActive
}

// Domain mirrors one row in the `tenant_domain` table.  The UNIQUE
// constraint on `domain` spans the whole table, so one hostname can
// only ever bind to one tenant.
type Domain struct {
	ID         int64      `db:"id"          json:"id"`
	TenantID   int64      `db:"tenant_id"   json:"tenant_id"`
	Domain     string     `db:"domain"      json:"domain"`
	Type       DomainType `db:"type"        json:"type"`
	IsPrimary  bool       `db:"is_primary"  json:"is_primary"`
	IsActive   bool       `db:"is_active"   json:"is_active"`
	IsVerified bool       `db:"is_verified" json:"is_verified"`
	CreatedAt  time.Time  `db:"created_at"  json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"  json:"updated_at"`
}
