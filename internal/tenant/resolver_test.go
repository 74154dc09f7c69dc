// internal/tenant/resolver_test.go
//
// Unit-tests for the fallback resolution algorithm using sqlmock.
//
// Context
// -------
// Each test wires a Directory over a sqlmock handle, so the exact
// query order of the three strategies is asserted: a reserved host
// must fire zero queries, a legacy-domain hit must stop after step 1,
// and the slug fallback must only run for hosts under the platform
// suffix.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.

package tenant

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/canopysites/canopy/internal/reserved"
)

var tenantColumns = []string{
	"id", "slug", "domain", "is_active", "status",
	"subscription_status", "default_language", "created_at", "updated_at",
}

func tenantRow(id int64, slug string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(tenantColumns).
		AddRow(id, slug, nil, true, "active", "active", "en", now, now)
}

func newTestResolver(t *testing.T) (*Resolver, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	dir := NewDirectory(sqlx.NewDb(db, "sqlmock"))
	res := NewResolver(dir, reserved.NewDefault(), "canopysites.com", "panel")
	return res, mock, func() { db.Close() }
}

func TestResolveReservedHost(t *testing.T) {
	res, mock, done := newTestResolver(t)
	defer done()

	_, _, err := res.Resolve(context.Background(), "portal.canopysites.com")
	re := AsResolveError(err)
	if re == nil || re.Code != CodeReservedDomain {
		t.Fatalf("want RESERVED_DOMAIN, got %v", err)
	}
	// Reserved hosts must never reach the store.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected SQL activity: %v", err)
	}
}

func TestResolveLegacyDomain(t *testing.T) {
	res, mock, done := newTestResolver(t)
	defer done()

	mock.ExpectQuery(`SELECT .+ FROM\s+tenant\s+WHERE\s+domain = \?`).
		WithArgs("shop.acme.com").
		WillReturnRows(tenantRow(3, "acme"))

	ten, prov, err := res.Resolve(context.Background(), "shop.acme.com")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if ten.ID != 3 || prov != BySubdomain {
		t.Fatalf("got tenant %d via %q", ten.ID, prov)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestResolveBoundDomain(t *testing.T) {
	res, mock, done := newTestResolver(t)
	defer done()

	mock.ExpectQuery(`FROM\s+tenant\s+WHERE\s+domain = \?`).
		WithArgs("www.acme.com").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`FROM\s+tenant_domain d\s+JOIN\s+tenant t`).
		WithArgs("www.acme.com").
		WillReturnRows(tenantRow(5, "acme"))

	ten, prov, err := res.Resolve(context.Background(), "www.acme.com")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if ten.ID != 5 || prov != ByCustomDomain {
		t.Fatalf("got tenant %d via %q", ten.ID, prov)
	}
}

func TestResolveSlugFallback(t *testing.T) {
	res, mock, done := newTestResolver(t)
	defer done()

	host := "acmepanel.canopysites.com"
	mock.ExpectQuery(`FROM\s+tenant\s+WHERE\s+domain = \?`).
		WithArgs(host).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`FROM\s+tenant_domain d`).
		WithArgs(host).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`FROM\s+tenant\s+WHERE\s+slug = \?`).
		WithArgs("acme").
		WillReturnRows(tenantRow(9, "acme"))

	ten, prov, err := res.Resolve(context.Background(), host)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if ten.ID != 9 || prov != BySubdomain {
		t.Fatalf("got tenant %d via %q", ten.ID, prov)
	}
}

func TestResolveNotFound(t *testing.T) {
	res, mock, done := newTestResolver(t)
	defer done()

	// Host outside the platform suffix: only steps 1 and 2 run.
	mock.ExpectQuery(`FROM\s+tenant\s+WHERE\s+domain = \?`).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`FROM\s+tenant_domain d`).
		WillReturnError(sql.ErrNoRows)

	_, _, err := res.Resolve(context.Background(), "nobody.example.com")
	re := AsResolveError(err)
	if re == nil || re.Code != CodeDomainNotFound {
		t.Fatalf("want DOMAIN_NOT_FOUND, got %v", err)
	}
}

func TestResolveStoreErrorFailsClosed(t *testing.T) {
	res, mock, done := newTestResolver(t)
	defer done()

	boom := errors.New("connection reset")
	mock.ExpectQuery(`FROM\s+tenant\s+WHERE\s+domain = \?`).
		WillReturnError(boom)

	_, _, err := res.Resolve(context.Background(), "shop.acme.com")
	if err == nil || AsResolveError(err) != nil {
		t.Fatalf("store errors must stay untyped, got %v", err)
	}
}

func TestSlugFromHost(t *testing.T) {
	res, _, done := newTestResolver(t)
	defer done()

	cases := []struct {
		host string
		want string
	}{
		{"acme.canopysites.com", "acme"},
		{"acmepanel.canopysites.com", "acme"},
		{"panel.canopysites.com", "panel"}, // marker alone is not stripped
		{"acme.example.com", ""},
		{"canopysites.com", ""},
	}
	for _, tc := range cases {
		if got := res.slugFromHost(tc.host); got != tc.want {
			t.Errorf("slugFromHost(%q) = %q, want %q", tc.host, got, tc.want)
		}
	}
}
