// internal/tenant/domains_test.go
//
// Tests for the domain-binding write path: soft delete, the
// last-active-domain rule, and primary promotion.

package tenant

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

func newTestDirectory(t *testing.T) (*Directory, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	return NewDirectory(sqlx.NewDb(db, "sqlmock")), mock, func() { db.Close() }
}

func TestAddDomainNormalises(t *testing.T) {
	dir, mock, done := newTestDirectory(t)
	defer done()

	mock.ExpectExec(`INSERT INTO tenant_domain`).
		WithArgs(int64(3), "www.acme.com", "CUSTOM", false).
		WillReturnResult(sqlmock.NewResult(11, 1))

	d, err := dir.AddDomain(context.Background(), 3, "WWW.Acme.com:443", DomainCustom)
	if err != nil {
		t.Fatalf("AddDomain: %v", err)
	}
	if d.ID != 11 || d.Domain != "www.acme.com" || d.IsVerified {
		t.Fatalf("bad binding: %+v", d)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestAddDomainSubdomainIsPreVerified(t *testing.T) {
	dir, mock, done := newTestDirectory(t)
	defer done()

	mock.ExpectExec(`INSERT INTO tenant_domain`).
		WithArgs(int64(3), "acme.canopysites.com", "SUBDOMAIN", true).
		WillReturnResult(sqlmock.NewResult(12, 1))

	d, err := dir.AddDomain(context.Background(), 3, "acme.canopysites.com", DomainSubdomain)
	if err != nil {
		t.Fatalf("AddDomain: %v", err)
	}
	if !d.IsVerified {
		t.Fatal("platform subdomains must start verified")
	}
}

func TestRemoveDomainLastActiveProtected(t *testing.T) {
	dir, mock, done := newTestDirectory(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\)\s+FROM\s+tenant_domain`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	err := dir.RemoveDomain(context.Background(), 3, 11)
	if !errors.Is(err, ErrLastDomain) {
		t.Fatalf("want ErrLastDomain, got %v", err)
	}
}

func TestRemoveDomainSoftDeletes(t *testing.T) {
	dir, mock, done := newTestDirectory(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\)\s+FROM\s+tenant_domain`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectExec(`UPDATE tenant_domain\s+SET\s+is_active = FALSE`).
		WithArgs(int64(11), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := dir.RemoveDomain(context.Background(), 3, 11); err != nil {
		t.Fatalf("RemoveDomain: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestRemoveDomainNotOwned(t *testing.T) {
	dir, mock, done := newTestDirectory(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\)\s+FROM\s+tenant_domain`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectExec(`UPDATE tenant_domain\s+SET\s+is_active = FALSE`).
		WithArgs(int64(99), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := dir.RemoveDomain(context.Background(), 3, 99)
	if !errors.Is(err, ErrDomainNotOwned) {
		t.Fatalf("want ErrDomainNotOwned, got %v", err)
	}
}

func TestSetPrimaryDomainDemotesOthers(t *testing.T) {
	dir, mock, done := newTestDirectory(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE tenant_domain\s+SET\s+is_primary = TRUE`).
		WithArgs(int64(11), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE tenant_domain\s+SET\s+is_primary = FALSE`).
		WithArgs(int64(3), int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	if err := dir.SetPrimaryDomain(context.Background(), 3, 11); err != nil {
		t.Fatalf("SetPrimaryDomain: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}
