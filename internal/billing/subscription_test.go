// internal/billing/subscription_test.go

package billing

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

func newTestService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewService(sqlx.NewDb(db, "mysql")), mock
}

func TestSubscriptionStatus(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery(`SELECT subscription_status\s+FROM\s+tenant\s+WHERE\s+id = \?`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"subscription_status"}).AddRow("past_due"))

	status, err := svc.SubscriptionStatus(context.Background(), 7)
	if err != nil {
		t.Fatalf("SubscriptionStatus: %v", err)
	}
	if status != "past_due" {
		t.Fatalf("status = %q", status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSubscriptionStatusUnknownTenant(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery(`SELECT subscription_status`).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := svc.SubscriptionStatus(context.Background(), 404)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("err = %v", err)
	}
}
